package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/gogpu/colorlut/internal/parallel"
	"github.com/gogpu/colorlut/lut"
)

// Intent is an ICC rendering intent. Values match the ICC header encoding.
type Intent int

// Rendering intents. Only Perceptual is supported by transforms.
const (
	Perceptual Intent = iota
	RelativeColorimetric
	Saturation
	AbsoluteColorimetric
)

func (i Intent) String() string {
	switch i {
	case Perceptual:
		return "perceptual"
	case RelativeColorimetric:
		return "relative-colorimetric"
	case Saturation:
		return "saturation"
	case AbsoluteColorimetric:
		return "absolute-colorimetric"
	default:
		return fmt.Sprintf("Intent(%d)", int(i))
	}
}

// Flags tune transform construction.
type Flags uint32

const (
	// FlagNoNegatives clamps negative connection space values to zero
	// between stages.
	FlagNoNegatives Flags = 1 << iota

	// FlagKeepSequence applies every profile in the given order. Without it,
	// abstract profiles that leave colors unchanged are dropped.
	FlagKeepSequence

	// FlagNoOptimize evaluates the full chain for every pixel instead of
	// interpolating a precomputed device link grid.
	FlagNoOptimize
)

// Device link grid limits for the optimized path.
const (
	MinGridPoints = 2
	MaxGridPoints = 256

	// DefaultGridPoints puts a grid node on every fifth 8-bit level.
	DefaultGridPoints = 52
)

// chunkSize is the number of pixels handed to a worker at a time.
const chunkSize = 1 << 16

// Option configures a Transform.
type Option func(*Transform)

// WithPool runs transforms on p instead of a temporary pool.
func WithPool(p *parallel.WorkerPool) Option {
	return func(t *Transform) { t.pool = p }
}

// WithGridPoints sets the device link grid size used when FlagNoOptimize
// is not set. Values outside [MinGridPoints, MaxGridPoints] are clamped.
func WithGridPoints(n int) Option {
	return func(t *Transform) { t.gridPoints = min(max(n, MinGridPoints), MaxGridPoints) }
}

// Transform is a compiled profile chain mapping device RGB to device RGB.
// It is safe for concurrent use.
type Transform struct {
	profiles   []Profile
	intent     Intent
	flags      Flags
	gridPoints int
	pool       *parallel.WorkerPool

	mu   sync.Mutex
	free []*evaluator

	gridMu sync.Mutex
	grid   *rgbGrid
}

// NewTransform builds a two-profile transform from src to dst. dst must
// be a device profile. An abstract src reads its device values in dst's
// color space.
func NewTransform(src, dst Profile, intent Intent, flags Flags, opts ...Option) (*Transform, error) {
	return newTransform([]Profile{src, dst}, intent, flags, opts)
}

// NewMultiprofileTransform chains profiles in order. The last profile must
// be a device profile.
func NewMultiprofileTransform(profiles []Profile, intent Intent, flags Flags, opts ...Option) (*Transform, error) {
	return newTransform(profiles, intent, flags, opts)
}

func newTransform(profiles []Profile, intent Intent, flags Flags, opts []Option) (*Transform, error) {
	if intent != Perceptual {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedIntent, intent)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: no profiles", ErrChain)
	}
	for i, p := range profiles {
		if p == nil {
			return nil, fmt.Errorf("%w: profile %d is nil", ErrChain, i)
		}
	}
	if _, ok := profiles[len(profiles)-1].(*ICCProfile); !ok {
		return nil, fmt.Errorf("%w: last profile %q is not a device profile", ErrChain, profiles[len(profiles)-1].Name())
	}

	t := &Transform{
		intent:     intent,
		flags:      flags,
		gridPoints: DefaultGridPoints,
	}
	for _, opt := range opts {
		opt(t)
	}

	for _, p := range profiles {
		if flags&FlagKeepSequence == 0 {
			if id, ok := p.(interface{ IsIdentity() bool }); ok && id.IsIdentity() {
				continue
			}
		}
		t.profiles = append(t.profiles, p)
	}

	// Surface construction errors now; the evaluator is reused later.
	ev, err := t.newEvaluator()
	if err != nil {
		return nil, err
	}
	t.free = append(t.free, ev)
	return t, nil
}

// Profiles returns the stages the transform applies, in order.
func (t *Transform) Profiles() []Profile {
	return append([]Profile(nil), t.profiles...)
}

// Flags returns the construction flags.
func (t *Transform) Flags() Flags { return t.flags }

// Eval maps one normalized RGB color through the full chain.
func (t *Transform) Eval(rgb [3]float64) ([3]float64, error) {
	ev, err := t.acquire()
	if err != nil {
		return [3]float64{}, err
	}
	defer t.release(ev)
	return ev.eval(rgb), nil
}

// TransformInPlace maps every packed pixel in pix. Red is the low byte;
// the alpha byte is left untouched.
func (t *Transform) TransformInPlace(ctx context.Context, pix []uint32) error {
	pool := t.pool
	if pool == nil {
		pool = parallel.NewWorkerPool(0)
		defer pool.Close()
	}

	if t.flags&FlagNoOptimize != 0 {
		return t.transformFull(ctx, pool, pix)
	}

	grid, err := t.deviceLink(ctx, pool)
	if err != nil {
		return err
	}
	return pool.Range(ctx, len(pix), chunkSize, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			v := pix[i]
			r, g, b, a := lut.Unpack(v)
			rr, gg, bb := grid.lookup(r, g, b)
			pix[i] = lut.PackUnorm(rr, gg, bb, 0) | uint32(a)<<24
		}
	})
}

func (t *Transform) transformFull(ctx context.Context, pool *parallel.WorkerPool, pix []uint32) error {
	var errOnce sync.Once
	var firstErr error

	err := pool.Range(ctx, len(pix), chunkSize, func(lo, hi int) {
		ev, err := t.acquire()
		if err != nil {
			errOnce.Do(func() { firstErr = err })
			return
		}
		defer t.release(ev)
		for i := lo; i < hi; i++ {
			r, g, b, a := lut.UnpackUnorm(pix[i])
			out := ev.eval([3]float64{r, g, b})
			pix[i] = lut.PackUnorm(out[0], out[1], out[2], a)
		}
	})
	if firstErr != nil {
		return firstErr
	}
	return err
}

// deviceLink samples the chain on the RGB grid once per transform.
func (t *Transform) deviceLink(ctx context.Context, pool *parallel.WorkerPool) (*rgbGrid, error) {
	t.gridMu.Lock()
	defer t.gridMu.Unlock()
	if t.grid != nil {
		return t.grid, nil
	}

	g := newRGBGrid(t.gridPoints)
	n := g.n
	var errOnce sync.Once
	var firstErr error

	err := pool.Range(ctx, n*n*n, 1024, func(lo, hi int) {
		ev, err := t.acquire()
		if err != nil {
			errOnce.Do(func() { firstErr = err })
			return
		}
		defer t.release(ev)
		for k := lo; k < hi; k++ {
			r, gi, b := k%n, (k/n)%n, k/(n*n)
			out := ev.eval([3]float64{g.node(r), g.node(gi), g.node(b)})
			g.set(k, out)
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	if err != nil {
		return nil, err
	}
	t.grid = g
	return g, nil
}

func (t *Transform) acquire() (*evaluator, error) {
	t.mu.Lock()
	if n := len(t.free); n > 0 {
		ev := t.free[n-1]
		t.free = t.free[:n-1]
		t.mu.Unlock()
		return ev, nil
	}
	t.mu.Unlock()
	return t.newEvaluator()
}

func (t *Transform) release(ev *evaluator) {
	t.mu.Lock()
	t.free = append(t.free, ev)
	t.mu.Unlock()
}

// evaluator holds per-goroutine conversion state for one chain.
type evaluator struct {
	entry *converter
	steps []func([3]float64) [3]float64
	exit  *converter
	clamp bool
}

func (t *Transform) newEvaluator() (*evaluator, error) {
	convs := make(map[*ICCProfile]*converter)
	conv := func(p *ICCProfile) (*converter, error) {
		if c, ok := convs[p]; ok {
			return c, nil
		}
		c, err := p.newConverter(t.intent)
		if err != nil {
			return nil, err
		}
		convs[p] = c
		return c, nil
	}

	last := t.profiles[len(t.profiles)-1].(*ICCProfile) //nolint:errcheck // checked in newTransform
	exit, err := conv(last)
	if err != nil {
		return nil, err
	}
	ev := &evaluator{exit: exit, clamp: t.flags&FlagNoNegatives != 0}

	middle := t.profiles[:len(t.profiles)-1]
	if first, ok := t.profiles[0].(*ICCProfile); ok && len(t.profiles) > 1 {
		if ev.entry, err = conv(first); err != nil {
			return nil, err
		}
		middle = middle[1:]
	} else {
		ev.entry = exit
	}

	for _, p := range middle {
		switch p := p.(type) {
		case *AbstractProfile:
			ev.steps = append(ev.steps, p.Apply)
		case *ICCProfile:
			c, err := conv(p)
			if err != nil {
				return nil, err
			}
			ev.steps = append(ev.steps, func(v [3]float64) [3]float64 { return c.ToPCS(c.FromPCS(v)) })
		default:
			return nil, fmt.Errorf("%w: unsupported profile type %T", ErrChain, p)
		}
	}
	return ev, nil
}

func (ev *evaluator) eval(rgb [3]float64) [3]float64 {
	v := ev.entry.ToPCS(rgb)
	if ev.clamp {
		v = clampNegatives(v)
	}
	for _, step := range ev.steps {
		v = step(v)
		if ev.clamp {
			v = clampNegatives(v)
		}
	}
	out := ev.exit.FromPCS(v)
	for i := range out {
		out[i] = clamp(out[i], 0, 1)
	}
	return out
}

func clampNegatives(v [3]float64) [3]float64 {
	for i := range v {
		if v[i] < 0 {
			v[i] = 0
		}
	}
	return v
}
