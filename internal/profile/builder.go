package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/colorlut/internal/parallel"
	"github.com/gogpu/colorlut/lut"
)

// Params is the adjustment a table is built for. It is comparable; two
// Params describe the same table exactly when they are ==.
type Params struct {
	ICC        string // input profile path, empty for none
	Brightness float64
	Contrast   float64
	Hue        float64
	Saturation float64
}

// IdentityParams is the configuration whose table maps every color to itself.
var IdentityParams = Params{Contrast: 1}

// IsIdentity reports whether p equals [IdentityParams].
func (p Params) IsIdentity() bool { return p == IdentityParams }

// Adjustment returns the scalar part of p.
func (p Params) Adjustment() Adjustment {
	return Adjustment{Brightness: p.Brightness, Contrast: p.Contrast, Hue: p.Hue, Saturation: p.Saturation}
}

// Builder turns Params into lookup tables. The zero value is usable.
type Builder struct {
	// Points is the abstract profile grid size; 0 means DefaultPoints.
	Points int

	// GridPoints is the device link grid size; 0 means DefaultGridPoints.
	GridPoints int

	// Flags are added to FlagNoNegatives|FlagKeepSequence.
	Flags Flags

	// Pool runs the table fill. A temporary pool is used when nil.
	Pool *parallel.WorkerPool

	// Logger receives build diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Build computes the table for p. Errors from profile loading, abstract
// profile sampling or transform construction are returned; there is no
// identity fallback.
func (b *Builder) Build(ctx context.Context, p Params) (*lut.Table, error) {
	log := b.logger()
	if p.IsIdentity() {
		log.Debug("identity table")
		return lut.Identity(), nil
	}

	start := time.Now()
	t, err := b.NewChain(p)
	if err != nil {
		return nil, err
	}

	table := lut.Identity()
	if err := t.TransformInPlace(ctx, table.Entries()); err != nil {
		return nil, fmt.Errorf("transform table: %w", err)
	}

	log.Debug("table built",
		"profiles", len(t.Profiles()),
		"optimized", t.Flags()&FlagNoOptimize == 0,
		"elapsed", time.Since(start))
	return table, nil
}

// NewChain constructs the transform for p without evaluating it:
// [input profile] + BCHSW abstract profile + sRGB output.
func (b *Builder) NewChain(p Params) (*Transform, error) {
	points := b.Points
	if points == 0 {
		points = DefaultPoints
	}
	abstract, err := NewBCHSWAbstract(points, p.Brightness, p.Contrast, p.Hue, p.Saturation)
	if err != nil {
		return nil, fmt.Errorf("create abstract profile: %w", err)
	}
	output, err := NewSRGBOutput()
	if err != nil {
		return nil, fmt.Errorf("create output profile: %w", err)
	}

	profiles := make([]Profile, 0, 3)
	if p.ICC != "" {
		input, err := LoadProfile(p.ICC)
		if err != nil {
			return nil, fmt.Errorf("open input profile: %w", err)
		}
		profiles = append(profiles, input)
	}
	profiles = append(profiles, abstract)

	flags := FlagNoNegatives | FlagKeepSequence | b.Flags
	opts := []Option{WithPool(b.Pool)}
	if b.GridPoints != 0 {
		opts = append(opts, WithGridPoints(b.GridPoints))
	}

	var t *Transform
	if len(profiles) == 1 {
		t, err = NewTransform(abstract, output, Perceptual, flags, opts...)
	} else {
		t, err = NewMultiprofileTransform(append(profiles, output), Perceptual, flags, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("create transform: %w", err)
	}
	return t, nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.New(slog.DiscardHandler)
}
