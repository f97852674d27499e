package colorlut

import (
	"context"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/colorlut/internal/cache"
	"github.com/gogpu/colorlut/internal/parallel"
	"github.com/gogpu/colorlut/internal/profile"
	"github.com/gogpu/colorlut/lut"
)

// Element is the lifecycle a video pipeline host drives.
type Element interface {
	OnStart(provider gpucontext.DeviceProvider) error
	OnStop()
	OnRenderFrame(in, out Frame) error
}

// Filter is the color correction stage. It is created stopped; Start
// acquires renderer resources and an empty table cache, Stop releases
// them. All methods are safe for concurrent use.
type Filter struct {
	settings *Settings
	opts     options

	mu    sync.Mutex
	state State
	res   *resources
}

// resources exist only while the filter is started.
type resources struct {
	renderer Renderer
	pool     *parallel.WorkerPool
	cache    cache.Ensurer
	async    *cache.AsyncLUTCache
	uploaded *lut.Table
}

var _ Element = (*Filter)(nil)

// New returns a stopped filter reading its configuration from settings.
// A nil settings gets a fresh NewSettings.
func New(settings *Settings, opts ...Option) *Filter {
	if settings == nil {
		settings = NewSettings()
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Filter{settings: settings, opts: o}
}

// Settings returns the live settings.
func (f *Filter) Settings() *Settings { return f.settings }

// State returns the lifecycle state.
func (f *Filter) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Start is OnStart without a host device.
func (f *Filter) Start(ctx context.Context) error {
	return f.start(ctx, nil)
}

// OnStart acquires resources, borrowing the provider's GPU device when the
// renderer supports it. It panics with *LifecycleError if already started.
func (f *Filter) OnStart(provider gpucontext.DeviceProvider) error {
	return f.start(context.Background(), provider)
}

func (f *Filter) start(_ context.Context, provider gpucontext.DeviceProvider) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Stopped {
		panic(&LifecycleError{Op: "Start", State: f.state})
	}
	log := f.opts.log()

	r := f.opts.renderer
	injected := r != nil
	if !injected {
		r = newDefaultRenderer()
	}
	propagateLogger(r, log)
	if err := r.Start(provider); err != nil {
		if injected {
			return fmt.Errorf("colorlut: start %s renderer: %w", r.Name(), err)
		}
		log.Warn("renderer unavailable, using software", "renderer", r.Name(), "err", err)
		r = NewSoftwareRendererWorkers(f.opts.workers)
		propagateLogger(r, log)
		if err := r.Start(provider); err != nil {
			return fmt.Errorf("colorlut: start software renderer: %w", err)
		}
	}

	pool := parallel.NewWorkerPool(f.opts.workers)
	builder := &profile.Builder{
		Points:     f.opts.points,
		GridPoints: f.opts.gridPoints,
		Pool:       pool,
		Logger:     log,
	}
	lc := cache.NewLUTCache(builder.Build,
		cache.WithHistory(f.opts.history),
		cache.WithLogger(log),
	)
	res := &resources{renderer: r, pool: pool, cache: lc}
	if f.opts.async {
		res.async = cache.NewAsyncLUTCache(lc)
		res.cache = res.async
	}

	f.res = res
	f.state = Started
	log.Info("filter started", "renderer", r.Name(), "async", f.opts.async)
	return nil
}

// Stop releases the renderer, the cache and the worker pool. It panics
// with *LifecycleError if the filter is not started.
func (f *Filter) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Started {
		panic(&LifecycleError{Op: "Stop", State: f.state})
	}
	res := f.res
	res.cache.Reset()
	res.renderer.Stop()
	res.pool.Close()
	f.res = nil
	f.state = Stopped
	f.opts.log().Info("filter stopped")
}

// OnStop is Stop.
func (f *Filter) OnStop() { f.Stop() }

// OnRenderFrame is RenderFrame with a background context.
func (f *Filter) OnRenderFrame(in, out Frame) error {
	return f.RenderFrame(context.Background(), in, out)
}

// RenderFrame corrects in into out with the table for the current
// settings, building and uploading it first when the settings changed.
// A failed build returns *BuildError and leaves out untouched.
// It panics with *LifecycleError if the filter is not started.
func (f *Filter) RenderFrame(ctx context.Context, in, out Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Started {
		panic(&LifecycleError{Op: "RenderFrame", State: f.state})
	}
	if err := checkFrames(in, out); err != nil {
		return err
	}

	if err := f.prepareLocked(ctx); err != nil {
		return err
	}
	return f.res.renderer.Render(in, out, f.opts.split)
}

// OnRenderTextures is RenderTextures with a background context.
func (f *Filter) OnRenderTextures(in, out hal.Texture, width, height uint32) error {
	return f.RenderTextures(context.Background(), in, out, width, height)
}

// RenderTextures is RenderFrame for GPU-resident frames. The renderer
// must implement TextureRenderer; the software renderer does not, and
// ErrTexturesUnsupported is returned. It panics with *LifecycleError if
// the filter is not started.
func (f *Filter) RenderTextures(ctx context.Context, in, out hal.Texture, width, height uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Started {
		panic(&LifecycleError{Op: "RenderTextures", State: f.state})
	}
	tr, ok := f.res.renderer.(TextureRenderer)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTexturesUnsupported, f.res.renderer.Name())
	}
	if in == nil || out == nil || width == 0 || height == 0 {
		return fmt.Errorf("%w: textures %dx%d", ErrFrameSize, width, height)
	}
	if err := f.prepareLocked(ctx); err != nil {
		return err
	}
	return tr.RenderTextures(in, out, width, height, f.opts.split)
}

// prepareLocked makes sure the renderer holds the table for the current
// settings, uploading only when it changed since the last frame.
func (f *Filter) prepareLocked(ctx context.Context) error {
	t, err := f.ensureLocked(ctx)
	if err != nil {
		return err
	}
	res := f.res
	if t == res.uploaded {
		return nil
	}
	if err := res.renderer.Upload(t); err != nil {
		return fmt.Errorf("colorlut: upload table: %w", err)
	}
	res.uploaded = t
	f.opts.log().Debug("table uploaded", "renderer", res.renderer.Name())
	return nil
}

// Table returns the table for the current settings, building it if
// needed. It panics with *LifecycleError if the filter is not started.
func (f *Filter) Table(ctx context.Context) (*lut.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Started {
		panic(&LifecycleError{Op: "Table", State: f.state})
	}
	return f.ensureLocked(ctx)
}

func (f *Filter) ensureLocked(ctx context.Context) (*lut.Table, error) {
	cfg := f.settings.Snapshot()
	t, _, err := f.res.cache.Ensure(ctx, cfg.params())
	if err != nil {
		return nil, &BuildError{Config: cfg, Err: err}
	}
	return t, nil
}

// BuildTable computes the table for cfg outside any filter. Only the
// sampling options (WithSamplePoints, WithGridPoints, WithWorkers,
// WithLogger) apply.
func BuildTable(ctx context.Context, cfg Config, opts ...Option) (*lut.Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()
	b := &profile.Builder{Points: o.points, GridPoints: o.gridPoints, Pool: pool, Logger: o.log()}
	t, err := b.Build(ctx, cfg.normalized().params())
	if err != nil {
		return nil, &BuildError{Config: cfg, Err: err}
	}
	return t, nil
}
