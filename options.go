package colorlut

import "log/slog"

// Option configures a Filter during creation.
//
// Example:
//
//	f := colorlut.New(settings,
//	    colorlut.WithLogger(logger),
//	    colorlut.WithAsyncRebuild(true),
//	)
type Option func(*options)

type options struct {
	renderer   Renderer
	logger     *slog.Logger
	split      bool
	async      bool
	history    int
	points     int
	gridPoints int
	workers    int
}

func defaultOptions() options {
	return options{}
}

func (o *options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}

// WithRenderer sets the renderer instead of the registered one.
// The filter does not fall back to software rendering when an injected
// renderer fails to start.
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithLogger sets a logger for this filter, overriding SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDebugSplit leaves the top half of every frame uncorrected for
// side-by-side comparison.
func WithDebugSplit(on bool) Option {
	return func(o *options) {
		o.split = on
	}
}

// WithAsyncRebuild moves table rebuilds after the first to a background
// goroutine. Frames keep using the previous table until the new one is
// published.
func WithAsyncRebuild(on bool) Option {
	return func(o *options) {
		o.async = on
	}
}

// WithHistory keeps n previously built tables (64 MiB each) so toggling
// between configurations does not rebuild.
func WithHistory(n int) Option {
	return func(o *options) {
		o.history = n
	}
}

// WithSamplePoints sets the abstract profile grid size per axis, at most
// 255. Zero selects the default of 33.
func WithSamplePoints(n int) Option {
	return func(o *options) {
		o.points = n
	}
}

// WithGridPoints sets the device link grid size used to fill the table.
// Zero selects the default.
func WithGridPoints(n int) Option {
	return func(o *options) {
		o.gridPoints = n
	}
}

// WithWorkers sets the number of goroutines used for table builds and
// software rendering. Zero means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
