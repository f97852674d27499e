package colorlut

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/colorlut/internal/parallel"
	"github.com/gogpu/colorlut/lut"
)

// errNoTable is returned by Render before the first Upload.
var errNoTable = errors.New("colorlut: no table uploaded")

// rowsPerTask is the number of rows one worker corrects at a time.
const rowsPerTask = 16

// SoftwareRenderer applies the table on the CPU with the same pixel
// contract as the GPU shader. It is the fallback when no GPU renderer is
// registered and the reference the GPU path is tested against.
type SoftwareRenderer struct {
	workers int
	pool    *parallel.WorkerPool
	table   *lut.Table
	logger  *slog.Logger
}

var _ Renderer = (*SoftwareRenderer)(nil)

// NewSoftwareRenderer returns a renderer using GOMAXPROCS workers.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{logger: newNopLogger()}
}

// NewSoftwareRendererWorkers returns a renderer using n workers.
func NewSoftwareRendererWorkers(n int) *SoftwareRenderer {
	r := NewSoftwareRenderer()
	r.workers = n
	return r
}

func (r *SoftwareRenderer) Name() string { return "software" }

// SetLogger sets the logger used for diagnostics.
func (r *SoftwareRenderer) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	r.logger = l
}

// Start creates the worker pool. The provider is ignored.
func (r *SoftwareRenderer) Start(gpucontext.DeviceProvider) error {
	r.pool = parallel.NewWorkerPool(r.workers)
	r.logger.Debug("software renderer started", "workers", r.pool.Workers())
	return nil
}

// Stop closes the pool and forgets the table.
func (r *SoftwareRenderer) Stop() {
	if r.pool != nil {
		r.pool.Close()
		r.pool = nil
	}
	r.table = nil
}

// Upload keeps a reference to t. Tables are immutable, so no copy is made.
func (r *SoftwareRenderer) Upload(t *lut.Table) error {
	if t == nil || t.Len() != lut.Len {
		return lut.ErrLength
	}
	r.table = t
	return nil
}

// Render corrects in into out.
func (r *SoftwareRenderer) Render(in, out Frame, split bool) error {
	if r.table == nil {
		return errNoTable
	}
	if err := checkFrames(in, out); err != nil {
		return err
	}
	half := -1
	if split {
		half = in.Height / 2
	}
	rows := func(lo, hi int) {
		for y := lo; y < hi; y++ {
			correctRow(r.table, in.Pix[y*in.Stride:], out.Pix[y*out.Stride:], in.Width, y < half)
		}
	}
	if r.pool == nil {
		rows(0, in.Height)
		return nil
	}
	return r.pool.Range(context.Background(), in.Height, rowsPerTask, rows)
}

// correctRow maps one row of width pixels. A passthrough row is copied
// verbatim, alpha included; a corrected row gets opaque alpha.
func correctRow(t *lut.Table, src, dst []byte, width int, passthrough bool) {
	n := width * 4
	if passthrough {
		copy(dst[:n], src[:n])
		return
	}
	entries := t.Entries()
	for i := 0; i < n; i += 4 {
		v := entries[lut.Index(src[i], src[i+1], src[i+2])]
		dst[i+0] = uint8(v)
		dst[i+1] = uint8(v >> 8)
		dst[i+2] = uint8(v >> 16)
		dst[i+3] = 0xFF
	}
}
