//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/colorlut"
	"github.com/gogpu/colorlut/lut"
)

var errNotStarted = errors.New("gpu: renderer not started")

// Renderer applies lookup tables with wgpu. It implements colorlut.Renderer.
//
// Start borrows the host's device when the provider exposes HAL objects
// and opens its own Vulkan device otherwise.
type Renderer struct {
	dev    *deviceHandle
	table  *LUTBuffer
	shader *CorrectionShader
	pass   *FramePass
}

var _ colorlut.TextureRenderer = (*Renderer)(nil)

// NewRenderer returns an unstarted renderer.
func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) Name() string { return "wgpu" }

// SetLogger sets the logger for this package.
func (r *Renderer) SetLogger(l *slog.Logger) { setLogger(l) }

// Start acquires a device and creates the table buffer, the pipeline and
// the frame pass.
func (r *Renderer) Start(provider gpucontext.DeviceProvider) error {
	if r.dev != nil {
		return fmt.Errorf("gpu: renderer already started")
	}

	format := gputypes.TextureFormatRGBA8Unorm
	var (
		dev *deviceHandle
		err error
	)
	if provider != nil {
		if provider.SurfaceFormat() == gputypes.TextureFormatBGRA8Unorm {
			format = gputypes.TextureFormatBGRA8Unorm
		}
		dev, err = borrowDevice(provider)
		if err != nil && !errors.Is(err, ErrNoHAL) {
			return err
		}
	}
	if dev == nil {
		if dev, err = openDevice(); err != nil {
			return err
		}
	}
	return r.startWith(dev, format)
}

func (r *Renderer) startWith(dev *deviceHandle, format gputypes.TextureFormat) error {
	table, err := NewLUTBuffer(dev.device, dev.queue)
	if err != nil {
		dev.release()
		return err
	}
	shader, err := NewCorrectionShader(dev.device, format)
	if err != nil {
		table.Release()
		dev.release()
		return err
	}
	r.dev = dev
	r.table = table
	r.shader = shader
	r.pass = NewFramePass(dev.device, dev.queue, shader)
	slogger().Info("GPU renderer started", "device", dev.name, "shared", dev.external, "format", format)
	return nil
}

// Stop releases every GPU object in reverse creation order. A borrowed
// device is left alive.
func (r *Renderer) Stop() {
	if r.pass != nil {
		r.pass.Destroy()
		r.pass = nil
	}
	if r.shader != nil {
		r.shader.Destroy()
		r.shader = nil
	}
	if r.table != nil {
		r.table.Release()
		r.table = nil
	}
	if r.dev != nil {
		r.dev.release()
		r.dev = nil
	}
}

// Upload writes t into the table buffer.
func (r *Renderer) Upload(t *lut.Table) error {
	if r.table == nil {
		return errNotStarted
	}
	_, err := r.table.Upload(t)
	return err
}

// Render corrects in into out on the GPU and reads the result back.
func (r *Renderer) Render(in, out colorlut.Frame, split bool) error {
	if r.pass == nil {
		return errNotStarted
	}
	if r.table.Uploaded() == nil {
		return fmt.Errorf("gpu: no table uploaded")
	}
	if err := in.Validate(); err != nil {
		return err
	}
	if err := out.Validate(); err != nil {
		return err
	}
	if in.Width != out.Width || in.Height != out.Height {
		return fmt.Errorf("%w: input %dx%d, output %dx%d", colorlut.ErrFrameSize, in.Width, in.Height, out.Width, out.Height)
	}
	return r.pass.Render(r.table, in, out, split)
}

// RenderTextures corrects in into out without leaving the GPU.
func (r *Renderer) RenderTextures(in, out hal.Texture, width, height uint32, split bool) error {
	if r.pass == nil {
		return errNotStarted
	}
	if r.table.Uploaded() == nil {
		return fmt.Errorf("gpu: no table uploaded")
	}
	return r.pass.RenderTextures(r.table, in, out, width, height, split)
}
