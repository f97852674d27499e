//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/colorlut"
	"github.com/gogpu/colorlut/lut"
)

func startShared(t *testing.T, format gputypes.TextureFormat) (*Renderer, *halProviderMock, func()) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	p := &halProviderMock{device: device, queue: queue, format: format}
	r := NewRenderer()
	if err := r.Start(p); err != nil {
		cleanup()
		t.Fatalf("Start failed: %v", err)
	}
	return r, p, cleanup
}

func TestRendererSharedDevice(t *testing.T) {
	r, p, cleanup := startShared(t, gputypes.TextureFormatRGBA8Unorm)
	defer cleanup()

	if !r.dev.external {
		t.Error("provider device not marked as borrowed")
	}
	if r.shader.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8Unorm", r.shader.Format())
	}
	if err := r.Start(p); err == nil {
		t.Error("second Start succeeded")
	}

	r.Stop()
	if r.dev != nil || r.table != nil || r.shader != nil || r.pass != nil {
		t.Error("Stop left resources behind")
	}
	// The borrowed device must still be usable.
	if _, err := NewLUTBuffer(p.device, p.queue); err != nil {
		t.Errorf("borrowed device unusable after Stop: %v", err)
	}
	r.Stop()
}

func TestRendererSurfaceFormat(t *testing.T) {
	r, _, cleanup := startShared(t, gputypes.TextureFormatBGRA8Unorm)
	defer cleanup()
	defer r.Stop()

	if r.shader.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("format = %v, want BGRA8Unorm", r.shader.Format())
	}
}

func TestRendererRender(t *testing.T) {
	r, _, cleanup := startShared(t, gputypes.TextureFormatRGBA8Unorm)
	defer cleanup()
	defer r.Stop()

	in := colorlut.NewFrame(70, 3)
	out := colorlut.NewFrame(70, 3)
	if err := r.Render(in, out, false); err == nil {
		t.Error("Render before Upload succeeded")
	}
	if err := r.Upload(lut.Identity()); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(in, out, true); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if w, h := r.pass.Size(); w != 70 || h != 3 {
		t.Errorf("pass size = %dx%d, want 70x3", w, h)
	}
	if r.pass.rowStride != 128 {
		t.Errorf("row stride = %d texels, want 128", r.pass.rowStride)
	}
	if r.table.Bound() {
		t.Error("table still bound after Render")
	}
	if err := r.Render(in, colorlut.NewFrame(70, 2), false); !errors.Is(err, colorlut.ErrFrameSize) {
		t.Errorf("Render with mismatched frames = %v, want ErrFrameSize", err)
	}
}

func TestRendererNotStarted(t *testing.T) {
	r := NewRenderer()
	if err := r.Upload(lut.Identity()); !errors.Is(err, errNotStarted) {
		t.Errorf("Upload = %v, want errNotStarted", err)
	}
	if err := r.Render(colorlut.NewFrame(1, 1), colorlut.NewFrame(1, 1), false); !errors.Is(err, errNotStarted) {
		t.Errorf("Render = %v, want errNotStarted", err)
	}
	if err := r.RenderTextures(nil, nil, 1, 1, false); !errors.Is(err, errNotStarted) {
		t.Errorf("RenderTextures = %v, want errNotStarted", err)
	}
	r.Stop()
}

func TestBorrowDeviceErrors(t *testing.T) {
	if _, err := borrowDevice(struct{}{}); !errors.Is(err, ErrNoHAL) {
		t.Errorf("borrowDevice(struct{}) = %v, want ErrNoHAL", err)
	}
	if _, err := borrowDevice(&halProviderMock{}); !errors.Is(err, ErrNoHAL) {
		t.Errorf("borrowDevice(nil device) = %v, want ErrNoHAL", err)
	}
}

func TestAlignRow(t *testing.T) {
	tests := []struct{ w, want uint32 }{
		{1, 64}, {64, 64}, {65, 128}, {1920, 1920}, {1921, 1984},
	}
	for _, tt := range tests {
		if got := alignRow(tt.w); got != tt.want {
			t.Errorf("alignRow(%d) = %d, want %d", tt.w, got, tt.want)
		}
	}
}
