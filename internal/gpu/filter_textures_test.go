//go:build !nogpu

package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/colorlut"
)

func createTexture(t *testing.T, device hal.Device, w, h uint32, format gputypes.TextureFormat, usage gputypes.TextureUsage) hal.Texture {
	t.Helper()
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "test_texture",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	t.Cleanup(func() { device.DestroyTexture(tex) })
	return tex
}

func TestFilterRenderTexturesOnDevice(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()
	p := &halProviderMock{device: device, queue: queue, format: gputypes.TextureFormatRGBA8Unorm}

	r := NewRenderer()
	f := colorlut.New(nil, colorlut.WithRenderer(r))
	if err := f.OnStart(p); err != nil {
		t.Fatalf("OnStart: %v", err)
	}
	defer f.OnStop()

	in := createTexture(t, device, 96, 4, gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureUsageCopySrc|gputypes.TextureUsageTextureBinding)
	out := createTexture(t, device, 96, 4, gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc)

	if err := f.OnRenderTextures(in, out, 96, 4); err != nil {
		t.Fatalf("OnRenderTextures: %v", err)
	}
	uploaded := r.table.Uploaded()
	if uploaded == nil || !uploaded.IsIdentity() {
		t.Fatal("identity table not uploaded before the draw")
	}
	if w, h := r.pass.Size(); w != 96 || h != 4 {
		t.Errorf("pass size = %dx%d, want 96x4", w, h)
	}
	if r.pass.rowStride != 128 {
		t.Errorf("row stride = %d texels, want 128", r.pass.rowStride)
	}
	if r.table.Bound() {
		t.Error("table still bound after RenderTextures")
	}

	if err := f.OnRenderTextures(in, out, 96, 4); err != nil {
		t.Fatalf("second OnRenderTextures: %v", err)
	}
	if r.table.Uploaded() != uploaded {
		t.Error("unchanged settings uploaded a new table")
	}
}
