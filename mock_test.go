package colorlut

import (
	"errors"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/colorlut/lut"
)

// mockRenderer records calls and corrects frames on the CPU.
type mockRenderer struct {
	startErr error
	logger   *slog.Logger
	provider gpucontext.DeviceProvider

	starts, stops int
	uploads       []*lut.Table
	renders       int
	split         bool
	soft          SoftwareRenderer
}

func (m *mockRenderer) Name() string             { return "mock" }
func (m *mockRenderer) SetLogger(l *slog.Logger) { m.logger = l }

func (m *mockRenderer) Start(p gpucontext.DeviceProvider) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.starts++
	m.provider = p
	return nil
}

func (m *mockRenderer) Stop() { m.stops++ }

func (m *mockRenderer) Upload(t *lut.Table) error {
	m.uploads = append(m.uploads, t)
	return m.soft.Upload(t)
}

func (m *mockRenderer) Render(in, out Frame, split bool) error {
	m.renders++
	m.split = split
	return m.soft.Render(in, out, split)
}

var errNoDevice = errors.New("no device")

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	format gputypes.TextureFormat
}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }

// solidFrame returns a w×h frame filled with one color.
func solidFrame(w, h int, r, g, b, a uint8) Frame {
	f := NewFrame(w, h)
	for i := 0; i < len(f.Pix); i += 4 {
		f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3] = r, g, b, a
	}
	return f
}

// mockTextureRenderer adds texture rendering to mockRenderer.
type mockTextureRenderer struct {
	mockRenderer
	textureRenders int
	lastSize       [2]uint32
}

func (m *mockTextureRenderer) RenderTextures(in, out hal.Texture, width, height uint32, split bool) error {
	m.textureRenders++
	m.split = split
	m.lastSize = [2]uint32{width, height}
	return nil
}

// stubTexture satisfies hal.Texture for code paths that never touch it.
type stubTexture struct{ hal.Texture }
