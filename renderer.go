package colorlut

import (
	"errors"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/colorlut/lut"
)

// Renderer applies an uploaded lookup table to frames.
//
// A Renderer serves one filter. Calls are serialized by the filter, so
// implementations need no locking of their own.
type Renderer interface {
	// Name identifies the implementation in logs (e.g. "wgpu", "software").
	Name() string

	// Start acquires device resources. provider may be nil.
	Start(provider gpucontext.DeviceProvider) error

	// Stop releases everything acquired by Start.
	Stop()

	// Upload replaces the active table.
	Upload(t *lut.Table) error

	// Render writes the corrected in to out. When split is set the top
	// half of the frame is copied through unmodified.
	Render(in, out Frame, split bool) error
}

// TextureRenderer is implemented by renderers that can correct GPU
// textures in place of CPU frames, for hosts whose frames never leave
// the device.
type TextureRenderer interface {
	Renderer

	// RenderTextures writes the corrected in to out. Both textures are
	// width x height.
	RenderTextures(in, out hal.Texture, width, height uint32, split bool) error
}

// RendererFactory creates a fresh Renderer for one filter.
type RendererFactory func() Renderer

var (
	factoryMu sync.RWMutex
	factory   RendererFactory
)

// RegisterRenderer installs the factory used by filters created without
// WithRenderer. GPU backend packages call it from init:
//
//	import _ "github.com/gogpu/colorlut/gpu" // enables the wgpu renderer
//
// A later registration replaces an earlier one.
func RegisterRenderer(f RendererFactory) error {
	if f == nil {
		return errors.New("colorlut: renderer factory must not be nil")
	}
	factoryMu.Lock()
	factory = f
	factoryMu.Unlock()
	return nil
}

// newDefaultRenderer returns a renderer from the registered factory, or
// the software renderer when none is registered.
func newDefaultRenderer() Renderer {
	factoryMu.RLock()
	f := factory
	factoryMu.RUnlock()
	if f != nil {
		if r := f(); r != nil {
			return r
		}
	}
	return NewSoftwareRenderer()
}
