//go:build !nogpu

// Package gpu registers the wgpu renderer with colorlut.
//
// Import it for side effects to correct frames on the GPU:
//
//	import _ "github.com/gogpu/colorlut/gpu"
//
// Filters created afterwards use the wgpu renderer. If no Vulkan device
// can be opened when a filter starts, the filter logs a warning and falls
// back to colorlut.SoftwareRenderer.
package gpu

import (
	"github.com/gogpu/colorlut"
	gpuimpl "github.com/gogpu/colorlut/internal/gpu"
)

func init() {
	if err := colorlut.RegisterRenderer(New); err != nil {
		colorlut.Logger().Warn("GPU renderer not registered", "err", err)
	}
}

// New returns an unstarted wgpu renderer, for use with colorlut.WithRenderer
// when a filter must not fall back to the CPU.
func New() colorlut.Renderer {
	return gpuimpl.NewRenderer()
}
