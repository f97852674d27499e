//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/correction.wgsl
var correctionShaderSource string

// Bind group slots of the correction shader.
const (
	slotLUT    = 0
	slotSource = 1
	slotParams = 2
)

// paramsSize is the byte size of the params uniform:
// width, height, row_stride, split (four u32).
const paramsSize = 16

// CorrectionShader is the compiled render pipeline that applies the table.
type CorrectionShader struct {
	device hal.Device
	format gputypes.TextureFormat

	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// NewCorrectionShader compiles the shader and builds a pipeline writing
// format. Only RGBA8Unorm and BGRA8Unorm are supported.
func NewCorrectionShader(device hal.Device, format gputypes.TextureFormat) (*CorrectionShader, error) {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
	default:
		return nil, fmt.Errorf("gpu: unsupported output format %v", format)
	}
	s := &CorrectionShader{device: device, format: format}
	if err := s.create(); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

func (s *CorrectionShader) create() error {
	if correctionShaderSource == "" {
		return fmt.Errorf("correction shader source is empty")
	}
	module, err := createShaderModule(s.device, "colorlut_correction", correctionShaderSource)
	if err != nil {
		return err
	}
	s.module = module

	bindLayout, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "colorlut_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: slotLUT, Visibility: gputypes.ShaderStageFragment, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: slotSource, Visibility: gputypes.ShaderStageFragment, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: slotParams, Visibility: gputypes.ShaderStageFragment, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	s.bindLayout = bindLayout

	pipeLayout, err := s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "colorlut_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{s.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	s.pipeLayout = pipeLayout

	pipeline, err := s.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "colorlut_pipeline",
		Layout: s.pipeLayout,
		Vertex: hal.VertexState{
			Module:     s.module,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     s.module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: s.format, WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	s.pipeline = pipeline
	return nil
}

// Format returns the color target format.
func (s *CorrectionShader) Format() gputypes.TextureFormat { return s.format }

// Layout returns the bind group layout for LUTBuffer.Bind.
func (s *CorrectionShader) Layout() hal.BindGroupLayout { return s.bindLayout }

// Draw records the full-screen triangle into rp.
func (s *CorrectionShader) Draw(rp hal.RenderPassEncoder, bg hal.BindGroup) {
	rp.SetPipeline(s.pipeline)
	rp.SetBindGroup(0, bg, nil)
	rp.Draw(3, 1, 0, 0)
}

// Destroy releases pipeline objects in reverse creation order.
func (s *CorrectionShader) Destroy() {
	if s.device == nil {
		return
	}
	if s.pipeline != nil {
		s.device.DestroyRenderPipeline(s.pipeline)
		s.pipeline = nil
	}
	if s.pipeLayout != nil {
		s.device.DestroyPipelineLayout(s.pipeLayout)
		s.pipeLayout = nil
	}
	if s.bindLayout != nil {
		s.device.DestroyBindGroupLayout(s.bindLayout)
		s.bindLayout = nil
	}
	if s.module != nil {
		s.device.DestroyShaderModule(s.module)
		s.module = nil
	}
}
