//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/colorlut"
)

// rowAlign is the texel alignment of source and readback rows. Texture to
// buffer copies need 256-byte rows.
const rowAlign = 256 / 4

// fenceTimeout bounds how long a frame waits for the GPU.
const fenceTimeout = 5 * time.Second

// FramePass owns the per-size resources of one correction draw: the source
// texel buffer, the params uniform, the render target and the readback
// staging buffer. They are recreated only when the frame size changes.
type FramePass struct {
	device hal.Device
	queue  hal.Queue
	shader *CorrectionShader

	width, height uint32
	rowStride     uint32 // texels

	srcBuf     hal.Buffer
	paramsBuf  hal.Buffer
	target     hal.Texture
	targetView hal.TextureView
	staging    hal.Buffer

	upload   []byte
	readback []byte
}

// NewFramePass returns a pass drawing with shader. Resources are created
// on the first render.
func NewFramePass(device hal.Device, queue hal.Queue, shader *CorrectionShader) *FramePass {
	return &FramePass{device: device, queue: queue, shader: shader}
}

// Size returns the dimensions the pass is currently sized for.
func (p *FramePass) Size() (uint32, uint32) { return p.width, p.height }

func alignRow(w uint32) uint32 {
	return (w + rowAlign - 1) / rowAlign * rowAlign
}

func (p *FramePass) ensure(w, h uint32) error {
	if p.width == w && p.height == h && p.srcBuf != nil {
		return nil
	}
	p.destroyResources()

	stride := alignRow(w)
	texels := uint64(stride) * uint64(h)

	var err error
	p.srcBuf, err = p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "colorlut_source",
		Size:  texels * 4,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create source buffer: %w", err)
	}
	p.paramsBuf, err = p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "colorlut_params",
		Size:  paramsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		p.destroyResources()
		return fmt.Errorf("create params buffer: %w", err)
	}
	p.target, err = p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "colorlut_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        p.shader.Format(),
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		p.destroyResources()
		return fmt.Errorf("create target texture: %w", err)
	}
	p.targetView, err = p.createView(p.target, "colorlut_target_view")
	if err != nil {
		p.destroyResources()
		return err
	}
	p.staging, err = p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "colorlut_staging",
		Size:  texels * 4,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		p.destroyResources()
		return fmt.Errorf("create staging buffer: %w", err)
	}

	p.width, p.height, p.rowStride = w, h, stride
	p.upload = make([]byte, texels*4)
	p.readback = make([]byte, texels*4)
	slogger().Debug("frame pass resized", "width", w, "height", h, "row_stride", stride)
	return nil
}

func (p *FramePass) createView(tex hal.Texture, label string) (hal.TextureView, error) {
	view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label,
		Format:        p.shader.Format(),
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return view, nil
}

func (p *FramePass) writeParams(split bool) {
	buf := make([]byte, paramsSize)
	binary.LittleEndian.PutUint32(buf[0:4], p.width)
	binary.LittleEndian.PutUint32(buf[4:8], p.height)
	binary.LittleEndian.PutUint32(buf[8:12], p.rowStride)
	if split {
		binary.LittleEndian.PutUint32(buf[12:16], 1)
	}
	p.queue.WriteBuffer(p.paramsBuf, 0, buf)
}

func (p *FramePass) bind(table *LUTBuffer) (hal.BindGroup, error) {
	return table.Bind(p.shader.Layout(), slotLUT,
		gputypes.BindGroupEntry{Binding: slotSource, Resource: gputypes.BufferBinding{
			Buffer: p.srcBuf.NativeHandle(), Offset: 0, Size: uint64(p.rowStride) * uint64(p.height) * 4,
		}},
		gputypes.BindGroupEntry{Binding: slotParams, Resource: gputypes.BufferBinding{
			Buffer: p.paramsBuf.NativeHandle(), Offset: 0, Size: paramsSize,
		}},
	)
}

// Render corrects in into out through table. Both frames must have the
// same dimensions.
func (p *FramePass) Render(table *LUTBuffer, in, out colorlut.Frame, split bool) error {
	w, h := uint32(in.Width), uint32(in.Height) //nolint:gosec // frame dimensions are validated by the caller
	if err := p.ensure(w, h); err != nil {
		return err
	}

	rowBytes := in.Width * 4
	pitch := int(p.rowStride) * 4
	for y := 0; y < in.Height; y++ {
		copy(p.upload[y*pitch:y*pitch+rowBytes], in.Pix[y*in.Stride:y*in.Stride+rowBytes])
	}
	p.queue.WriteBuffer(p.srcBuf, 0, p.upload)
	p.writeParams(split)

	bg, err := p.bind(table)
	if err != nil {
		return err
	}
	defer table.Unbind()

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "colorlut_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("colorlut_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	p.encodeDraw(encoder, p.targetView, bg)

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: p.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(p.target, p.staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: p.rowStride * 4, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: p.target, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	if err := p.submit(encoder); err != nil {
		return err
	}
	if err := p.queue.ReadBuffer(p.staging, 0, p.readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}

	bgra := p.shader.Format() == gputypes.TextureFormatBGRA8Unorm
	for y := 0; y < in.Height; y++ {
		src := p.readback[y*pitch : y*pitch+rowBytes]
		dst := out.Pix[y*out.Stride : y*out.Stride+rowBytes]
		if !bgra {
			copy(dst, src)
			continue
		}
		for i := 0; i < rowBytes; i += 4 {
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = src[i+3]
		}
	}
	return nil
}

// RenderTextures corrects in into out without a CPU round trip. in must
// be an RGBA8 texture usable as a copy source; out must have the shader's
// format and render attachment usage.
func (p *FramePass) RenderTextures(table *LUTBuffer, in, out hal.Texture, w, h uint32, split bool) error {
	if err := p.ensure(w, h); err != nil {
		return err
	}
	p.writeParams(split)

	outView, err := p.createView(out, "colorlut_output_view")
	if err != nil {
		return err
	}
	defer p.device.DestroyTextureView(outView)

	bg, err := p.bind(table)
	if err != nil {
		return err
	}
	defer table.Unbind()

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "colorlut_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("colorlut_textures"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	encoder.CopyTextureToBuffer(in, p.srcBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: p.rowStride * 4, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: in, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	p.encodeDraw(encoder, outView, bg)
	return p.submit(encoder)
}

func (p *FramePass) encodeDraw(encoder hal.CommandEncoder, view hal.TextureView, bg hal.BindGroup) {
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "colorlut_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	p.shader.Draw(rp, bg)
	rp.End()
}

func (p *FramePass) submit(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	fence, err := p.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer p.device.DestroyFence(fence)

	if err := p.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := p.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

func (p *FramePass) destroyResources() {
	if p.staging != nil {
		p.device.DestroyBuffer(p.staging)
		p.staging = nil
	}
	if p.targetView != nil {
		p.device.DestroyTextureView(p.targetView)
		p.targetView = nil
	}
	if p.target != nil {
		p.device.DestroyTexture(p.target)
		p.target = nil
	}
	if p.paramsBuf != nil {
		p.device.DestroyBuffer(p.paramsBuf)
		p.paramsBuf = nil
	}
	if p.srcBuf != nil {
		p.device.DestroyBuffer(p.srcBuf)
		p.srcBuf = nil
	}
	p.width, p.height, p.rowStride = 0, 0, 0
	p.upload, p.readback = nil, nil
}

// Destroy releases all per-size resources. Safe to call more than once.
func (p *FramePass) Destroy() {
	p.destroyResources()
}
