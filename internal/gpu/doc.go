//go:build !nogpu

// Package gpu applies colorlut tables with wgpu.
//
// The pieces, in the order a frame uses them:
//
//   - LUTBuffer: the 64 MiB storage buffer holding the table, bound at
//     slot 0 for one draw and unbound after it
//   - CorrectionShader: the render pipeline built from
//     shaders/correction.wgsl (compiled to SPIR-V by naga)
//   - FramePass: source texel buffer, params uniform, render target and
//     readback staging, resized with the frame
//   - Renderer: owns the device and the three objects above and implements
//     colorlut.Renderer
//
// # Shader contract
//
// For every output pixel the fragment stage reads the source texel,
// computes idx = pack4x8unorm(vec4(rgb, 0)) and writes
// vec4(unpack4x8unorm(lut[idx]).rgb, 1). With the debug split enabled the
// top half of the frame is written unmodified.
//
// # Devices
//
// A device obtained from a host through HalDevice()/HalQueue() is borrowed
// and never destroyed. Otherwise the Vulkan backend is opened on the first
// discrete or integrated adapter.
package gpu
