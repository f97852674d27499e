// Package colorlut is a GPU color correction stage driven by a dense
// 24-bit lookup table.
//
// # Overview
//
// A Filter takes frames and an adjustment configuration (an optional input
// ICC profile plus brightness, contrast, hue and saturation), turns the
// configuration into a table mapping every 8-bit RGB triple to its
// corrected value, uploads the table to a GPU storage buffer once, and
// applies it per pixel in a fragment shader.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/colorlut"
//	    _ "github.com/gogpu/colorlut/gpu" // registers the wgpu renderer
//	)
//
//	settings := colorlut.NewSettings()
//	settings.Set("contrast", 1.2)
//	settings.Set("hue", 15.0)
//
//	f := colorlut.New(settings)
//	if err := f.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Stop()
//
//	out := colorlut.NewFrame(in.Width, in.Height)
//	err := f.RenderFrame(ctx, in, out)
//
// Without the gpu import, or when no GPU is available, frames are corrected
// by SoftwareRenderer on the CPU with identical results.
//
// # Tables
//
// Tables are rebuilt only when the configuration changes; a frame with an
// unchanged configuration costs one struct comparison. Building a table
// evaluates the profile chain
//
//	[input ICC] -> BCHSW abstract profile -> sRGB
//
// on a coarse RGB grid and interpolates the 16,777,216 entries from it.
// See package lut for the table layout.
//
// # Lifecycle
//
// Start, Stop and RenderFrame follow a two-state machine. Starting twice,
// stopping twice or rendering while stopped are host bugs and panic with
// *LifecycleError.
package colorlut
