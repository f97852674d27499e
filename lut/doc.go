// Package lut holds the dense 24-bit color lookup table shared by the
// table builder, the software renderer and the GPU correction shader.
//
// A [Table] has one entry per representable RGB triplet. Entry indices and
// entry values use the same packing as WGSL pack4x8unorm: red in the low
// byte, then green, then blue, with the alpha byte zero.
//
//	idx := lut.Index(r, g, b)        // r | g<<8 | b<<16
//	r2, g2, b2 := t.Lookup(r, g, b)  // corrected triplet
//
// Tables are built once per configuration and are never mutated after they
// have been handed to a renderer.
package lut
