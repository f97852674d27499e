package lut

import "math"

// Index returns the table index of an RGB triplet.
func Index(r, g, b uint8) uint32 {
	return Pack(r, g, b, 0)
}

// Pack packs four 8-bit channels into one word, red in the low byte.
// This is the byte order produced by WGSL pack4x8unorm.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// Unpack is the inverse of [Pack].
func Unpack(v uint32) (r, g, b, a uint8) {
	return uint8(v), uint8(v >> 8), uint8(v >> 16), uint8(v >> 24) //nolint:gosec // truncation to 8 bits intended
}

// PackUnorm packs normalized channels the way pack4x8unorm does:
// each value is clamped to [0,1], scaled by 255 and rounded.
// NaN packs as 0.
func PackUnorm(r, g, b, a float64) uint32 {
	return Pack(unorm8(r), unorm8(g), unorm8(b), unorm8(a))
}

// UnpackUnorm is the inverse of [PackUnorm], matching unpack4x8unorm.
func UnpackUnorm(v uint32) (r, g, b, a float64) {
	r8, g8, b8, a8 := Unpack(v)
	return float64(r8) / 255, float64(g8) / 255, float64(b8) / 255, float64(a8) / 255
}

func unorm8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Floor(v*255 + 0.5))
}
