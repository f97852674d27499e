package color

import "math"

// sRGBToLinearLUT provides O(1) sRGB to linear conversion for 8-bit input.
var sRGBToLinearLUT [256]float32

func init() {
	for i := 0; i < 256; i++ {
		sRGBToLinearLUT[i] = float32(SRGBToLinear(float64(i) / 255.0))
	}
}

// SRGBToLinearFast converts an sRGB byte to linear light using a lookup table.
//
//	r := SRGBToLinearFast(128) // ~0.2159 (not 0.5!)
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGB8 converts linear light to an sRGB byte with rounding.
// Input is clamped to [0,1].
func LinearToSRGB8(l float64) uint8 {
	s := LinearToSRGB(Clamp01(l))
	return uint8(math.Min(255, math.Floor(s*255+0.5))) //nolint:gosec // clamped to [0,255]
}
