// Package color provides the color math used to build correction tables:
// sRGB transfer functions, relative luminance, and CIE XYZ, Lab and LCh
// conversions against the D50 profile connection space white.
package color

// D50 is the XYZ white of the ICC profile connection space.
var D50 = [3]float64{0.9642, 1.0, 0.8249}

// Lab is a CIE L*a*b* color: L in [0,100], a and b roughly in [-128,127].
type Lab struct {
	L, A, B float64
}

// LCh is the cylindrical form of [Lab]. H is in degrees, [0,360).
type LCh struct {
	L, C, H float64
}
