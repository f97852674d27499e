package color

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// go-colorful keeps L in [0,1] and scales a, b by the same factor.
const labScale = 100

// XYZToLab converts D50-relative XYZ to Lab.
func XYZToLab(x, y, z float64) Lab {
	l, a, b := colorful.XyzToLabWhiteRef(x, y, z, D50)
	return Lab{L: l * labScale, A: a * labScale, B: b * labScale}
}

// LabToXYZ converts Lab to D50-relative XYZ.
func LabToXYZ(c Lab) (x, y, z float64) {
	return colorful.LabToXyzWhiteRef(c.L/labScale, c.A/labScale, c.B/labScale, D50)
}

// ToLCh converts Lab to its cylindrical form. Neutral colors get hue 0.
func (c Lab) ToLCh() LCh {
	ch := math.Hypot(c.A, c.B)
	if ch == 0 {
		return LCh{L: c.L}
	}
	return LCh{L: c.L, C: ch, H: NormalizeHue(math.Atan2(c.B, c.A) * 180 / math.Pi)}
}

// ToLab converts LCh back to Lab. Hue is taken modulo 360.
func (c LCh) ToLab() Lab {
	sin, cos := math.Sincos(NormalizeHue(c.H) * math.Pi / 180)
	return Lab{L: c.L, A: c.C * cos, B: c.C * sin}
}

// NormalizeHue wraps degrees into [0,360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 || math.IsNaN(h) {
		return 0
	}
	return h
}
