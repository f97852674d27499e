package color

import (
	"math"
	"testing"
)

// TestSRGBToLinearEdgeCases tests edge cases for sRGB to linear conversion.
func TestSRGBToLinearEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.04045, 0.04045 / 12.92},
		{"mid gray", 0.5, math.Pow((0.5+0.055)/1.055, 2.4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SRGBToLinear(tt.input)
			if !near(got, tt.want, 1e-12) {
				t.Errorf("SRGBToLinear(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoundTripSRGBLinear(t *testing.T) {
	for i := 0; i <= 100; i++ {
		s := float64(i) / 100
		if got := LinearToSRGB(SRGBToLinear(s)); !near(got, s, 1e-9) {
			t.Errorf("round trip %v = %v", s, got)
		}
	}
}

func TestLuminance(t *testing.T) {
	if got := Luminance(0, 0, 0); got != 0 {
		t.Errorf("Luminance(black) = %v", got)
	}
	if got := Luminance(255, 255, 255); !near(got, 1, 1e-6) {
		t.Errorf("Luminance(white) = %v", got)
	}
	if Luminance(0, 255, 0) <= Luminance(255, 0, 0) {
		t.Error("green should be brighter than red")
	}
	if Luminance(129, 129, 129) <= Luminance(128, 128, 128) {
		t.Error("luminance must increase with gray level")
	}
}

func TestClamp01(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{
		{-1, 0}, {0.25, 0.25}, {2, 1}, {math.NaN(), 0},
	} {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
