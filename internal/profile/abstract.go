package profile

import (
	"fmt"
	"math"

	"github.com/gogpu/colorlut/internal/color"
)

const (
	// MinPoints is the smallest usable abstract profile grid.
	MinPoints = 2

	// MaxPoints is the largest abstract profile grid. ICC CLUTs encode the
	// grid size of each axis in one byte.
	MaxPoints = 255

	// DefaultPoints is the abstract grid size used when none is configured.
	DefaultPoints = 33
)

// Lab domain covered by the abstract grid.
const (
	labMinL, labMaxL   = 0.0, 100.0
	labMinAB, labMaxAB = -128.0, 127.0
)

// Adjustment holds the brightness/contrast/hue/saturation parameters of
// an abstract profile. The zero Contrast is not the identity; use
// [IdentityAdjustment].
type Adjustment struct {
	Brightness float64 // added to L*
	Contrast   float64 // multiplies L*
	Hue        float64 // degrees added to the LCh hue angle
	Saturation float64 // added to LCh chroma
}

// IdentityAdjustment leaves every color unchanged.
var IdentityAdjustment = Adjustment{Contrast: 1}

// IsIdentity reports whether a equals [IdentityAdjustment].
func (a Adjustment) IsIdentity() bool { return a == IdentityAdjustment }

// apply runs the adjustment on one Lab value and clamps the result to the
// encodable Lab range.
func (a Adjustment) apply(in color.Lab) color.Lab {
	lch := in.ToLCh()
	lch.L = lch.L*a.Contrast + a.Brightness
	lch.C += a.Saturation
	lch.H += a.Hue
	out := lch.ToLab()
	out.L = clamp(out.L, labMinL, labMaxL)
	out.A = clamp(out.A, labMinAB, labMaxAB)
	out.B = clamp(out.B, labMinAB, labMaxAB)
	return out
}

// AbstractProfile is a synthetic abstract profile that applies an
// [Adjustment] in Lab. The adjustment is sampled once on a regular
// points³ grid and evaluated by trilinear interpolation, so Apply is cheap
// and safe for concurrent use.
type AbstractProfile struct {
	adj    Adjustment
	points int
	grid   []float32 // points³ Lab triples, L fastest
}

var _ Profile = (*AbstractProfile)(nil)

// NewBCHSWAbstract samples a brightness/contrast/hue/saturation abstract
// profile with the given number of grid points per axis.
func NewBCHSWAbstract(points int, brightness, contrast, hue, saturation float64) (*AbstractProfile, error) {
	if points < MinPoints || points > MaxPoints {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrSamplePoints, points, MinPoints, MaxPoints)
	}
	adj := Adjustment{Brightness: brightness, Contrast: contrast, Hue: hue, Saturation: saturation}
	for _, v := range []float64{brightness, contrast, hue, saturation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %+v", ErrNonFinite, adj)
		}
	}

	p := &AbstractProfile{
		adj:    adj,
		points: points,
		grid:   make([]float32, points*points*points*3),
	}
	n := float64(points - 1)
	i := 0
	for bi := 0; bi < points; bi++ {
		for ai := 0; ai < points; ai++ {
			for li := 0; li < points; li++ {
				in := color.Lab{
					L: labMinL + (labMaxL-labMinL)*float64(li)/n,
					A: labMinAB + (labMaxAB-labMinAB)*float64(ai)/n,
					B: labMinAB + (labMaxAB-labMinAB)*float64(bi)/n,
				}
				out := adj.apply(in)
				p.grid[i+0] = float32(out.L)
				p.grid[i+1] = float32(out.A)
				p.grid[i+2] = float32(out.B)
				i += 3
			}
		}
	}
	return p, nil
}

// Name describes the adjustment.
func (p *AbstractProfile) Name() string {
	return fmt.Sprintf("bchsw(b=%g c=%g h=%g s=%g)", p.adj.Brightness, p.adj.Contrast, p.adj.Hue, p.adj.Saturation)
}

// Class always returns ClassAbstract.
func (p *AbstractProfile) Class() Class { return ClassAbstract }

// Points returns the grid size per axis.
func (p *AbstractProfile) Points() int { return p.points }

// Adjustment returns the sampled parameters.
func (p *AbstractProfile) Adjustment() Adjustment { return p.adj }

// IsIdentity reports whether the profile leaves colors unchanged.
func (p *AbstractProfile) IsIdentity() bool { return p.adj.IsIdentity() }

// ApplyLab maps one Lab color through the sampled grid.
func (p *AbstractProfile) ApplyLab(in color.Lab) color.Lab {
	n := float64(p.points - 1)
	fl := clamp((in.L-labMinL)/(labMaxL-labMinL), 0, 1) * n
	fa := clamp((in.A-labMinAB)/(labMaxAB-labMinAB), 0, 1) * n
	fb := clamp((in.B-labMinAB)/(labMaxAB-labMinAB), 0, 1) * n

	l0, tl := splitCell(fl, p.points)
	a0, ta := splitCell(fa, p.points)
	b0, tb := splitCell(fb, p.points)

	stride := [3]int{3, p.points * 3, p.points * p.points * 3}
	base := l0*stride[0] + a0*stride[1] + b0*stride[2]

	var out [3]float64
	for c := 0; c < 3; c++ {
		at := func(dl, da, db int) float64 {
			return float64(p.grid[base+dl*stride[0]+da*stride[1]+db*stride[2]+c])
		}
		c00 := lerp(at(0, 0, 0), at(1, 0, 0), tl)
		c10 := lerp(at(0, 1, 0), at(1, 1, 0), tl)
		c01 := lerp(at(0, 0, 1), at(1, 0, 1), tl)
		c11 := lerp(at(0, 1, 1), at(1, 1, 1), tl)
		out[c] = lerp(lerp(c00, c10, ta), lerp(c01, c11, ta), tb)
	}
	return color.Lab{L: out[0], A: out[1], B: out[2]}
}

// Apply maps a connection space XYZ color through the profile.
func (p *AbstractProfile) Apply(xyz [3]float64) [3]float64 {
	x, y, z := color.LabToXYZ(p.ApplyLab(color.XYZToLab(xyz[0], xyz[1], xyz[2])))
	return [3]float64{x, y, z}
}

// splitCell returns the lower grid index and the fractional offset for a
// grid coordinate f in [0, points-1]. The last cell is used for f at the
// upper edge.
func splitCell(f float64, points int) (int, float64) {
	i := int(f)
	if i >= points-1 {
		i = points - 2
	}
	return i, f - float64(i)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
