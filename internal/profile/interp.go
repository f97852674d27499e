package profile

// rgbGrid is a sampled device link: n³ RGB outputs indexed with red
// fastest. Lookups use tetrahedral interpolation, the usual choice for
// RGB device links because it keeps the gray axis exact.
type rgbGrid struct {
	n    int
	data []float32

	// Per 8-bit level: lower node index and offset within the cell.
	cell [256]int32
	frac [256]float32
}

func newRGBGrid(n int) *rgbGrid {
	g := &rgbGrid{n: n, data: make([]float32, n*n*n*3)}
	for v := 0; v < 256; v++ {
		f := float64(v) / 255 * float64(n-1)
		i, t := splitCell(f, n)
		g.cell[v] = int32(i) //nolint:gosec // i < 256
		g.frac[v] = float32(t)
	}
	return g
}

// node returns the normalized input value of grid node i.
func (g *rgbGrid) node(i int) float64 {
	return float64(i) / float64(g.n-1)
}

func (g *rgbGrid) set(k int, rgb [3]float64) {
	g.data[k*3+0] = float32(rgb[0])
	g.data[k*3+1] = float32(rgb[1])
	g.data[k*3+2] = float32(rgb[2])
}

// lookup interpolates the grid at an 8-bit RGB triplet.
func (g *rgbGrid) lookup(r, gr, b uint8) (float64, float64, float64) {
	n := g.n
	sr, sg, sb := 3, n*3, n*n*3
	base := int(g.cell[r])*sr + int(g.cell[gr])*sg + int(g.cell[b])*sb
	rx, ry, rz := g.frac[r], g.frac[gr], g.frac[b]

	// Corner offsets; x is red, y green, z blue.
	c000 := base
	c100 := base + sr
	c010 := base + sg
	c001 := base + sb
	c110 := base + sr + sg
	c101 := base + sr + sb
	c011 := base + sg + sb
	c111 := base + sr + sg + sb

	var out [3]float32
	d := g.data
	for c := 0; c < 3; c++ {
		v0 := d[c000+c]
		switch {
		case rx >= ry && ry >= rz:
			out[c] = v0 + rx*(d[c100+c]-v0) + ry*(d[c110+c]-d[c100+c]) + rz*(d[c111+c]-d[c110+c])
		case rx >= rz && rz >= ry:
			out[c] = v0 + rx*(d[c100+c]-v0) + rz*(d[c101+c]-d[c100+c]) + ry*(d[c111+c]-d[c101+c])
		case rz >= rx && rx >= ry:
			out[c] = v0 + rz*(d[c001+c]-v0) + rx*(d[c101+c]-d[c001+c]) + ry*(d[c111+c]-d[c101+c])
		case ry >= rx && rx >= rz:
			out[c] = v0 + ry*(d[c010+c]-v0) + rx*(d[c110+c]-d[c010+c]) + rz*(d[c111+c]-d[c110+c])
		case ry >= rz && rz >= rx:
			out[c] = v0 + ry*(d[c010+c]-v0) + rz*(d[c011+c]-d[c010+c]) + rx*(d[c111+c]-d[c011+c])
		default:
			out[c] = v0 + rz*(d[c001+c]-v0) + ry*(d[c011+c]-d[c001+c]) + rx*(d[c111+c]-d[c011+c])
		}
	}
	return float64(out[0]), float64(out[1]), float64(out[2])
}
