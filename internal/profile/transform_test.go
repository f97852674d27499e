package profile

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/colorlut/internal/parallel"
	"github.com/gogpu/colorlut/lut"
)

func newTestChain(t *testing.T, adj Adjustment, flags Flags, opts ...Option) *Transform {
	t.Helper()
	abstract, err := NewBCHSWAbstract(DefaultPoints, adj.Brightness, adj.Contrast, adj.Hue, adj.Saturation)
	if err != nil {
		t.Fatalf("NewBCHSWAbstract: %v", err)
	}
	output, err := NewSRGBOutput()
	if err != nil {
		t.Fatalf("NewSRGBOutput: %v", err)
	}
	tr, err := NewTransform(abstract, output, Perceptual, flags, opts...)
	if err != nil {
		t.Fatalf("NewTransform: %v", err)
	}
	return tr
}

func TestNewTransformIntent(t *testing.T) {
	output, err := NewSRGBOutput()
	if err != nil {
		t.Fatal(err)
	}
	for _, intent := range []Intent{RelativeColorimetric, Saturation, AbsoluteColorimetric} {
		_, err := NewTransform(output, output, intent, 0)
		if !errors.Is(err, ErrUnsupportedIntent) {
			t.Errorf("intent %v err = %v, want ErrUnsupportedIntent", intent, err)
		}
	}
}

func TestNewMultiprofileTransformChainErrors(t *testing.T) {
	abstract, err := NewBCHSWAbstract(5, 0, 1.2, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name     string
		profiles []Profile
	}{
		{"empty", nil},
		{"abstract last", []Profile{abstract}},
		{"nil entry", []Profile{nil, abstract}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMultiprofileTransform(tt.profiles, Perceptual, 0); !errors.Is(err, ErrChain) {
				t.Errorf("err = %v, want ErrChain", err)
			}
		})
	}
}

func TestKeepSequence(t *testing.T) {
	kept := newTestChain(t, IdentityAdjustment, FlagKeepSequence)
	if got := len(kept.Profiles()); got != 2 {
		t.Errorf("with FlagKeepSequence: %d profiles, want 2", got)
	}
	elided := newTestChain(t, IdentityAdjustment, 0)
	if got := len(elided.Profiles()); got != 1 {
		t.Errorf("without FlagKeepSequence: %d profiles, want 1", got)
	}
	adjusted := newTestChain(t, Adjustment{Contrast: 1.1}, 0)
	if got := len(adjusted.Profiles()); got != 2 {
		t.Errorf("non-identity abstract dropped: %d profiles", got)
	}
}

func TestEvalIdentityChain(t *testing.T) {
	tr := newTestChain(t, IdentityAdjustment, FlagNoNegatives|FlagKeepSequence)
	for _, in := range [][3]float64{{0.5, 0.5, 0.5}, {1, 0, 0}, {0.1, 0.7, 0.3}} {
		out, err := tr.Eval(in)
		if err != nil {
			t.Fatal(err)
		}
		for i := range in {
			if math.Abs(out[i]-in[i]) > 1.0/255 {
				t.Errorf("Eval(%v) = %v", in, out)
				break
			}
		}
	}
}

func TestEvalContrastMidGray(t *testing.T) {
	tr := newTestChain(t, Adjustment{Contrast: 2}, FlagNoNegatives|FlagKeepSequence)
	mid := 128.0 / 255
	out, err := tr.Eval([3]float64{mid, mid, mid})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v <= mid || v > 1 {
			t.Errorf("channel %d = %v, want in (%v, 1]", i, v, mid)
		}
	}
}

func TestTransformInPlaceOptimizedMatchesFull(t *testing.T) {
	pool := parallel.NewWorkerPool(2)
	defer pool.Close()

	adj := Adjustment{Contrast: 1.2, Brightness: 3, Hue: 20, Saturation: 5}
	flags := FlagNoNegatives | FlagKeepSequence
	fast := newTestChain(t, adj, flags, WithPool(pool))
	full := newTestChain(t, adj, flags|FlagNoOptimize, WithPool(pool))

	var pix []uint32
	for v := 0; v < 256; v += 15 {
		u := uint8(v)
		pix = append(pix, lut.Pack(u, u, u, 0), lut.Pack(u, 255-u, u/2, 0x7F))
	}
	a := append([]uint32(nil), pix...)
	b := append([]uint32(nil), pix...)

	ctx := context.Background()
	if err := fast.TransformInPlace(ctx, a); err != nil {
		t.Fatalf("optimized: %v", err)
	}
	if err := full.TransformInPlace(ctx, b); err != nil {
		t.Fatalf("full: %v", err)
	}

	for i := range pix {
		r1, g1, b1, a1 := lut.Unpack(a[i])
		r2, g2, b2, a2 := lut.Unpack(b[i])
		_, _, _, aIn := lut.Unpack(pix[i])
		if a1 != aIn || a2 != aIn {
			t.Errorf("pixel %d: alpha changed (%d, %d), want %d", i, a1, a2, aIn)
		}
		if absDiff(r1, r2) > 4 || absDiff(g1, g2) > 4 || absDiff(b1, b2) > 4 {
			t.Errorf("pixel %d: optimized (%d,%d,%d) vs full (%d,%d,%d)", i, r1, g1, b1, r2, g2, b2)
		}
	}
}

func TestTransformInPlaceCanceled(t *testing.T) {
	tr := newTestChain(t, Adjustment{Contrast: 1.5}, FlagKeepSequence|FlagNoOptimize)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tr.TransformInPlace(ctx, make([]uint32, 16)); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRGBGridLookupNodes(t *testing.T) {
	g := newRGBGrid(52)
	n := g.n
	for k := 0; k < n*n*n; k++ {
		r, gi, b := k%n, (k/n)%n, k/(n*n)
		g.set(k, [3]float64{g.node(r), g.node(gi), g.node(b)})
	}
	// With identity samples, every level reproduces itself.
	for v := 0; v < 256; v++ {
		u := uint8(v)
		r, gg, b := g.lookup(u, 255-u, u/3)
		if lut.PackUnorm(r, gg, b, 0) != lut.Pack(u, 255-u, u/3, 0) {
			t.Fatalf("lookup(%d) = (%v,%v,%v)", v, r*255, gg*255, b*255)
		}
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
