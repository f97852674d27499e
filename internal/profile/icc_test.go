package profile

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/icc"
)

func TestNewSRGBOutput(t *testing.T) {
	p, err := NewSRGBOutput()
	if err != nil {
		t.Fatalf("NewSRGBOutput: %v", err)
	}
	if p.Class() != ClassDevice {
		t.Errorf("Class() = %v, want device", p.Class())
	}
	if p.Name() != "sRGB" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestConverterRoundTrip(t *testing.T) {
	p, err := NewSRGBOutput()
	if err != nil {
		t.Fatalf("NewSRGBOutput: %v", err)
	}
	c, err := p.newConverter(Perceptual)
	if err != nil {
		t.Fatalf("newConverter: %v", err)
	}

	white := c.ToPCS([3]float64{1, 1, 1})
	if math.Abs(white[1]-1) > 0.02 {
		t.Errorf("white Y = %v, want ~1", white[1])
	}
	for _, in := range [][3]float64{{0.5, 0.5, 0.5}, {0.8, 0.2, 0.1}, {0, 0, 1}} {
		out := c.FromPCS(c.ToPCS(in))
		for i := range in {
			if math.Abs(out[i]-in[i]) > 2.0/255 {
				t.Errorf("round trip %v = %v", in, out)
				break
			}
		}
	}
}

func TestDecodeProfileErrors(t *testing.T) {
	_, err := DecodeProfile("junk", []byte("not an icc profile"))
	if !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("DecodeProfile(junk) err = %v, want ErrInvalidProfile", err)
	}

	_, err = DecodeProfile("cmyk", icc.CGATS001Profile)
	if !errors.Is(err, ErrUnsupportedProfile) {
		t.Errorf("DecodeProfile(cmyk) err = %v, want ErrUnsupportedProfile", err)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "srgb-v2.icc")
	if err := os.WriteFile(path, icc.SRGBv2Profile, 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.Name() != "srgb-v2.icc" {
		t.Errorf("Name() = %q", p.Name())
	}

	_, err = LoadProfile(filepath.Join(dir, "missing.icc"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadProfile(missing) err = %v, want fs.ErrNotExist", err)
	}
}
