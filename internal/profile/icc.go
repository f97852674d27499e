package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"seehuhn.de/go/icc"
)

// Class is the role a profile plays in a chain.
type Class int

const (
	// ClassDevice converts between device RGB and the connection space.
	ClassDevice Class = iota
	// ClassAbstract edits colors inside the connection space.
	ClassAbstract
)

func (c Class) String() string {
	switch c {
	case ClassDevice:
		return "device"
	case ClassAbstract:
		return "abstract"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Profile is one stage of a profile chain.
type Profile interface {
	Name() string
	Class() Class
}

// ICCProfile is an RGB device profile decoded from ICC data.
// It is immutable and safe to share; conversions create their own
// per-goroutine transforms.
type ICCProfile struct {
	name string
	p    *icc.Profile
}

var _ Profile = (*ICCProfile)(nil)

// LoadProfile reads and decodes the ICC profile at path.
func LoadProfile(path string) (*ICCProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return DecodeProfile(filepath.Base(path), data)
}

// DecodeProfile decodes ICC data into a device profile. Only RGB device
// profiles (input, display, output and color space classes) are accepted.
func DecodeProfile(name string, data []byte) (*ICCProfile, error) {
	p, err := icc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidProfile, name, err)
	}
	switch p.Class {
	case icc.InputDeviceProfile, icc.DisplayDeviceProfile, icc.OutputDeviceProfile, icc.ColorSpaceProfile:
	default:
		return nil, fmt.Errorf("%w: %s: class %v", ErrUnsupportedProfile, name, p.Class)
	}
	if p.ColorSpace != icc.RGBSpace {
		return nil, fmt.Errorf("%w: %s: color space %v", ErrUnsupportedProfile, name, p.ColorSpace)
	}

	// Construct both directions once so that broken tag data is reported
	// here rather than inside a worker.
	for _, dir := range []icc.Direction{icc.DeviceToPCS, icc.PCSToDevice} {
		if _, err := icc.NewTransform(p, dir, icc.Perceptual); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidProfile, name, err)
		}
	}
	return &ICCProfile{name: name, p: p}, nil
}

// NewSRGBOutput returns the built-in sRGB (ICC v4) profile used as the
// fixed last stage of every chain.
func NewSRGBOutput() (*ICCProfile, error) {
	return DecodeProfile("sRGB", icc.SRGBv4Profile)
}

// Name returns the profile's file or built-in name.
func (p *ICCProfile) Name() string { return p.name }

// Class always returns ClassDevice.
func (p *ICCProfile) Class() Class { return ClassDevice }

// converter holds one goroutine's transforms for an ICC profile.
type converter struct {
	toPCS   *icc.Transform
	fromPCS *icc.Transform
}

func (p *ICCProfile) newConverter(intent Intent) (*converter, error) {
	in, err := icc.NewTransform(p.p, icc.DeviceToPCS, icc.RenderingIntent(intent))
	if err != nil {
		return nil, fmt.Errorf("%s: device to PCS: %w", p.name, err)
	}
	out, err := icc.NewTransform(p.p, icc.PCSToDevice, icc.RenderingIntent(intent))
	if err != nil {
		return nil, fmt.Errorf("%s: PCS to device: %w", p.name, err)
	}
	return &converter{toPCS: in, fromPCS: out}, nil
}

func (c *converter) ToPCS(rgb [3]float64) [3]float64 {
	x, y, z := c.toPCS.ToXYZ(rgb[:])
	return [3]float64{x, y, z}
}

func (c *converter) FromPCS(xyz [3]float64) [3]float64 {
	out := c.fromPCS.FromXYZ(xyz[0], xyz[1], xyz[2])
	if len(out) < 3 {
		return [3]float64{}
	}
	return [3]float64{out[0], out[1], out[2]}
}
