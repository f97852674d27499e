package colorlut

import (
	"fmt"
	"math"

	"github.com/gogpu/colorlut/internal/color"
	"github.com/gogpu/colorlut/internal/profile"
)

// Config is one adjustment configuration. It is comparable: two configs
// produce the same table exactly when they are ==.
type Config struct {
	ICC        string // input profile path, empty for none
	Brightness float64
	Contrast   float64
	Hue        float64 // degrees in [0,360)
	Saturation float64
}

// DefaultConfig returns the identity configuration.
func DefaultConfig() Config {
	return Config{Contrast: 1}
}

// IsIdentity reports whether c leaves every color unchanged.
func (c Config) IsIdentity() bool {
	return c == DefaultConfig()
}

// Validate checks every scalar. It does not touch the profile file.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"brightness", c.Brightness},
		{"contrast", c.Contrast},
		{"hue", c.Hue},
		{"saturation", c.Saturation},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidConfig, f.name, f.v)
		}
	}
	if c.Hue < 0 || c.Hue > 360 {
		return fmt.Errorf("%w: hue %v outside [0,360]", ErrInvalidConfig, c.Hue)
	}
	return nil
}

// normalized folds hue 360 onto 0 so both spellings share one table.
func (c Config) normalized() Config {
	c.Hue = color.NormalizeHue(c.Hue)
	return c
}

func (c Config) params() profile.Params {
	return profile.Params{
		ICC:        c.ICC,
		Brightness: c.Brightness,
		Contrast:   c.Contrast,
		Hue:        c.Hue,
		Saturation: c.Saturation,
	}
}

func (c Config) String() string {
	icc := c.ICC
	if icc == "" {
		icc = "none"
	}
	return fmt.Sprintf("{icc=%s brightness=%g contrast=%g hue=%g saturation=%g}",
		icc, c.Brightness, c.Contrast, c.Hue, c.Saturation)
}
