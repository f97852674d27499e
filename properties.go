package colorlut

import (
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/colorlut/internal/profile"
)

// PropertyKind is the value type of a property.
type PropertyKind int

const (
	// KindString properties take a string.
	KindString PropertyKind = iota
	// KindFloat properties take a float64.
	KindFloat
	// KindDisabled properties are listed for discovery but reject sets.
	KindDisabled
)

func (k PropertyKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("PropertyKind(%d)", int(k))
	}
}

// PropertySpec describes one settable property.
type PropertySpec struct {
	Name    string
	Nick    string
	Blurb   string
	Kind    PropertyKind
	Min     float64
	Max     float64
	Default any
}

// Properties returns the property table in display order.
func Properties() []PropertySpec {
	return []PropertySpec{
		{Name: "icc", Nick: "ICC Profile", Blurb: "Path to ICC color profile", Kind: KindString, Default: ""},
		{Name: "brightness", Nick: "Bright", Blurb: "Extra brightness correction", Kind: KindFloat, Min: -math.MaxFloat64, Max: math.MaxFloat64, Default: 0.0},
		{Name: "contrast", Nick: "Contrast", Blurb: "Extra contrast correction", Kind: KindFloat, Min: -math.MaxFloat64, Max: math.MaxFloat64, Default: 1.0},
		{Name: "hue", Nick: "Hue", Blurb: "Extra hue displacement in degrees", Kind: KindFloat, Min: 0, Max: 360, Default: 0.0},
		{Name: "saturation", Nick: "Saturation", Blurb: "Extra saturation correction", Kind: KindFloat, Min: -math.MaxFloat64, Max: math.MaxFloat64, Default: 0.0},
		{Name: "temperature", Nick: "Source temperature", Blurb: "Source white point temperature (not supported)", Kind: KindDisabled},
	}
}

// LookupProperty returns the PropertySpec for name.
func LookupProperty(name string) (PropertySpec, bool) {
	for _, p := range Properties() {
		if p.Name == name {
			return p, true
		}
	}
	return PropertySpec{}, false
}

// Settings holds the live configuration of a filter. Writers take the
// mutex; Snapshot hands readers a copy.
type Settings struct {
	mu  sync.RWMutex
	cfg Config
}

// NewSettings returns settings holding DefaultConfig.
func NewSettings() *Settings {
	return &Settings{cfg: DefaultConfig()}
}

// Snapshot returns the whole configuration at one instant.
func (s *Settings) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update applies fn to a copy of the configuration and stores the result
// if it validates. Several fields change together or not at all.
func (s *Settings) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cfg
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	if next.ICC != s.cfg.ICC && next.ICC != "" {
		if err := checkProfile(next.ICC); err != nil {
			return err
		}
	}
	s.cfg = next.normalized()
	return nil
}

// Set assigns one property by name. icc takes a string and the rest take
// a float64; int values are accepted for convenience.
func (s *Settings) Set(name string, value any) error {
	prop, ok := LookupProperty(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	if prop.Kind == KindDisabled {
		return fmt.Errorf("%w: %q", ErrPropertyDisabled, name)
	}

	var err error
	if prop.Kind == KindString {
		path, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants a string, got %T", ErrInvalidConfig, name, value)
		}
		err = s.Update(func(c *Config) { c.ICC = path })
	} else {
		v, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: %s wants a number, got %T", ErrInvalidConfig, name, value)
		}
		err = s.Update(func(c *Config) {
			switch name {
			case "brightness":
				c.Brightness = v
			case "contrast":
				c.Contrast = v
			case "hue":
				c.Hue = v
			case "saturation":
				c.Saturation = v
			}
		})
	}
	if err != nil {
		return err
	}
	Logger().Debug("property changed", "name", name, "value", value)
	return nil
}

// Get returns the current value of a property.
func (s *Settings) Get(name string) (any, error) {
	prop, ok := LookupProperty(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	if prop.Kind == KindDisabled {
		return nil, fmt.Errorf("%w: %q", ErrPropertyDisabled, name)
	}
	c := s.Snapshot()
	switch name {
	case "icc":
		return c.ICC, nil
	case "brightness":
		return c.Brightness, nil
	case "contrast":
		return c.Contrast, nil
	case "hue":
		return c.Hue, nil
	default:
		return c.Saturation, nil
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

func checkProfile(path string) error {
	if _, err := profile.LoadProfile(path); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return nil
}
