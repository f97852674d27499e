package colorlut

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/icc"
)

func TestDefaultConfig(t *testing.T) {
	want := Config{ICC: "", Brightness: 0, Contrast: 1, Hue: 0, Saturation: 0}
	if diff := cmp.Diff(want, DefaultConfig()); diff != "" {
		t.Errorf("DefaultConfig (-want +got):\n%s", diff)
	}
	if !DefaultConfig().IsIdentity() {
		t.Error("DefaultConfig is not identity")
	}
	if (Config{Contrast: 1, Saturation: 0.5}).IsIdentity() {
		t.Error("saturation 0.5 reported as identity")
	}
}

func TestPropertiesTable(t *testing.T) {
	names := make([]string, 0)
	for _, p := range Properties() {
		names = append(names, p.Name)
	}
	want := []string{"icc", "brightness", "contrast", "hue", "saturation", "temperature"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("property names (-want +got):\n%s", diff)
	}

	hue, ok := LookupProperty("hue")
	if !ok || hue.Min != 0 || hue.Max != 360 || hue.Default != 0.0 {
		t.Errorf("hue property = %+v", hue)
	}
	contrast, _ := LookupProperty("contrast")
	if contrast.Default != 1.0 {
		t.Errorf("contrast default = %v, want 1", contrast.Default)
	}
	if _, ok := LookupProperty("gamma"); ok {
		t.Error("LookupProperty(gamma) found a property")
	}
}

func TestSettingsSetGet(t *testing.T) {
	s := NewSettings()
	for name, v := range map[string]float64{"brightness": 5, "contrast": 1.5, "hue": 90, "saturation": -10} {
		if err := s.Set(name, v); err != nil {
			t.Fatalf("Set(%s) = %v", name, err)
		}
		got, err := s.Get(name)
		if err != nil || got != v {
			t.Errorf("Get(%s) = %v, %v; want %v", name, got, err, v)
		}
	}
	if err := s.Set("contrast", 2); err != nil {
		t.Errorf("Set with int = %v", err)
	}
	if got := s.Snapshot().Contrast; got != 2 {
		t.Errorf("contrast = %v, want 2", got)
	}
}

func TestSettingsHue(t *testing.T) {
	s := NewSettings()
	if err := s.Set("hue", 360.0); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Hue; got != 0 {
		t.Errorf("hue 360 stored as %v, want 0", got)
	}
	for _, v := range []float64{-1, 360.5} {
		if err := s.Set("hue", v); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Set(hue, %v) = %v, want ErrInvalidConfig", v, err)
		}
	}
}

func TestSettingsRejects(t *testing.T) {
	s := NewSettings()
	tests := []struct {
		name  string
		value any
		want  error
	}{
		{"gamma", 1.0, ErrUnknownProperty},
		{"temperature", 6500.0, ErrPropertyDisabled},
		{"brightness", math.NaN(), ErrInvalidConfig},
		{"contrast", math.Inf(1), ErrInvalidConfig},
		{"saturation", math.Inf(-1), ErrInvalidConfig},
		{"saturation", "high", ErrInvalidConfig},
		{"icc", 3.0, ErrInvalidConfig},
		{"icc", filepath.Join(t.TempDir(), "missing.icc"), ErrInvalidProfile},
	}
	for _, tt := range tests {
		if err := s.Set(tt.name, tt.value); !errors.Is(err, tt.want) {
			t.Errorf("Set(%s, %v) = %v, want %v", tt.name, tt.value, err, tt.want)
		}
	}
	if diff := cmp.Diff(DefaultConfig(), s.Snapshot()); diff != "" {
		t.Errorf("rejected sets changed the config (-want +got):\n%s", diff)
	}
	if _, err := s.Get("temperature"); !errors.Is(err, ErrPropertyDisabled) {
		t.Errorf("Get(temperature) = %v", err)
	}
}

func TestSettingsICC(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "srgb.icc")
	if err := os.WriteFile(good, icc.SRGBv4Profile, 0o600); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "junk.icc")
	if err := os.WriteFile(bad, []byte("not a profile"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewSettings()
	if err := s.Set("icc", good); err != nil {
		t.Fatalf("Set(icc, srgb) = %v", err)
	}
	if got, _ := s.Get("icc"); got != good {
		t.Errorf("icc = %v, want %s", got, good)
	}
	if err := s.Set("icc", bad); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("Set(icc, junk) = %v, want ErrInvalidProfile", err)
	}
	if err := s.Set("icc", ""); err != nil {
		t.Errorf("clearing icc = %v", err)
	}
}

func TestSettingsUpdateIsAtomic(t *testing.T) {
	s := NewSettings()
	err := s.Update(func(c *Config) {
		c.Brightness = 3
		c.Contrast = math.NaN()
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Update = %v, want ErrInvalidConfig", err)
	}
	if s.Snapshot().Brightness != 0 {
		t.Error("failed Update applied a partial change")
	}
}

func TestSettingsConcurrentSnapshot(t *testing.T) {
	s := NewSettings()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = s.Update(func(c *Config) {
				c.Brightness = float64(i)
				c.Saturation = float64(i)
			})
		}(i)
		go func() {
			defer wg.Done()
			c := s.Snapshot()
			if c.Brightness != c.Saturation {
				t.Errorf("torn snapshot %+v", c)
			}
		}()
	}
	wg.Wait()
}
