// Command lutgrade color-grades images with colorlut and exports the
// resulting lookup tables.
//
// Usage:
//
//	lutgrade apply -i in.png -o out.png --contrast 1.2 --hue 15
//	lutgrade cube -o grade.cube --saturation 10 --size 33
//	lutgrade props
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/colorlut"
	_ "github.com/gogpu/colorlut/gpu" // registers the wgpu renderer
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "lutgrade",
		Short:         "Grade images through a 24-bit color lookup table",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				colorlut.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log table builds and GPU setup to stderr")

	root.AddCommand(newApplyCmd(), newCubeCmd(), newPropsCmd())
	return root
}

// printer formats counts with grouping, e.g. 16,777,216.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// adjustFlags are the settings shared by apply and cube.
type adjustFlags struct {
	icc        string
	brightness float64
	contrast   float64
	hue        float64
	saturation float64
	samples    int
	grid       int
}

func (a *adjustFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&a.icc, "icc", "", "Input ICC profile path")
	f.Float64Var(&a.brightness, "brightness", 0, "Lightness offset (L*)")
	f.Float64Var(&a.contrast, "contrast", 1, "Lightness scale")
	f.Float64Var(&a.hue, "hue", 0, "Hue rotation in degrees, 0 to 360")
	f.Float64Var(&a.saturation, "saturation", 0, "Chroma offset")
	f.IntVar(&a.samples, "samples", 0, "Abstract profile grid points per axis (0 = default)")
	f.IntVar(&a.grid, "grid", 0, "Device link grid points per axis (0 = default)")
}

// settings applies the flags through the property table so they get the
// same validation as a host would.
func (a *adjustFlags) settings() (*colorlut.Settings, error) {
	s := colorlut.NewSettings()
	values := []struct {
		name  string
		value any
	}{
		{"icc", a.icc},
		{"brightness", a.brightness},
		{"contrast", a.contrast},
		{"hue", a.hue},
		{"saturation", a.saturation},
	}
	for _, v := range values {
		if err := s.Set(v.name, v.value); err != nil {
			return nil, fmt.Errorf("--%s: %w", v.name, err)
		}
	}
	return s, nil
}

func (a *adjustFlags) options() []colorlut.Option {
	return []colorlut.Option{
		colorlut.WithSamplePoints(a.samples),
		colorlut.WithGridPoints(a.grid),
	}
}
