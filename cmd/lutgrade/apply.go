package main

import (
	"time"

	"github.com/nfnt/resize"
	"github.com/spf13/cobra"

	"github.com/gogpu/colorlut"
	"github.com/gogpu/colorlut/internal/imageio"
)

func newApplyCmd() *cobra.Command {
	var (
		adj    adjustFlags
		input  string
		output string
		split  bool
		cpu    bool
		width  uint
	)
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Correct an image (PNG, JPEG, BMP, TIFF or WebP in; PNG, JPEG, BMP or TIFF out)",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := adj.settings()
			if err != nil {
				return err
			}
			if _, err := imageio.FormatFromPath(output); err != nil {
				return err
			}
			img, err := imageio.Load(input)
			if err != nil {
				return err
			}
			if width > 0 && width < uint(img.Bounds().Dx()) {
				img = resize.Resize(width, 0, img, resize.Lanczos3)
			}

			opts := append(adj.options(), colorlut.WithDebugSplit(split))
			if cpu {
				opts = append(opts, colorlut.WithRenderer(colorlut.NewSoftwareRenderer()))
			}
			f := colorlut.New(settings, opts...)
			if err := f.Start(cmd.Context()); err != nil {
				return err
			}
			defer f.Stop()

			in := colorlut.FrameFromImage(img)
			out := colorlut.NewFrame(in.Width, in.Height)
			start := time.Now()
			if err := f.RenderFrame(cmd.Context(), in, out); err != nil {
				return err
			}
			elapsed := time.Since(start)

			if err := imageio.Save(output, out.Image()); err != nil {
				return err
			}
			printer().Fprintf(cmd.OutOrStdout(), "%s: %d x %d pixels, mean level %d -> %d, %v\n",
				output, out.Width, out.Height, in.MeanLevel(), out.MeanLevel(), elapsed.Round(time.Millisecond))
			return nil
		},
	}
	adj.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "Input image")
	f.StringVarP(&output, "output", "o", "", "Output image; the format follows the extension")
	f.BoolVar(&split, "split", false, "Leave the top half uncorrected")
	f.BoolVar(&cpu, "cpu", false, "Render on the CPU even if a GPU is available")
	f.UintVar(&width, "width", 0, "Downscale to this width before grading (0 keeps the size)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
