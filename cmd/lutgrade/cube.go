package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/colorlut"
	"github.com/gogpu/colorlut/lut"
)

func newCubeCmd() *cobra.Command {
	var (
		adj    adjustFlags
		output string
		size   int
		title  string
	)
	cmd := &cobra.Command{
		Use:   "cube",
		Short: "Export the table for the given settings as an Adobe .cube file",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := adj.settings()
			if err != nil {
				return err
			}
			cfg := settings.Snapshot()
			start := time.Now()
			table, err := colorlut.BuildTable(cmd.Context(), cfg, adj.options()...)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			if title == "" {
				title = cfg.String()
			}
			if err := writeCube(output, cmd.OutOrStdout(), table, size, title); err != nil {
				return err
			}
			if output != "" && output != "-" {
				printer().Fprintf(cmd.OutOrStdout(), "%s: %d samples from %d entries, built in %v\n",
					output, size*size*size, table.Len(), elapsed.Round(time.Millisecond))
			}
			return nil
		},
	}
	adj.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "-", "Output file, - for stdout")
	f.IntVar(&size, "size", 33, "Samples per axis, 2 to 256")
	f.StringVar(&title, "title", "", "TITLE line (defaults to the settings)")
	return cmd
}

func writeCube(path string, stdout io.Writer, t *lut.Table, size int, title string) (err error) {
	if path == "" || path == "-" {
		return lut.WriteCube(stdout, t, size, title)
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()
	if err := lut.WriteCube(fh, t, size, title); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
