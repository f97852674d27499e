package lut

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrCubeSize is returned for .cube sizes outside [2, 256].
var ErrCubeSize = errors.New("lut: cube size must be in [2, 256]")

// WriteCube writes t as an Adobe .cube 3D LUT sampled at size points per
// axis. Red varies fastest, as the format requires.
func WriteCube(w io.Writer, t *Table, size int, title string) error {
	if size < 2 || size > 256 {
		return fmt.Errorf("%w: %d", ErrCubeSize, size)
	}

	bw := bufio.NewWriter(w)
	if title != "" {
		fmt.Fprintf(bw, "TITLE %q\n", title)
	}
	fmt.Fprintf(bw, "LUT_3D_SIZE %d\n\n", size)
	fmt.Fprintf(bw, "DOMAIN_MIN 0.0 0.0 0.0\n")
	fmt.Fprintf(bw, "DOMAIN_MAX 1.0 1.0 1.0\n\n")

	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				ro, gout, bo := t.Lookup(cubeLevel(r, size), cubeLevel(g, size), cubeLevel(b, size))
				fmt.Fprintf(bw, "%.6f %.6f %.6f\n",
					float64(ro)/255, float64(gout)/255, float64(bo)/255)
			}
		}
	}
	return bw.Flush()
}

// cubeLevel maps grid position i of size to the nearest 8-bit level.
func cubeLevel(i, size int) uint8 {
	return uint8((i*255*2 + size - 1) / (2 * (size - 1))) //nolint:gosec // result <= 255
}
