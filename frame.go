package colorlut

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/colorlut/internal/color"
)

// Frame is an 8-bit RGBA pixel buffer laid out like image.RGBA.
type Frame struct {
	Width, Height int
	Stride        int // bytes per row
	Pix           []byte
}

// NewFrame allocates a tightly packed frame.
func NewFrame(width, height int) Frame {
	return Frame{Width: width, Height: height, Stride: width * 4, Pix: make([]byte, width*height*4)}
}

// FrameFromImage shares the pixels of img when it is an *image.RGBA at
// the origin and copies them otherwise.
func FrameFromImage(img image.Image) Frame {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return Frame{Width: rgba.Rect.Dx(), Height: rgba.Rect.Dy(), Stride: rgba.Stride, Pix: rgba.Pix}
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return Frame{Width: b.Dx(), Height: b.Dy(), Stride: rgba.Stride, Pix: rgba.Pix}
}

// Image returns an *image.RGBA sharing the frame's pixels.
func (f Frame) Image() *image.RGBA {
	return &image.RGBA{Pix: f.Pix, Stride: f.Stride, Rect: image.Rect(0, 0, f.Width, f.Height)}
}

// Validate checks that the buffer covers the dimensions.
func (f Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrFrameSize, f.Width, f.Height)
	}
	if f.Stride < f.Width*4 {
		return fmt.Errorf("%w: stride %d < %d", ErrFrameSize, f.Stride, f.Width*4)
	}
	if len(f.Pix) < (f.Height-1)*f.Stride+f.Width*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrFrameSize, len(f.Pix), f.Width, f.Height)
	}
	return nil
}

// MeanLevel returns the average relative luminance of the frame, averaged
// in linear light and re-encoded as an 8-bit sRGB level. Alpha is ignored.
func (f Frame) MeanLevel() uint8 {
	if f.Width <= 0 || f.Height <= 0 {
		return 0
	}
	var sum float64
	for y := range f.Height {
		row := f.Pix[y*f.Stride : y*f.Stride+f.Width*4]
		for x := 0; x < len(row); x += 4 {
			sum += color.Luminance(row[x], row[x+1], row[x+2])
		}
	}
	return color.LinearToSRGB8(sum / float64(f.Width*f.Height))
}

func checkFrames(in, out Frame) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if err := out.Validate(); err != nil {
		return err
	}
	if in.Width != out.Width || in.Height != out.Height {
		return fmt.Errorf("%w: input %dx%d, output %dx%d", ErrFrameSize, in.Width, in.Height, out.Width, out.Height)
	}
	return nil
}
