package colorlut

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestFrameFromImageSharesRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	f := FrameFromImage(img)
	if f.Width != 3 || f.Height != 2 || f.Stride != img.Stride {
		t.Fatalf("frame = %dx%d stride %d", f.Width, f.Height, f.Stride)
	}
	f.Pix[0] = 42
	if img.Pix[0] != 42 {
		t.Error("frame does not share the image pixels")
	}
	if f.Image().RGBAAt(0, 0).R != 42 {
		t.Error("Image() does not share the frame pixels")
	}
}

func TestFrameFromImageConverts(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	img.SetNRGBA(11, 10, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	f := FrameFromImage(img)
	if f.Width != 2 || f.Height != 1 {
		t.Fatalf("frame = %dx%d, want 2x1", f.Width, f.Height)
	}
	if got := f.Image().RGBAAt(1, 0); got != (color.RGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestFrameValidate(t *testing.T) {
	tests := []struct {
		name string
		f    Frame
		ok   bool
	}{
		{"tight", NewFrame(4, 3), true},
		{"padded", Frame{Width: 2, Height: 2, Stride: 12, Pix: make([]byte, 20)}, true},
		{"empty", Frame{}, false},
		{"short stride", Frame{Width: 4, Height: 1, Stride: 8, Pix: make([]byte, 16)}, false},
		{"short buffer", Frame{Width: 4, Height: 2, Stride: 16, Pix: make([]byte, 20)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrFrameSize) {
				t.Errorf("Validate = %v, want ErrFrameSize", err)
			}
		})
	}
}

func TestFrameMeanLevel(t *testing.T) {
	tests := []struct {
		name string
		rgb  [3]uint8
		want uint8
	}{
		{"black", [3]uint8{0, 0, 0}, 0},
		{"white", [3]uint8{255, 255, 255}, 255},
		{"gray", [3]uint8{128, 128, 128}, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := solidFrame(3, 2, tt.rgb[0], tt.rgb[1], tt.rgb[2], 255)
			if got := f.MeanLevel(); got != tt.want {
				t.Errorf("MeanLevel() = %d, want %d", got, tt.want)
			}
		})
	}

	f := NewFrame(2, 1)
	copy(f.Pix, []byte{255, 255, 255, 255, 0, 0, 0, 255})
	if got := f.MeanLevel(); got != 188 {
		t.Errorf("MeanLevel(half white) = %d, want 188", got)
	}
	if got := (Frame{}).MeanLevel(); got != 0 {
		t.Errorf("MeanLevel(empty) = %d", got)
	}
}
