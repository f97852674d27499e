//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/colorlut/lut"
)

func TestLUTBufferUpload(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	b, err := NewLUTBuffer(device, queue)
	if err != nil {
		t.Fatalf("NewLUTBuffer failed: %v", err)
	}
	defer b.Release()

	table := lut.Identity()
	n, err := b.Upload(table)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if n != 67108864 {
		t.Errorf("Upload wrote %d bytes, want 67108864", n)
	}
	if b.Uploaded() != table {
		t.Error("Uploaded() does not return the last table")
	}
}

func TestLUTBufferRejectsWrongSize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	b, err := NewLUTBuffer(device, queue)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Release()

	for _, table := range []*lut.Table{nil, new(lut.Table)} {
		if _, err := b.Upload(table); !errors.Is(err, ErrTableSize) {
			t.Errorf("Upload(%v) = %v, want ErrTableSize", table, err)
		}
	}
	if b.Uploaded() != nil {
		t.Error("rejected upload was recorded")
	}
}

func TestLUTBufferBindUnbind(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	shader, err := NewCorrectionShader(device, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	defer shader.Destroy()
	pass := NewFramePass(device, queue, shader)
	defer pass.Destroy()
	if err := pass.ensure(16, 16); err != nil {
		t.Fatal(err)
	}

	b, err := NewLUTBuffer(device, queue)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Release()

	if e := b.Entry(slotLUT); e.Binding != 0 {
		t.Errorf("entry binding = %d, want 0", e.Binding)
	}

	bg, err := pass.bind(b)
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if bg == nil || !b.Bound() {
		t.Fatal("expected a live bind group")
	}
	b.Unbind()
	if b.Bound() {
		t.Error("bind group survived Unbind")
	}
	b.Unbind()
}

func TestLUTBufferRelease(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	b, err := NewLUTBuffer(device, queue)
	if err != nil {
		t.Fatal(err)
	}
	b.Release()
	b.Release()

	if _, err := b.Upload(lut.Identity()); err == nil {
		t.Error("Upload after Release succeeded")
	}
	if _, err := b.Bind(nil, slotLUT); err == nil {
		t.Error("Bind after Release succeeded")
	}
}
