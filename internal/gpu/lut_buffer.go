//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/colorlut/lut"
)

// ErrTableSize is returned by Upload for a table that is not exactly
// lut.Len entries long.
var ErrTableSize = errors.New("gpu: lookup table has the wrong size")

// LUTBuffer is the device copy of a lookup table: one storage buffer of
// lut.ByteSize bytes, replaced wholesale on every upload.
type LUTBuffer struct {
	device hal.Device
	queue  hal.Queue

	buf       hal.Buffer
	bindGroup hal.BindGroup
	uploaded  *lut.Table
}

// NewLUTBuffer allocates the storage buffer. Its contents are undefined
// until the first Upload.
func NewLUTBuffer(device hal.Device, queue hal.Queue) (*LUTBuffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "colorlut_table",
		Size:  lut.ByteSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create table buffer: %w", err)
	}
	slogger().Debug("lookup table buffer created", "bytes", lut.ByteSize)
	return &LUTBuffer{device: device, queue: queue, buf: buf}, nil
}

// Upload replaces the buffer contents with t and returns the number of
// bytes written.
func (b *LUTBuffer) Upload(t *lut.Table) (int, error) {
	if b.buf == nil {
		return 0, fmt.Errorf("gpu: upload to released table buffer")
	}
	if t == nil || t.Len() != lut.Len {
		return 0, ErrTableSize
	}
	data := t.Bytes()
	b.queue.WriteBuffer(b.buf, 0, data)
	b.uploaded = t
	slogger().Debug("lookup table uploaded", "bytes", len(data))
	return len(data), nil
}

// Uploaded returns the table most recently written by Upload.
func (b *LUTBuffer) Uploaded() *lut.Table { return b.uploaded }

// Entry returns the bind group entry exposing the whole buffer at slot.
func (b *LUTBuffer) Entry(slot uint32) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding: slot,
		Resource: gputypes.BufferBinding{
			Buffer: b.buf.NativeHandle(), Offset: 0, Size: lut.ByteSize,
		},
	}
}

// Bind creates a bind group for layout holding the table at slot together
// with the caller's other entries. The group lives until Unbind.
func (b *LUTBuffer) Bind(layout hal.BindGroupLayout, slot uint32, rest ...gputypes.BindGroupEntry) (hal.BindGroup, error) {
	if b.buf == nil {
		return nil, fmt.Errorf("gpu: bind of released table buffer")
	}
	b.Unbind()
	entries := make([]gputypes.BindGroupEntry, 0, len(rest)+1)
	entries = append(entries, b.Entry(slot))
	entries = append(entries, rest...)
	bg, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "colorlut_bind",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	b.bindGroup = bg
	return bg, nil
}

// Bound reports whether a bind group is live.
func (b *LUTBuffer) Bound() bool { return b.bindGroup != nil }

// Unbind destroys the bind group created by Bind, if any.
func (b *LUTBuffer) Unbind() {
	if b.bindGroup != nil {
		b.device.DestroyBindGroup(b.bindGroup)
		b.bindGroup = nil
	}
}

// Release frees the buffer. It is safe to call more than once.
func (b *LUTBuffer) Release() {
	b.Unbind()
	if b.buf != nil {
		b.device.DestroyBuffer(b.buf)
		b.buf = nil
	}
	b.uploaded = nil
}
