package lut

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"
)

const (
	// Len is the number of entries in a table, one per 24-bit RGB triplet.
	Len = 1 << 24

	// ByteSize is the size of a table in bytes as uploaded to the GPU.
	ByteSize = Len * 4
)

// ErrLength is returned when entries do not cover the full 24-bit domain.
var ErrLength = errors.New("lut: table must have exactly 16777216 entries")

var hostLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// Table maps every packed RGB index to a packed RGB output with alpha zero.
type Table struct {
	entries []uint32
}

// New returns a zeroed table for a builder to fill.
func New() *Table {
	return &Table{entries: make([]uint32, Len)}
}

// Identity returns the table whose entry i is i itself.
func Identity() *Table {
	t := New()
	FillIndex(t.entries, 0)
	return t
}

// FromEntries wraps entries without copying. The slice must not be
// modified afterwards.
func FromEntries(entries []uint32) (*Table, error) {
	if len(entries) != Len {
		return nil, fmt.Errorf("%w: got %d", ErrLength, len(entries))
	}
	return &Table{entries: entries}, nil
}

// FillIndex writes the identity mapping into dst, where dst[0] stands for
// index base. Alpha bits of the index are always cleared.
func FillIndex(dst []uint32, base uint32) {
	for i := range dst {
		dst[i] = (base + uint32(i)) & 0x00FFFFFF //nolint:gosec // i < Len
	}
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// At returns the packed entry at index i. Alpha bits of i are ignored.
func (t *Table) At(i uint32) uint32 {
	return t.entries[i&0x00FFFFFF]
}

// Lookup returns the corrected triplet for r, g, b.
func (t *Table) Lookup(r, g, b uint8) (uint8, uint8, uint8) {
	r2, g2, b2, _ := Unpack(t.entries[Index(r, g, b)])
	return r2, g2, b2
}

// Entries exposes the backing slice. Builders fill it before the table is
// published; after that it is read-only.
func (t *Table) Entries() []uint32 { return t.entries }

// IsIdentity reports whether every entry maps to its own index.
func (t *Table) IsIdentity() bool {
	for i, v := range t.entries {
		if v != uint32(i) { //nolint:gosec // i < Len
			return false
		}
	}
	return true
}

// Bytes returns the table as little-endian bytes, ByteSize long.
// On little-endian hosts the result aliases the table memory.
func (t *Table) Bytes() []byte {
	if len(t.entries) == 0 {
		return nil
	}
	if hostLittleEndian {
		return unsafe.Slice((*byte)(unsafe.Pointer(&t.entries[0])), len(t.entries)*4) //nolint:gosec // read-only view of table memory
	}
	out := make([]byte, len(t.entries)*4)
	for i, v := range t.entries {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}
