// Package testutil builds synthetic pack files and executable images for
// tests. Nothing here is used outside _test.go files.
package testutil

import (
	"encoding/binary"
	"unicode/utf16"
)

// Buffer is a little-endian byte builder.
type Buffer struct {
	b []byte
}

// Len returns the number of bytes written.
func (w *Buffer) Len() int { return len(w.b) }

// Data returns the built bytes.
func (w *Buffer) Data() []byte { return w.b }

// U8 appends one byte.
func (w *Buffer) U8(v uint8) *Buffer {
	w.b = append(w.b, v)
	return w
}

// U16 appends a little-endian uint16.
func (w *Buffer) U16(v uint16) *Buffer {
	w.b = binary.LittleEndian.AppendUint16(w.b, v)
	return w
}

// U32 appends a little-endian uint32.
func (w *Buffer) U32(v uint32) *Buffer {
	w.b = binary.LittleEndian.AppendUint32(w.b, v)
	return w
}

// U64 appends a little-endian uint64.
func (w *Buffer) U64(v uint64) *Buffer {
	w.b = binary.LittleEndian.AppendUint64(w.b, v)
	return w
}

// Raw appends bytes verbatim.
func (w *Buffer) Raw(b ...byte) *Buffer {
	w.b = append(w.b, b...)
	return w
}

// Pad appends n zero bytes.
func (w *Buffer) Pad(n int) *Buffer {
	w.b = append(w.b, make([]byte, n)...)
	return w
}

// Align pads with zeros to a multiple of n.
func (w *Buffer) Align(n int) *Buffer {
	if r := len(w.b) % n; r != 0 {
		w.Pad(n - r)
	}
	return w
}

// WString appends s as UTF-16LE followed by a zero unit.
func (w *Buffer) WString(s string) *Buffer {
	for _, u := range utf16.Encode([]rune(s)) {
		w.U16(u)
	}
	return w.U16(0)
}

// CString appends s followed by a NUL byte.
func (w *Buffer) CString(s string) *Buffer {
	w.b = append(w.b, s...)
	return w.U8(0)
}

// PutU32 overwrites a uint32 at off.
func (w *Buffer) PutU32(off int, v uint32) {
	binary.LittleEndian.PutUint32(w.b[off:], v)
}

// PutU64 overwrites a uint64 at off.
func (w *Buffer) PutU64(off int, v uint64) {
	binary.LittleEndian.PutUint64(w.b[off:], v)
}

// Ptr appends a self-relative pointer placeholder of the given width and
// returns its offset for Patch.
func (w *Buffer) Ptr(wide bool) int {
	off := len(w.b)
	if wide {
		w.U64(0)
	} else {
		w.U32(0)
	}
	return off
}

// Patch stores into the pointer field at field the distance from the field
// start to target, which is how the pack-file format encodes pointers.
func (w *Buffer) Patch(field, target int, wide bool) {
	if wide {
		w.PutU64(field, uint64(target-field))
		return
	}
	w.PutU32(field, uint32(target-field))
}
