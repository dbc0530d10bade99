package pf

import (
	"math"

	"github.com/joshuapare/pfkit/internal/buf"
	"github.com/joshuapare/pfkit/pkg/types"
)

const (
	narrowPointerSize = 4
	widePointerSize   = 8
)

// Input is a shrinking view over a pack-file buffer. Reads consume bytes from
// the front; nothing ever grows the view again.
type Input struct {
	Remaining []byte
	// Wide selects 64-bit self-relative pointers instead of 32-bit ones.
	Wide bool
}

// NewInput returns a cursor over b.
func NewInput(b []byte, wide bool) *Input {
	return &Input{Remaining: b, Wide: wide}
}

// Len returns the number of unread bytes.
func (in *Input) Len() int { return len(in.Remaining) }

// PointerSize is the width of a pointer field in bytes (4 or 8).
func (in *Input) PointerSize() int {
	if in.Wide {
		return widePointerSize
	}
	return narrowPointerSize
}

// Take consumes n bytes and returns them without copying. typ names the
// value being read for the ShortRead error.
func (in *Input) Take(n int, typ string) ([]byte, error) {
	b, ok := buf.Slice(in.Remaining, 0, n)
	if !ok {
		return nil, types.ShortRead(typ, n, len(in.Remaining))
	}
	in.Remaining = in.Remaining[n:]
	return b, nil
}

// At returns an independent cursor starting offset bytes past the current
// position. The receiver is not advanced.
func (in *Input) At(offset int) (*Input, error) {
	if offset < 0 || offset > len(in.Remaining) {
		return nil, types.ShortRead("", offset, len(in.Remaining))
	}
	return &Input{Remaining: in.Remaining[offset:], Wide: in.Wide}, nil
}

// ReadPointer consumes a self-relative pointer field and returns the target
// as an offset from the position just after the field. The stored value is
// measured from the start of the field, so the field width is subtracted.
// present is false for a stored zero.
func (in *Input) ReadPointer() (offset int, present bool, err error) {
	width := in.PointerSize()
	raw, err := in.Take(width, "pointer")
	if err != nil {
		return 0, false, err
	}
	var v uint64
	if in.Wide {
		v = buf.U64LE(raw)
	} else {
		v = uint64(buf.U32LE(raw))
	}
	if v == 0 {
		return 0, false, nil
	}
	// 1..width-1 would point back into the field itself.
	if v < uint64(width) || v-uint64(width) > math.MaxInt {
		return 0, false, types.OffsetOutOfBounds(v)
	}
	return int(v - uint64(width)), true, nil
}

// Follow consumes a pointer field and returns a cursor at its target, or
// nil when the pointer is null.
func (in *Input) Follow() (*Input, error) {
	off, present, err := in.ReadPointer()
	if err != nil || !present {
		return nil, err
	}
	return in.At(off)
}
