package pf

import (
	"encoding/binary"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/pfkit/internal/buf"
	"github.com/joshuapare/pfkit/pkg/types"
)

// WString is a NUL-terminated UTF-16LE string. It aliases the input buffer
// and excludes the terminator.
type WString struct {
	raw []byte
}

// Raw returns the UTF-16LE bytes without the terminator.
func (w WString) Raw() []byte { return w.raw }

// Len returns the number of 16-bit code units.
func (w WString) Len() int { return len(w.raw) / 2 }

// Unit returns the i-th code unit.
func (w WString) Unit(i int) uint16 { return binary.LittleEndian.Uint16(w.raw[2*i:]) }

// Units copies the code units out of the buffer.
func (w WString) Units() []uint16 {
	out := make([]uint16, w.Len())
	for i := range out {
		out[i] = w.Unit(i)
	}
	return out
}

// Decode converts the string to UTF-8. Unpaired surrogates become U+FFFD.
func (w WString) Decode() (string, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(w.raw)
	if err != nil {
		return "", &types.Error{Kind: types.ErrKindInvalidText, Type: "wstring", Err: err}
	}
	return string(out), nil
}

// String implements fmt.Stringer.
func (w WString) String() string {
	s, _ := w.Decode()
	return s
}

// WStringCodec reads a wide string inline: it scans 16-bit units for the
// first zero and advances past the terminator.
var WStringCodec = Codec[WString]{
	Name: "wstring",
	Size: Dynamic(),
	Decode: func(in *Input) (WString, error) {
		end := buf.IndexZero16(in.Remaining)
		if end < 0 {
			return WString{}, &types.Error{Kind: types.ErrKindTextTerminatorNotFound, Type: "wstring"}
		}
		raw := in.Remaining[: 2*end : 2*end]
		in.Remaining = in.Remaining[2*end+2:]
		return WString{raw: raw}, nil
	},
}

// CString is a NUL-terminated narrow string in the Windows-1252 code page.
// It aliases the input buffer.
type CString struct {
	raw []byte
}

// Raw returns the bytes without the terminator.
func (c CString) Raw() []byte { return c.raw }

// Decode converts the string to UTF-8.
func (c CString) Decode() (string, error) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(c.raw)
	if err != nil {
		return "", &types.Error{Kind: types.ErrKindInvalidText, Type: "cstring", Err: err}
	}
	return string(out), nil
}

// String implements fmt.Stringer.
func (c CString) String() string {
	s, _ := c.Decode()
	return s
}

// CStringCodec reads a narrow string inline and advances past the terminator.
var CStringCodec = Codec[CString]{
	Name: "cstring",
	Size: Dynamic(),
	Decode: func(in *Input) (CString, error) {
		end := buf.IndexZero(in.Remaining)
		if end < 0 {
			return CString{}, &types.Error{Kind: types.ErrKindTextTerminatorNotFound, Type: "cstring"}
		}
		raw := in.Remaining[:end:end]
		in.Remaining = in.Remaining[end+1:]
		return CString{raw: raw}, nil
	},
}

// FileName is a wide string naming another archive entry.
type FileName struct {
	WString
}

// ID derives the archive file id encoded in the first two code units.
// Names shorter than two units have id 0. The arithmetic wraps in 32 bits.
func (n FileName) ID() uint32 {
	if n.Len() < 2 {
		return 0
	}
	lo, hi := int32(n.Unit(0)), int32(n.Unit(1))
	return uint32(hi*0xff00 + (lo - 0xff00ff))
}

// FileNameCodec reads a FileName inline.
var FileNameCodec = Codec[FileName]{
	Name: "filename",
	Size: WStringCodec.Size,
	Decode: func(in *Input) (FileName, error) {
		w, err := WStringCodec.Decode(in)
		return FileName{WString: w}, err
	},
}
