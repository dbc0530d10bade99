package types

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// FourCC is a four-character code stored as a little-endian uint32, so
// "ABIX" is the byte sequence 'A','B','I','X' on disk.
type FourCC uint32

// MakeFourCC builds a FourCC from up to four bytes of s. Shorter codes are
// NUL padded, which is how three-letter chunk magics are stored.
func MakeFourCC(s string) FourCC {
	var b [4]byte
	copy(b[:], s)
	return FourCC(binary.LittleEndian.Uint32(b[:]))
}

// Bytes returns the on-disk byte order of the code.
func (c FourCC) Bytes() [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(c))
	return b
}

// String renders printable codes as text with trailing NULs removed and
// anything else as hex.
func (c FourCC) String() string {
	b := c.Bytes()
	s := strings.TrimRight(string(b[:]), "\x00")
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return fmt.Sprintf("0x%08x", uint32(c))
		}
	}
	return s
}
