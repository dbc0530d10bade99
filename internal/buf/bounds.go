package buf

import (
	"bytes"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
// The result aliases b.
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

// AllZero reports whether every byte of b is zero. An empty slice is all zero.
func AllZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// IndexZero16 returns the index, in 16-bit units, of the first zero unit in
// b, or -1 when none exists. A trailing odd byte is ignored.
func IndexZero16(b []byte) int {
	n := len(b) / 2
	for i := range n {
		if b[2*i] == 0 && b[2*i+1] == 0 {
			return i
		}
	}
	return -1
}

// IndexZero returns the index of the first zero byte in b, or -1.
func IndexZero(b []byte) int {
	return bytes.IndexByte(b, 0)
}
