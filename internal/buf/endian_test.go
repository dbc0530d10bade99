package buf

import "testing"

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U16LE(data); got != 0x2301 {
		t.Fatalf("U16LE = 0x%x, want 0x2301", got)
	}
	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}
	if got := U64LE(data); got != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x, want 0xefcdab8967452301", got)
	}

	short := []byte{0xAA}
	if U16LE(short) != 0 || U32LE(short) != 0 || U64LE(short) != 0 {
		t.Fatalf("short reads should return 0")
	}
}

func TestOffsetReaders(t *testing.T) {
	data := []byte{0xff, 0x34, 0x12, 0x78, 0x56, 0x34, 0x12}

	if v, ok := U16At(data, 1); !ok || v != 0x1234 {
		t.Fatalf("U16At(1) = 0x%x,%v", v, ok)
	}
	if v, ok := U32At(data, 3); !ok || v != 0x12345678 {
		t.Fatalf("U32At(3) = 0x%x,%v", v, ok)
	}
	if _, ok := U32At(data, 4); ok {
		t.Fatalf("U32At(4) should be out of bounds")
	}
	if _, ok := U64At(data, 0); ok {
		t.Fatalf("U64At should fail on a 7 byte buffer")
	}
	if _, ok := U16At(data, -1); ok {
		t.Fatalf("negative offsets must be rejected")
	}
}
