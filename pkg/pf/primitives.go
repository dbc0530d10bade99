package pf

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"
)

// Token is an opaque 64-bit string-table token.
type Token uint64

func fixed[T any](name string, n int, conv func([]byte) T) Codec[T] {
	return Codec[T]{
		Name: name,
		Size: Fixed(n),
		Decode: func(in *Input) (T, error) {
			b, err := in.Take(n, name)
			if err != nil {
				var zero T
				return zero, err
			}
			return conv(b), nil
		},
	}
}

// Little-endian numeric codecs.
var (
	U8  = fixed("uint8", 1, func(b []byte) uint8 { return b[0] })
	U16 = fixed("uint16", 2, binary.LittleEndian.Uint16)
	U32 = fixed("uint32", 4, binary.LittleEndian.Uint32)
	U64 = fixed("uint64", 8, binary.LittleEndian.Uint64)

	I8  = fixed("int8", 1, func(b []byte) int8 { return int8(b[0]) })
	I16 = fixed("int16", 2, func(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) })
	I32 = fixed("int32", 4, func(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) })
	I64 = fixed("int64", 8, func(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) })

	F32 = fixed("float32", 4, func(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) })
	F64 = fixed("float64", 8, func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) })
)

// UUIDCodec reads 16 raw bytes. The bytes are kept in file order; the
// mixed-endian GUID layout is not reinterpreted.
var UUIDCodec = fixed("uuid", 16, func(b []byte) uuid.UUID {
	var u uuid.UUID
	copy(u[:], b)
	return u
})

// TokenCodec reads a 64-bit token.
var TokenCodec = fixed("token", 8, func(b []byte) Token { return Token(binary.LittleEndian.Uint64(b)) })

// Array reads n consecutive values of c inline, as used for the fixed
// vector types (float3, byte4, ...).
func Array[T any](c Codec[T], n int) Codec[[]T] {
	return Codec[[]T]{
		Name: c.Name + "[]",
		Size: c.Size.Times(n),
		Decode: func(in *Input) ([]T, error) {
			out := make([]T, n)
			for i := range out {
				v, err := c.Decode(in)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		},
	}
}
