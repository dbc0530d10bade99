package pf

import (
	"fmt"

	"github.com/joshuapare/pfkit/internal/buf"
	"github.com/joshuapare/pfkit/pkg/types"
)

// arrayHeader is the (u32 length, pointer) pair shared by every dynamic
// array and byte view.
var arrayHeader = BinarySize{FixedBytes: 4, Pointers: 1}

// Ref decodes a nullable self-relative reference to a value of c. A null
// pointer yields nil. The target is decoded from a separate view so the
// outer cursor only moves past the pointer field; siblings may point into
// the same trailing region.
func Ref[T any](c Codec[T]) Codec[*T] {
	return Codec[*T]{
		Name: "*" + c.Name,
		Size: PointerFields(1),
		Decode: func(in *Input) (*T, error) {
			target, err := in.Follow()
			if err != nil || target == nil {
				return nil, err
			}
			v, err := c.Decode(target)
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
	}
}

// readArrayHeader consumes the length and pointer of a dynamic array and
// returns a view at its first element. The view is nil when length is 0.
func readArrayHeader(in *Input) (int, *Input, error) {
	length, err := U32.Decode(in)
	if err != nil {
		return 0, nil, err
	}
	off, present, err := in.ReadPointer()
	if err != nil {
		return 0, nil, err
	}
	if length == 0 {
		return 0, nil, nil
	}
	if !present {
		return 0, nil, &types.Error{
			Kind: types.ErrKindOffsetOutOfBounds,
			Msg:  fmt.Sprintf("null pointer for %d elements", length),
		}
	}
	elems, err := in.At(off)
	if err != nil {
		return 0, nil, err
	}
	return int(length), elems, nil
}

// capacityFor caps preallocation by what the remaining bytes could hold.
func capacityFor(length int, size BinarySize, in *Input) int {
	if n, ok := size.Actual(in.Wide); ok && n > 0 {
		return min(length, in.Len()/n+1)
	}
	return min(length, in.Len()+1)
}

// Slice decodes a dynamic array: a u32 element count and a self-relative
// pointer to the elements, which are read back to back.
func Slice[T any](c Codec[T]) Codec[[]T] {
	return Codec[[]T]{
		Name: "[]" + c.Name,
		Size: arrayHeader,
		Decode: func(in *Input) ([]T, error) {
			length, elems, err := readArrayHeader(in)
			if err != nil || length == 0 {
				return nil, err
			}
			out := make([]T, 0, capacityFor(length, c.Size, elems))
			for range length {
				v, err := c.Decode(elems)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return out, nil
		},
	}
}

// ZeroTerminated decodes a dynamic array that ends early at the first
// element whose encoded bytes are all zero. The declared length is still an
// upper bound. Probing requires a statically sized element, so building one
// over a dynamic codec panics.
func ZeroTerminated[T any](c Codec[T]) Codec[[]T] {
	if c.Size.Dynamic {
		panic(fmt.Sprintf("pf: ZeroTerminated(%s): element size is dynamic", c.Name))
	}
	return Codec[[]T]{
		Name: "[]" + c.Name,
		Size: arrayHeader,
		Decode: func(in *Input) ([]T, error) {
			length, elems, err := readArrayHeader(in)
			if err != nil || length == 0 {
				return nil, err
			}
			width, _ := c.Size.Actual(in.Wide)
			out := make([]T, 0, capacityFor(length, c.Size, elems))
			for range length {
				probe, ok := buf.Slice(elems.Remaining, 0, width)
				if !ok {
					return nil, types.ShortRead(c.Name, width, elems.Len())
				}
				if buf.AllZero(probe) {
					break
				}
				v, err := c.Decode(elems)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return out, nil
		},
	}
}

// Bytes decodes a length-prefixed byte array as a window directly over the
// input buffer. Nothing is copied.
var Bytes = Codec[[]byte]{
	Name: "[]byte",
	Size: arrayHeader,
	Decode: func(in *Input) ([]byte, error) {
		length, err := U32.Decode(in)
		if err != nil {
			return nil, err
		}
		off, present, err := in.ReadPointer()
		if err != nil || length == 0 {
			return nil, err
		}
		if !present {
			return nil, types.OffsetOutOfBounds(0)
		}
		b, ok := buf.Slice(in.Remaining, off, int(length))
		if !ok {
			return nil, types.ShortRead("[]byte", off+int(length), in.Len())
		}
		return b, nil
	},
}
