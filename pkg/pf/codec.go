package pf

import "fmt"

// Codec is the decoding capability of one type: how to read it from the
// front of a cursor and how large its encoded form can be.
type Codec[T any] struct {
	Name   string
	Size   BinarySize
	Decode func(in *Input) (T, error)
}

// Fields is the sticky-error reader handed to record builders. Once a field
// fails, later reads are skipped and the first error is reported.
type Fields struct {
	in  *Input
	err error
}

// Input exposes the cursor for fields that need direct access.
func (f *Fields) Input() *Input { return f.in }

// Err returns the first field error.
func (f *Fields) Err() error { return f.err }

// Skip consumes n reserved bytes.
func (f *Fields) Skip(n int) {
	if f.err != nil {
		return
	}
	_, f.err = f.in.Take(n, "reserved")
}

// SkipPointer consumes a pointer-sized reserved field.
func (f *Fields) SkipPointer() {
	f.Skip(f.in.PointerSize())
}

// Read decodes one field with c into dst.
func Read[T any](f *Fields, dst *T, c Codec[T]) {
	if f.err != nil {
		return
	}
	v, err := c.Decode(f.in)
	if err != nil {
		f.err = err
		return
	}
	*dst = v
}

// Record builds the codec of a record type from a function that reads its
// fields in declaration order. size must be the sum of the field sizes.
func Record[T any](name string, size BinarySize, fields func(f *Fields, v *T)) Codec[T] {
	return Codec[T]{
		Name: name,
		Size: size,
		Decode: func(in *Input) (T, error) {
			var v T
			f := Fields{in: in}
			fields(&f, &v)
			if f.err != nil {
				var zero T
				return zero, fmt.Errorf("%s: %w", name, f.err)
			}
			return v, nil
		},
	}
}

// Decode runs c over b in the given pointer mode. It is a convenience for
// decoding a payload that was sliced out by other means.
func Decode[T any](c Codec[T], b []byte, wide bool) (T, error) {
	return c.Decode(NewInput(b, wide))
}
