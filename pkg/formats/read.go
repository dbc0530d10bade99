package formats

import "github.com/joshuapare/pfkit/pkg/pf"

// File is a fully read pack file.
type File[T any] struct {
	Chunks []T
	// Skipped holds the errors of chunks that failed to decode.
	Skipped []error
}

// Read decodes every chunk of b, setting aside chunks that fail.
func Read[T any](p pf.PackFile[T], b []byte) (*File[T], error) {
	it, err := p.Open(b)
	if err != nil {
		return nil, err
	}
	out := &File[T]{}
	for v, err := range it.All() {
		if err != nil {
			out.Skipped = append(out.Skipped, err)
			continue
		}
		out.Chunks = append(out.Chunks, v)
	}
	return out, nil
}

// ReadStrict decodes every chunk of b and stops at the first failure.
func ReadStrict[T any](p pf.PackFile[T], b []byte) ([]T, error) {
	it, err := p.Open(b)
	if err != nil {
		return nil, err
	}
	var out []T
	for v, err := range it.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
