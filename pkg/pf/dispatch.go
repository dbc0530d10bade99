package pf

import "github.com/joshuapare/pfkit/pkg/types"

// VersionFunc decodes one generation of a record.
type VersionFunc[T any] func(in *Input) (T, error)

// Versioned selects a layout by explicit version number.
type Versioned[T any] struct {
	Name     string
	Versions map[uint16]VersionFunc[T]
}

// Decode dispatches on version. An unregistered version fails with
// UnknownVersion naming v.Name.
func (v Versioned[T]) Decode(version uint16, in *Input) (T, error) {
	fn, ok := v.Versions[version]
	if !ok {
		var zero T
		return zero, types.UnknownVersion(v.Name, version)
	}
	return fn(in)
}

// Supports reports whether version has a registered layout.
func (v Versioned[T]) Supports(version uint16) bool {
	_, ok := v.Versions[version]
	return ok
}

// Version adapts a record codec into a VersionFunc producing T.
func Version[T, R any](c Codec[R], wrap func(R) T) VersionFunc[T] {
	return func(in *Input) (T, error) {
		r, err := c.Decode(in)
		if err != nil {
			var zero T
			return zero, err
		}
		return wrap(r), nil
	}
}

// KindFunc decodes one record kind given its version.
type KindFunc[T any] func(version uint16, in *Input) (T, error)

// Family selects a record kind by chunk magic, then that kind's layout by
// version.
type Family[T any] struct {
	Name  string
	Kinds map[FourCC]KindFunc[T]
}

// Decode implements ChunkDecoder.
func (f Family[T]) Decode(magic FourCC, version uint16, in *Input) (T, error) {
	fn, ok := f.Kinds[magic]
	if !ok {
		var zero T
		return zero, types.UnknownMagic(f.Name, magic)
	}
	return fn(version, in)
}

// Member adapts a Versioned kind into a Family entry, converting its
// result with wrap.
func Member[T, K any](v Versioned[K], wrap func(K) T) KindFunc[T] {
	return func(version uint16, in *Input) (T, error) {
		k, err := v.Decode(version, in)
		if err != nil {
			var zero T
			return zero, err
		}
		return wrap(k), nil
	}
}

// ChunkKey identifies one generation of one chunk kind.
type ChunkKey struct {
	Magic   FourCC
	Version uint16
}

// Table is a flat (magic, version) dispatch for formats where every
// generation is its own entry.
type Table[T any] struct {
	Name    string
	Entries map[ChunkKey]VersionFunc[T]
}

// Decode implements ChunkDecoder.
func (t Table[T]) Decode(magic FourCC, version uint16, in *Input) (T, error) {
	fn, ok := t.Entries[ChunkKey{Magic: magic, Version: version}]
	if !ok {
		var zero T
		return zero, types.UnknownMagicOrVersion(t.Name, magic, version)
	}
	return fn(in)
}
