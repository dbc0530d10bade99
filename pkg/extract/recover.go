package extract

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/joshuapare/pfkit/internal/buf"
	"github.com/joshuapare/pfkit/internal/pe"
	"github.com/joshuapare/pfkit/pkg/schema"
	"github.com/joshuapare/pfkit/pkg/types"
)

// walker rebuilds type graphs from field descriptor lists.
type walker struct {
	img      *pe.Image
	layout   Layout
	maxDepth int
	log      *slog.Logger

	// field lists on the current path, keyed by file offset
	visiting map[uint64]struct{}
}

func newWalker(img *pe.Image, opts Options) *walker {
	return &walker{
		img:      img,
		layout:   opts.Layout,
		maxDepth: opts.MaxDepth,
		log:      opts.Logger,
		visiting: make(map[uint64]struct{}),
	}
}

// record returns n bytes of the image at off.
func (w *walker) record(off uint64, n int, what string) ([]byte, error) {
	b, err := w.img.View(off)
	if err != nil {
		return nil, err
	}
	rec, ok := buf.Slice(b, 0, n)
	if !ok {
		return nil, types.ShortRead(what, n, len(b))
	}
	return rec, nil
}

// pointer resolves the virtual address stored at rec[at:] to a file offset.
// A null pointer resolves to 0.
func (w *walker) pointer(rec []byte, at int) (uint64, error) {
	return w.img.AddressToOffset(buf.U64LE(rec[at:]))
}

// target resolves a pointer that must not be null.
func (w *walker) target(rec []byte, at int, what string) (uint64, error) {
	off, err := w.pointer(rec, at)
	if err != nil {
		return 0, err
	}
	if off == 0 {
		return 0, &types.Error{Kind: types.ErrKindOffsetOutOfBounds, Msg: "null " + what + " pointer"}
	}
	return off, nil
}

func (w *walker) name(rec []byte) (string, error) {
	addr := buf.U64LE(rec[fieldNameOffset:])
	if addr == 0 {
		return "", nil
	}
	b, err := w.img.CStringAt(addr)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &types.Error{Kind: types.ErrKindInvalidText, Type: "field name", Msg: fmt.Sprintf("%q", b)}
	}
	return string(b), nil
}

// typeAt reads the field list at off up to its terminator.
func (w *walker) typeAt(off uint64, depth int) (*schema.Type, error) {
	if depth > w.maxDepth {
		return nil, &types.Error{
			Kind:   types.ErrKindDepthExceeded,
			Offset: off,
			Msg:    fmt.Sprintf("deeper than %d", w.maxDepth),
		}
	}
	if _, ok := w.visiting[off]; ok {
		return nil, &types.Error{Kind: types.ErrKindCyclicType, Offset: off}
	}
	w.visiting[off] = struct{}{}
	defer delete(w.visiting, off)

	var fields []schema.Field
	for pos := off; ; pos += uint64(w.layout.FieldSize) {
		rec, err := w.record(pos, w.layout.FieldSize, "field descriptor")
		if err != nil {
			return nil, err
		}
		code := buf.U16LE(rec[fieldTagOffset:])
		tag := FieldTag(code)
		if !tag.Valid() {
			return nil, invalidFieldType(code)
		}
		name, err := w.name(rec)
		if err != nil {
			return nil, err
		}
		if tag == TagEnd {
			if t, ok := builtinType(name); ok {
				return t, nil
			}
			return schema.Composite(name, fields), nil
		}
		t, err := w.fieldType(tag, rec, depth)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, schema.Field{Name: name, Type: t})
	}
}

func (w *walker) fieldType(tag FieldTag, rec []byte, depth int) (*schema.Type, error) {
	if t, ok := leafField(tag); ok {
		return t, nil
	}
	if kind, ok := arrayKind(tag); ok {
		inner, err := w.inner(rec, depth)
		if err != nil {
			return nil, err
		}
		return schema.Array(kind, inner, int(buf.U64LE(rec[fieldCountOffset:]))), nil
	}
	if kind, ok := refKind(tag); ok {
		inner, err := w.inner(rec, depth)
		if err != nil {
			return nil, err
		}
		return schema.Reference(kind, inner), nil
	}
	if tag == TagVariant {
		return w.variant(rec, depth)
	}
	return nil, invalidFieldType(uint16(tag))
}

func (w *walker) inner(rec []byte, depth int) (*schema.Type, error) {
	off, err := w.target(rec, fieldInnerOffset, "inner type")
	if err != nil {
		return nil, err
	}
	return w.typeAt(off, depth+1)
}

// variant reads the table of alternative type pointers.
func (w *walker) variant(rec []byte, depth int) (*schema.Type, error) {
	table, err := w.target(rec, fieldInnerOffset, "variant table")
	if err != nil {
		return nil, err
	}
	count := buf.U64LE(rec[fieldCountOffset:])
	if count > uint64(len(w.img.Raw))/8 {
		return nil, types.ShortRead("variant table", int(min(count, 1<<32))*8, len(w.img.Raw))
	}
	entries, err := w.record(table, int(count)*8, "variant table")
	if err != nil {
		return nil, err
	}
	alts := make([]*schema.Type, 0, count)
	for i := range int(count) {
		off, err := w.target(entries, i*8, "variant alternative")
		if err != nil {
			return nil, err
		}
		t, err := w.typeAt(off, depth+1)
		if err != nil {
			return nil, fmt.Errorf("alternative %d: %w", i, err)
		}
		alts = append(alts, t)
	}
	return schema.Variant(alts...), nil
}

// versions reads count version entries at meta. Entries with a null root
// are skipped; the version number is the entry index.
func (w *walker) versions(meta uint64, count uint32) ([]schema.Version, error) {
	var out []schema.Version
	size := w.layout.VersionEntrySize
	for i := range count {
		entry, err := w.record(meta+uint64(i)*uint64(size), size, "version entry")
		if err != nil {
			return nil, err
		}
		root, err := w.pointer(entry, w.layout.RootPointerOffset)
		if err != nil {
			return nil, err
		}
		if root == 0 {
			continue
		}
		t, err := w.typeAt(root, 0)
		if err != nil {
			return nil, fmt.Errorf("version %d: %w", i, err)
		}
		out = append(out, schema.Version{Number: i, Root: t})
	}
	return out, nil
}
