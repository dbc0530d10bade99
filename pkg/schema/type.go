package schema

import (
	"fmt"
	"strings"
)

// Type is one node of a recovered type graph. Which fields are set depends
// on Kind:
//
//	scalar, text   none
//	KindReference  Ref, Inner
//	KindArray      Array, Inner, Size
//	KindVariant    Alternatives
//	KindComposite  Name, Fields
type Type struct {
	Kind Kind

	Name   string
	Fields []Field

	Ref   RefKind
	Array ArrayKind
	Size  int
	Inner *Type

	Alternatives []*Type

	borrows bool
}

// Field is a named member of a composite.
type Field struct {
	Name string
	Type *Type
}

// Scalar returns a leaf type. k must be a scalar kind.
func Scalar(k Kind) *Type {
	if !k.IsScalar() {
		panic(fmt.Sprintf("schema: %s is not a scalar kind", k))
	}
	return &Type{Kind: k}
}

// Text returns a narrow or wide C string type.
func Text(wide bool) *Type {
	if wide {
		return &Type{Kind: KindWideCString, borrows: true}
	}
	return &Type{Kind: KindCString, borrows: true}
}

// Reference wraps inner in a reference of the given kind.
func Reference(kind RefKind, inner *Type) *Type {
	return &Type{Kind: KindReference, Ref: kind, Inner: inner, borrows: inner.Borrows()}
}

// Array returns an array of inner. size is the multiplicity recorded in the
// descriptor; for dynamic arrays it is informational.
func Array(kind ArrayKind, inner *Type, size int) *Type {
	t := &Type{Kind: KindArray, Array: kind, Inner: inner, Size: size, borrows: inner.Borrows()}
	if (kind == ArrayDynamic || kind == ArrayDynamicSmall) && inner.Kind == KindU8 {
		// decoded as a view over the input
		t.borrows = true
	}
	return t
}

// InlineArray is a built-in vector of n scalars.
func InlineArray(inner *Type, n int) *Type {
	return Array(ArrayInline, inner, n)
}

// Variant returns a tagged union of alts.
func Variant(alts ...*Type) *Type {
	t := &Type{Kind: KindVariant, Alternatives: alts}
	for _, a := range alts {
		t.borrows = t.borrows || a.Borrows()
	}
	return t
}

// Composite returns a named record type.
func Composite(name string, fields []Field) *Type {
	t := &Type{Kind: KindComposite, Name: name, Fields: fields}
	for _, f := range fields {
		t.borrows = t.borrows || f.Type.Borrows()
	}
	return t
}

// Borrows reports whether a decoded value of t holds views into the input:
// text, byte arrays, or members that do.
func (t *Type) Borrows() bool { return t != nil && t.borrows }

// String renders a compact type expression such as "[]*Foo" or "[3]f32".
func (t *Type) String() string {
	var b strings.Builder
	t.format(&b)
	return b.String()
}

func (t *Type) format(b *strings.Builder) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	switch t.Kind {
	case KindReference:
		switch t.Ref {
		case RefOptional:
			b.WriteString("*")
		case RefStructCommon:
			b.WriteString("common ")
		}
		t.Inner.format(b)
	case KindArray:
		switch t.Array {
		case ArrayFixed, ArrayInline:
			fmt.Fprintf(b, "[%d]", t.Size)
		case ArrayDynamicSmall:
			b.WriteString("[]small ")
		case ArrayPointers:
			b.WriteString("[]*")
		default:
			b.WriteString("[]")
		}
		t.Inner.format(b)
	case KindVariant:
		b.WriteString("variant<")
		for i, a := range t.Alternatives {
			if i > 0 {
				b.WriteString(" | ")
			}
			a.format(b)
		}
		b.WriteString(">")
	case KindComposite:
		b.WriteString(t.Name)
	default:
		b.WriteString(t.Kind.String())
	}
}

// Version is one generation of a chunk's layout.
type Version struct {
	Number uint32
	Root   *Type
}

// Chunk is the recovered description of one chunk magic.
type Chunk struct {
	Magic    string
	Versions []Version
	Borrows  bool
}

// NewChunk builds a chunk and computes its borrow flag from every version.
func NewChunk(magic string, versions []Version) Chunk {
	c := Chunk{Magic: magic, Versions: versions}
	for _, v := range versions {
		c.Borrows = c.Borrows || v.Root.Borrows()
	}
	return c
}

// Latest returns the highest numbered version.
func (c Chunk) Latest() (Version, bool) {
	if len(c.Versions) == 0 {
		return Version{}, false
	}
	best := c.Versions[0]
	for _, v := range c.Versions[1:] {
		if v.Number > best.Number {
			best = v
		}
	}
	return best, true
}
