package printer

import "github.com/joshuapare/pfkit/pkg/schema"

// chunkNode is the JSON/YAML shape of a chunk.
type chunkNode struct {
	Magic    string        `json:"magic" yaml:"magic"`
	Borrows  bool          `json:"borrows,omitempty" yaml:"borrows,omitempty"`
	Versions []versionNode `json:"versions" yaml:"versions"`
}

type versionNode struct {
	Number uint32    `json:"number" yaml:"number"`
	Root   *typeNode `json:"root" yaml:"root"`
}

type typeNode struct {
	Kind         string      `json:"kind" yaml:"kind"`
	Name         string      `json:"name,omitempty" yaml:"name,omitempty"`
	Ref          string      `json:"ref,omitempty" yaml:"ref,omitempty"`
	Array        string      `json:"array,omitempty" yaml:"array,omitempty"`
	Size         int         `json:"size,omitempty" yaml:"size,omitempty"`
	Borrows      bool        `json:"borrows,omitempty" yaml:"borrows,omitempty"`
	Truncated    bool        `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Inner        *typeNode   `json:"inner,omitempty" yaml:"inner,omitempty"`
	Alternatives []*typeNode `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
	Fields       []fieldNode `json:"fields,omitempty" yaml:"fields,omitempty"`
}

type fieldNode struct {
	Name string    `json:"name" yaml:"name"`
	Type *typeNode `json:"type" yaml:"type"`
}

func (p *Printer) chunkTree(chunks []schema.Chunk) []chunkNode {
	out := make([]chunkNode, 0, len(chunks))
	for _, c := range chunks {
		n := chunkNode{Magic: c.Magic, Borrows: c.Borrows && p.opts.ShowBorrows}
		for _, v := range c.Versions {
			n.Versions = append(n.Versions, versionNode{Number: v.Number, Root: p.typeTree(v.Root, 0)})
		}
		out = append(out, n)
	}
	return out
}

// typeTree converts t. depth counts composite and variant expansions.
func (p *Printer) typeTree(t *schema.Type, depth int) *typeNode {
	if t == nil {
		return nil
	}
	n := &typeNode{
		Kind:    t.Kind.String(),
		Name:    t.Name,
		Borrows: t.Borrows() && p.opts.ShowBorrows,
	}
	switch t.Kind {
	case schema.KindReference:
		n.Ref = t.Ref.String()
		n.Inner = p.typeTree(t.Inner, depth)
	case schema.KindArray:
		n.Array = t.Array.String()
		n.Size = t.Size
		n.Inner = p.typeTree(t.Inner, depth)
	case schema.KindVariant, schema.KindComposite:
		if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
			n.Truncated = true
			return n
		}
		for _, a := range t.Alternatives {
			n.Alternatives = append(n.Alternatives, p.typeTree(a, depth+1))
		}
		for _, f := range t.Fields {
			n.Fields = append(n.Fields, fieldNode{Name: f.Name, Type: p.typeTree(f.Type, depth+1)})
		}
	}
	return n
}
