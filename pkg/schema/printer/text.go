package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/pfkit/pkg/schema"
)

func (p *Printer) printText(chunks []schema.Chunk) error {
	for _, c := range chunks {
		if err := p.printChunkText(c); err != nil {
			return err
		}
	}
	return nil
}

// printChunkText prints:
//
//	[ABCD] borrows
//	  v1: Root
//	    id: u32
//	    items: []Item
//	      name: wstring
func (p *Printer) printChunkText(c schema.Chunk) error {
	if _, err := fmt.Fprintf(p.writer, "[%s]%s\n", c.Magic, p.borrowMark(c.Borrows)); err != nil {
		return err
	}
	for _, v := range c.Versions {
		fmt.Fprintf(p.writer, "%sv%d: %s%s\n", p.indent(1), v.Number, v.Root, p.borrowMark(v.Root.Borrows()))
		if err := p.printMembersText(v.Root, 2); err != nil {
			return err
		}
	}
	return nil
}

// printMembersText expands the composite or variant underneath t.
func (p *Printer) printMembersText(t *schema.Type, depth int) error {
	t = underlying(t)
	if t == nil || p.truncated(depth) {
		return nil
	}
	switch t.Kind {
	case schema.KindComposite:
		for _, f := range t.Fields {
			if _, err := fmt.Fprintf(p.writer, "%s%s: %s\n", p.indent(depth), f.Name, f.Type); err != nil {
				return err
			}
			if err := p.printMembersText(f.Type, depth+1); err != nil {
				return err
			}
		}
	case schema.KindVariant:
		for i, a := range t.Alternatives {
			if _, err := fmt.Fprintf(p.writer, "%s#%d: %s\n", p.indent(depth), i, a); err != nil {
				return err
			}
			if err := p.printMembersText(a, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// underlying strips references and arrays.
func underlying(t *schema.Type) *schema.Type {
	for t != nil && (t.Kind == schema.KindReference || t.Kind == schema.KindArray) {
		t = t.Inner
	}
	return t
}

func (p *Printer) truncated(depth int) bool {
	// depth counts the chunk and version lines
	return p.opts.MaxDepth > 0 && depth-2 >= p.opts.MaxDepth
}

func (p *Printer) indent(depth int) string {
	return strings.Repeat(" ", depth*p.opts.IndentSize)
}

func (p *Printer) borrowMark(b bool) string {
	if b && p.opts.ShowBorrows {
		return " (borrows)"
	}
	return ""
}
