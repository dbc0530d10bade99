// Package printer renders recovered chunk schemas as an indented text
// tree, JSON or YAML.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/pfkit/pkg/schema"
)

const (
	DefaultIndentSize = 2
	DefaultMaxDepth   = 0
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs an indented tree.
	FormatText Format = "text"

	// FormatJSON outputs a JSON array of chunks.
	FormatJSON Format = "json"

	// FormatYAML outputs a YAML sequence of chunks.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json, yaml).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level.
	// Default: 2
	IndentSize int

	// MaxDepth limits how far nested types are expanded (0 = unlimited).
	// Default: 0
	MaxDepth int

	// LatestOnly prints only the highest version of each chunk.
	// Default: false
	LatestOnly bool

	// ShowBorrows marks types whose decoded values alias the input.
	// Default: true
	ShowBorrows bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:      FormatText,
		IndentSize:  DefaultIndentSize,
		MaxDepth:    DefaultMaxDepth,
		LatestOnly:  false,
		ShowBorrows: true,
	}
}

// Printer writes chunk schemas.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer.
//
// Example:
//
//	chunks, _ := extract.Locate(raw, extract.Options{})
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintChunks(chunks)
func New(w io.Writer, opts Options) *Printer {
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}
	return &Printer{writer: w, opts: opts}
}

// PrintChunks prints every chunk in order.
func (p *Printer) PrintChunks(chunks []schema.Chunk) error {
	chunks = p.selectVersions(chunks)
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(chunks)
	case FormatYAML:
		return p.printYAML(chunks)
	default:
		return p.printText(chunks)
	}
}

// PrintChunk prints one chunk.
func (p *Printer) PrintChunk(c schema.Chunk) error {
	return p.PrintChunks([]schema.Chunk{c})
}

func (p *Printer) selectVersions(chunks []schema.Chunk) []schema.Chunk {
	if !p.opts.LatestOnly {
		return chunks
	}
	out := make([]schema.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if v, ok := c.Latest(); ok {
			c.Versions = []schema.Version{v}
		}
		out = append(out, c)
	}
	return out
}
