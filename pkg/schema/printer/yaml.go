package printer

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/pfkit/pkg/schema"
)

func (p *Printer) printYAML(chunks []schema.Chunk) error {
	enc := yaml.NewEncoder(p.writer)
	enc.SetIndent(p.opts.IndentSize)
	if err := enc.Encode(p.chunkTree(chunks)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
