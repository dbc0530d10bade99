package printer

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/joshuapare/pfkit/pkg/schema"
)

func (p *Printer) printJSON(chunks []schema.Chunk) error {
	data, err := json.MarshalIndent(p.chunkTree(chunks), "", strings.Repeat(" ", p.opts.IndentSize))
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
