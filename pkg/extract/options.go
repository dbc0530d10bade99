package extract

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/pfkit/pkg/types"
)

// Field descriptor offsets. These are fixed for every known build; only
// the strides in Layout vary.
const (
	fieldTagOffset   = 0
	fieldNameOffset  = 8
	fieldInnerOffset = 16
	fieldCountOffset = 24
	minFieldSize     = fieldCountOffset + 8

	descriptorCountOffset = 4
	descriptorMetaOffset  = 8
	minDescriptorSize     = descriptorMetaOffset + 8

	scanStride = 8
)

// Layout holds the record strides of one executable build.
type Layout struct {
	// DescriptorSize is the size of a chunk descriptor record.
	DescriptorSize int
	// VersionEntrySize is the size of one per-version metadata entry.
	VersionEntrySize int
	// RootPointerOffset locates the root type pointer in a version entry.
	RootPointerOffset int
	// FieldSize is the size of one field descriptor.
	FieldSize int
}

// DefaultLayout matches the 64-bit client.
var DefaultLayout = Layout{
	DescriptorSize:    16,
	VersionEntrySize:  24,
	RootPointerOffset: 0,
	FieldSize:         32,
}

func (l Layout) validate() error {
	switch {
	case l.DescriptorSize < minDescriptorSize:
		return fmt.Errorf("extract: descriptor size %d below %d", l.DescriptorSize, minDescriptorSize)
	case l.FieldSize < minFieldSize:
		return fmt.Errorf("extract: field size %d below %d", l.FieldSize, minFieldSize)
	case l.RootPointerOffset < 0 || l.RootPointerOffset+8 > l.VersionEntrySize:
		return fmt.Errorf("extract: root pointer offset %d outside %d-byte version entry",
			l.RootPointerOffset, l.VersionEntrySize)
	}
	return nil
}

// Options configures a Scanner. The zero value is usable.
type Options struct {
	// Layout defaults to DefaultLayout.
	Layout Layout
	// Logger receives candidate diagnostics. Nil discards them.
	Logger *slog.Logger
	// MaxDepth bounds type nesting. Zero means types.DefaultMaxTypeDepth.
	MaxDepth int
}

func (o Options) withDefaults() Options {
	if o.Layout == (Layout{}) {
		o.Layout = DefaultLayout
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = types.DefaultMaxTypeDepth
	}
	return o
}
