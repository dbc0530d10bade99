package extract

import (
	"fmt"
	"iter"

	"github.com/joshuapare/pfkit/internal/buf"
	"github.com/joshuapare/pfkit/internal/pe"
	"github.com/joshuapare/pfkit/pkg/schema"
	"github.com/joshuapare/pfkit/pkg/types"
)

// Descriptor candidates are 8-byte words whose first four bytes look like
// letters and whose version count fits in one byte. The fourth tag byte may
// also be NUL for three-letter tags; that case is handled separately.
const (
	letterBits = 0x40
	letterMask = 0xC0

	candidateMask   uint64 = letterMask | letterMask<<8 | letterMask<<16 | 0xFFFFFF<<40
	candidateTarget uint64 = letterBits | letterBits<<8 | letterBits<<16
	tagByte3Shift          = 24
)

// Identity is the dedup key of a descriptor.
type Identity struct {
	Tag        string
	Versions   uint32
	MetaOffset uint64
}

// Stats counts what a Scanner has seen so far.
type Stats struct {
	Candidates int
	Accepted   int
	Rejected   int
}

// Scanner finds chunk descriptors in a raw executable. It is not safe for
// concurrent use.
type Scanner struct {
	img    *pe.Image
	opts   Options
	walker *walker
	pos    int
	seen   map[Identity]struct{}
	stats  Stats
}

// NewScanner prepares a scan over img.
func NewScanner(img *pe.Image, opts Options) (*Scanner, error) {
	opts = opts.withDefaults()
	if err := opts.Layout.validate(); err != nil {
		return nil, err
	}
	return &Scanner{
		img:    img,
		opts:   opts,
		walker: newWalker(img, opts),
		seen:   make(map[Identity]struct{}),
	}, nil
}

// Stats returns the running counters.
func (s *Scanner) Stats() Stats { return s.stats }

// Next returns the next descriptor that parses. It returns false at the
// end of the image.
func (s *Scanner) Next() (schema.Chunk, bool) {
	raw := s.img.Raw
	for s.pos+scanStride <= len(raw) {
		off := s.pos
		if !isCandidate(buf.U64LE(raw[off:])) {
			s.pos += scanStride
			continue
		}
		s.stats.Candidates++
		c, err := s.ParseAt(off)
		if err != nil {
			s.stats.Rejected++
			s.opts.Logger.Debug("descriptor rejected",
				"offset", fmt.Sprintf("%#x", off), "tag", tagString(raw[off:off+4]), "err", err)
			s.pos += scanStride
			continue
		}
		s.stats.Accepted++
		s.opts.Logger.Info("descriptor found",
			"offset", fmt.Sprintf("%#x", off), "tag", c.Magic, "versions", len(c.Versions))
		s.pos += s.opts.Layout.DescriptorSize
		return c, true
	}
	s.pos = len(raw)
	return schema.Chunk{}, false
}

// All adapts the scanner to a range-over-func sequence.
func (s *Scanner) All() iter.Seq[schema.Chunk] {
	return func(yield func(schema.Chunk) bool) {
		for {
			c, ok := s.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

// ParseAt parses the descriptor at file offset off. A descriptor already
// returned by this scanner fails with DuplicateDescriptor.
func (s *Scanner) ParseAt(off int) (schema.Chunk, error) {
	rec, ok := buf.Slice(s.img.Raw, off, s.opts.Layout.DescriptorSize)
	if !ok {
		return schema.Chunk{}, types.ShortRead("descriptor", s.opts.Layout.DescriptorSize, len(s.img.Raw)-off)
	}
	tag := tagString(rec[:4])
	count := buf.U32LE(rec[descriptorCountOffset:])
	meta, err := s.img.AddressToOffset(buf.U64LE(rec[descriptorMetaOffset:]))
	if err != nil {
		return schema.Chunk{}, fmt.Errorf("descriptor %s: %w", tag, err)
	}

	id := Identity{Tag: tag, Versions: count, MetaOffset: meta}
	if _, dup := s.seen[id]; dup {
		return schema.Chunk{}, &types.Error{
			Kind:    types.ErrKindDuplicateDescriptor,
			Magic:   types.FourCC(buf.U32LE(rec)),
			Version: count,
			Offset:  meta,
		}
	}
	s.seen[id] = struct{}{}

	var versions []schema.Version
	if meta != 0 {
		versions, err = s.walker.versions(meta, count)
		if err != nil {
			return schema.Chunk{}, fmt.Errorf("descriptor %s: %w", tag, err)
		}
	}
	if len(versions) == 0 {
		return schema.Chunk{}, &types.Error{Kind: types.ErrKindNoUsableVersions, Type: tag}
	}
	return schema.NewChunk(tag, versions), nil
}

// Locate parses raw as an executable and returns every chunk descriptor in
// it.
func Locate(raw []byte, opts Options) ([]schema.Chunk, error) {
	img, err := pe.Parse(raw)
	if err != nil {
		return nil, err
	}
	s, err := NewScanner(img, opts)
	if err != nil {
		return nil, err
	}
	var out []schema.Chunk
	for c := range s.All() {
		out = append(out, c)
	}
	return out, nil
}

func isCandidate(word uint64) bool {
	if word&candidateMask != candidateTarget {
		return false
	}
	b3 := byte(word >> tagByte3Shift)
	if b3 != 0 && b3&letterMask != letterBits {
		return false
	}
	for i := range 3 {
		if !isLetter(byte(word >> (8 * i))) {
			return false
		}
	}
	return b3 == 0 || isLetter(b3)
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

// tagString drops a NUL fourth byte.
func tagString(b []byte) string {
	if b[3] == 0 {
		return string(b[:3])
	}
	return string(b[:4])
}
