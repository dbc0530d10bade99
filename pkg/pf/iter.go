package pf

import (
	"fmt"
	"iter"

	"github.com/joshuapare/pfkit/internal/buf"
	"github.com/joshuapare/pfkit/pkg/types"
)

// ChunkDecoder turns one chunk payload into a value. Family and Table
// implement it.
type ChunkDecoder[T any] interface {
	Decode(magic FourCC, version uint16, in *Input) (T, error)
}

// PackFile binds a container format tag to the decoder of its chunks.
type PackFile[T any] struct {
	Name   string
	Format FourCC
	Chunks ChunkDecoder[T]
}

// Open validates the container header against p.Format and returns an
// iterator over the chunks. The iterator aliases b.
func (p PackFile[T]) Open(b []byte) (*ChunkIter[T], error) {
	h, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}
	if h.Format != p.Format {
		return nil, types.WrongFormatTag(p.Name, p.Format, h.Format)
	}
	return newChunkIter(b, h, p.Chunks)
}

// Open returns a chunk iterator over b without checking the format tag.
func Open[T any](b []byte, dec ChunkDecoder[T]) (Header, *ChunkIter[T], error) {
	h, err := ParseHeader(b)
	if err != nil {
		return Header{}, nil, err
	}
	it, err := newChunkIter(b, h, dec)
	return h, it, err
}

func newChunkIter[T any](b []byte, h Header, dec ChunkDecoder[T]) (*ChunkIter[T], error) {
	if int(h.HeaderSize) > len(b) {
		return nil, fmt.Errorf("pf header: %w", types.ShortRead("pf header", int(h.HeaderSize), len(b)))
	}
	return &ChunkIter[T]{
		input: Input{Remaining: b[h.HeaderSize:], Wide: h.Wide()},
		dec:   dec,
	}, nil
}

type iterState uint8

const (
	stateReady iterState = iota
	stateExhausted
)

// ChunkResult is one step of a ChunkIter. Err is set when this chunk failed
// to decode; iteration continues with the next chunk regardless.
type ChunkResult[T any] struct {
	Header ChunkHeader
	Value  T
	Err    error
}

// ChunkIter walks the chunk sequence of a pack file.
type ChunkIter[T any] struct {
	input Input
	dec   ChunkDecoder[T]
	state iterState
}

// Wide reports the pointer mode of the underlying file.
func (it *ChunkIter[T]) Wide() bool { return it.input.Wide }

// Next decodes the next chunk. It returns false once fewer bytes than a
// chunk header remain, which is the normal end of a file and not an error.
func (it *ChunkIter[T]) Next() (ChunkResult[T], bool) {
	if it.state == stateExhausted || len(it.input.Remaining) < ChunkHeaderSize {
		it.state = stateExhausted
		return ChunkResult[T]{}, false
	}
	rem := it.input.Remaining
	h, _ := ParseChunkHeader(rem)
	res := ChunkResult[T]{Header: h}

	payload, ok := buf.Slice(rem, int(h.HeaderSize), int(h.DescriptorOffset))

	stride := int(h.NextChunkOffset) + chunkStrideBias
	if stride <= len(rem) {
		it.input.Remaining = rem[stride:]
	} else {
		it.input.Remaining = nil
		it.state = stateExhausted
	}

	if !ok {
		res.Err = fmt.Errorf("chunk %s: payload: %w", h.Magic,
			types.ShortRead("chunk payload", int(h.HeaderSize)+int(h.DescriptorOffset), len(rem)))
		return res, true
	}
	v, err := it.dec.Decode(h.Magic, h.Version, &Input{Remaining: payload, Wide: it.input.Wide})
	if err != nil {
		res.Err = fmt.Errorf("chunk %s v%d: %w", h.Magic, h.Version, err)
		return res, true
	}
	res.Value = v
	return res, true
}

// All adapts the iterator to a range-over-func sequence.
func (it *ChunkIter[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			res, ok := it.Next()
			if !ok || !yield(res.Value, res.Err) {
				return
			}
		}
	}
}

// RawChunk is an undecoded chunk payload.
type RawChunk struct {
	Magic   FourCC
	Version uint16
	Payload []byte
}

// RawChunks is a ChunkDecoder that returns payloads untouched.
type RawChunks struct{}

// Decode implements ChunkDecoder.
func (RawChunks) Decode(magic FourCC, version uint16, in *Input) (RawChunk, error) {
	return RawChunk{Magic: magic, Version: version, Payload: in.Remaining}, nil
}
