package pf

import (
	"fmt"

	"github.com/joshuapare/pfkit/internal/buf"
	"github.com/joshuapare/pfkit/pkg/types"
)

// FourCC re-exports the shared four-character code type.
type FourCC = types.FourCC

// Container header layout (little-endian):
//
//	Offset  Size  Field
//	0x00    2     'P' 'F'
//	0x02    2     Flags (bit 2: 64-bit pointers)
//	0x04    2     Reserved
//	0x06    2     Header size (offset of the first chunk)
//	0x08    4     Format tag, e.g. "ABIX"
//
// Chunk header layout:
//
//	Offset  Size  Field
//	0x00    4     Magic, e.g. "BIDX"
//	0x04    4     Next chunk offset (the stride is this value + 8)
//	0x08    2     Version
//	0x0A    2     Chunk header size (offset of the payload)
//	0x0C    4     Descriptor offset (payload length)
const (
	HeaderSize      = 12
	ChunkHeaderSize = 16

	headerFlagsOffset  = 0x02
	headerSizeOffset   = 0x06
	headerFormatOffset = 0x08

	chunkNextOffset       = 0x04
	chunkVersionOffset    = 0x08
	chunkHeaderSizeOffset = 0x0A
	chunkDescriptorOffset = 0x0C

	// FlagWidePointers marks files whose pointer fields are 64 bits wide.
	FlagWidePointers uint16 = 1 << 2

	// chunkStrideBias is added to NextChunkOffset to reach the following
	// chunk header. Observed in every sample; not explained by a field.
	chunkStrideBias = 8
)

// Signature is the container tag "PF" read as a little-endian uint16.
const Signature uint16 = 'P' | 'F'<<8

// Header is the decoded container header.
type Header struct {
	Tag        uint16
	Flags      uint16
	HeaderSize uint16
	Format     FourCC
}

// Wide reports whether the file uses 64-bit pointers.
func (h Header) Wide() bool { return h.Flags&FlagWidePointers != 0 }

// ParseHeader validates the container tag and extracts the header fields.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("pf header: %w", types.ShortRead("pf header", HeaderSize, len(b)))
	}
	h := Header{
		Tag:        buf.U16LE(b),
		Flags:      buf.U16LE(b[headerFlagsOffset:]),
		HeaderSize: buf.U16LE(b[headerSizeOffset:]),
		Format:     FourCC(buf.U32LE(b[headerFormatOffset:])),
	}
	if h.Tag != Signature {
		return Header{}, &types.Error{
			Kind: types.ErrKindBadSignature,
			Type: "pf header",
			Msg:  fmt.Sprintf("tag %#04x", h.Tag),
		}
	}
	return h, nil
}

// ChunkHeader is the decoded header preceding each chunk payload.
type ChunkHeader struct {
	Magic            FourCC
	NextChunkOffset  uint32
	Version          uint16
	HeaderSize       uint16
	DescriptorOffset uint32
}

// ParseChunkHeader decodes a chunk header from the front of b.
func ParseChunkHeader(b []byte) (ChunkHeader, error) {
	if len(b) < ChunkHeaderSize {
		return ChunkHeader{}, types.ShortRead("chunk header", ChunkHeaderSize, len(b))
	}
	return ChunkHeader{
		Magic:            FourCC(buf.U32LE(b)),
		NextChunkOffset:  buf.U32LE(b[chunkNextOffset:]),
		Version:          buf.U16LE(b[chunkVersionOffset:]),
		HeaderSize:       buf.U16LE(b[chunkHeaderSizeOffset:]),
		DescriptorOffset: buf.U32LE(b[chunkDescriptorOffset:]),
	}, nil
}
