package pf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pfkit/internal/testutil"
	"github.com/joshuapare/pfkit/pkg/types"
)

var (
	tagIndex = types.MakeFourCC("ABIX")
	tagData  = types.MakeFourCC("BIDX")
)

var indexChunks = Family[[]uint32]{
	Name: "ABIX",
	Kinds: map[FourCC]KindFunc[[]uint32]{
		tagData: Member(Versioned[[]uint32]{
			Name: "BIDX",
			Versions: map[uint16]VersionFunc[[]uint32]{
				0: Slice(U32).Decode,
			},
		}, func(v []uint32) []uint32 { return v }),
	},
}

var indexFile = PackFile[[]uint32]{Name: "ABIX", Format: tagIndex, Chunks: indexChunks}

func TestParseHeader(t *testing.T) {
	b := testutil.PackFile("ABIX", true)
	h, err := ParseHeader(b)
	require.NoError(t, err)
	require.Equal(t, Signature, h.Tag)
	require.True(t, h.Wide())
	require.Equal(t, uint16(HeaderSize), h.HeaderSize)
	require.Equal(t, "ABIX", h.Format.String())
}

func TestParseHeader_BadSignature(t *testing.T) {
	b := testutil.PackFile("ABIX", false)
	b[0] = 'X'
	_, err := ParseHeader(b)
	require.ErrorIs(t, err, types.ErrBadSignature)
}

func TestParseHeader_Short(t *testing.T) {
	_, err := ParseHeader([]byte("PF"))
	require.ErrorIs(t, err, types.ErrShortRead)
}

func TestOpen_WrongFormatTag(t *testing.T) {
	_, err := indexFile.Open(testutil.PackFile("ABNK", false))
	var e *types.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, types.ErrKindWrongFormatTag, e.Kind)
	require.Equal(t, tagIndex, e.Expected)
	require.Equal(t, types.MakeFourCC("ABNK"), e.Magic)
}

func TestChunkIter_SingleEmptyChunk(t *testing.T) {
	b := testutil.PackFile("ABIX", false, testutil.Chunk{Magic: "BIDX", Payload: make([]byte, 8)})
	it, err := indexFile.Open(b)
	require.NoError(t, err)

	res, ok := it.Next()
	require.True(t, ok)
	require.NoError(t, res.Err)
	require.Empty(t, res.Value)
	require.Equal(t, tagData, res.Header.Magic)
	require.Equal(t, uint32(8), res.Header.DescriptorOffset)

	_, ok = it.Next()
	require.False(t, ok)
	_, ok = it.Next()
	require.False(t, ok)
}

func TestChunkIter_WideValues(t *testing.T) {
	var elems testutil.Buffer
	elems.U32(10).U32(20)
	var w testutil.Buffer
	w.U32(2)
	p := w.Ptr(true)
	w.Patch(p, w.Len(), true)
	w.Raw(elems.Data()...)

	b := testutil.PackFile("ABIX", true, testutil.Chunk{Magic: "BIDX", Payload: w.Data()})
	it, err := indexFile.Open(b)
	require.NoError(t, err)
	require.True(t, it.Wide())

	var got [][]uint32
	for v, err := range it.All() {
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Equal(t, [][]uint32{{10, 20}}, got)
}

func TestChunkIter_ErrorsDoNotStopIteration(t *testing.T) {
	b := testutil.PackFile("ABIX", false,
		testutil.Chunk{Magic: "BIDX", Version: 9, Payload: make([]byte, 8)},
		testutil.Chunk{Magic: "ZZZZ", Payload: make([]byte, 8)},
		testutil.Chunk{Magic: "BIDX", Payload: make([]byte, 8)},
	)
	it, err := indexFile.Open(b)
	require.NoError(t, err)

	res, ok := it.Next()
	require.True(t, ok)
	require.ErrorIs(t, res.Err, types.ErrUnknownVersion)

	res, ok = it.Next()
	require.True(t, ok)
	require.ErrorIs(t, res.Err, types.ErrUnknownMagic)

	res, ok = it.Next()
	require.True(t, ok)
	require.NoError(t, res.Err)

	_, ok = it.Next()
	require.False(t, ok)
}

func TestChunkIter_TrailingBytesEndIteration(t *testing.T) {
	b := testutil.PackFile("ABIX", false, testutil.Chunk{Magic: "BIDX", Payload: make([]byte, 8)})
	b = append(b, make([]byte, ChunkHeaderSize-1)...)
	it, err := indexFile.Open(b)
	require.NoError(t, err)

	_, ok := it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.False(t, ok)
}

func TestChunkIter_StridePastEnd(t *testing.T) {
	b := testutil.PackFile("ABIX", false, testutil.Chunk{Magic: "BIDX", Payload: make([]byte, 8)})
	// next chunk offset of the only chunk
	b[HeaderSize+4] = 0xFF
	it, err := indexFile.Open(b)
	require.NoError(t, err)

	res, ok := it.Next()
	require.True(t, ok)
	require.NoError(t, res.Err)
	_, ok = it.Next()
	require.False(t, ok)
}

func TestChunkIter_PayloadPastEnd(t *testing.T) {
	b := testutil.PackFile("ABIX", false, testutil.Chunk{Magic: "BIDX", Payload: make([]byte, 8)})
	// descriptor offset of the only chunk
	b[HeaderSize+12] = 0x40
	it, err := indexFile.Open(b)
	require.NoError(t, err)

	res, ok := it.Next()
	require.True(t, ok)
	require.ErrorIs(t, res.Err, types.ErrShortRead)
}

func TestOpen_RawChunks(t *testing.T) {
	b := testutil.PackFile("ABNK", false,
		testutil.Chunk{Magic: "BKCK", Version: 2, Payload: []byte{1, 2, 3, 4}},
	)
	h, it, err := Open[RawChunk](b, RawChunks{})
	require.NoError(t, err)
	require.Equal(t, "ABNK", h.Format.String())

	res, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, uint16(2), res.Value.Version)
	require.Equal(t, []byte{1, 2, 3, 4}, res.Value.Payload)
}
