package formats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pfkit/internal/testutil"
	"github.com/joshuapare/pfkit/pkg/pf"
	"github.com/joshuapare/pfkit/pkg/types"
)

func bankIndexPayload(wide bool) []byte {
	var w testutil.Buffer
	w.U32(1)
	langs := w.Ptr(wide)
	w.Patch(langs, w.Len(), wide)

	w.U32(2)
	names := w.Ptr(wide)
	w.Patch(names, w.Len(), wide)

	first := w.Ptr(wide)
	w.Ptr(wide) // null slot
	w.Patch(first, w.Len(), wide)
	w.U16(0x6A01).U16(0x0102).U16(0)
	return w.Data()
}

func TestABIX(t *testing.T) {
	for _, wide := range []bool{false, true} {
		b := testutil.PackFile("ABIX", wide, testutil.Chunk{Magic: "BIDX", Payload: bankIndexPayload(wide)})
		chunks, err := ReadStrict(ABIXFile, b)
		require.NoError(t, err)
		require.Len(t, chunks, 1)

		idx := chunks[0].Data()
		require.NotNil(t, idx)
		require.Len(t, idx.BankLanguage, 1)
		names := idx.BankLanguage[0].BankFileName
		require.Len(t, names, 2)
		require.NotNil(t, names[0].FileName)
		require.Equal(t, uint32(157442), names[0].FileName.ID())
		require.Nil(t, names[1].FileName)
	}
}

func TestABIX_WrongFormat(t *testing.T) {
	_, err := ReadStrict(ABIXFile, testutil.PackFile("ABNK", false))
	require.ErrorIs(t, err, types.ErrWrongFormatTag)
}

func TestABIX_UnknownVersion(t *testing.T) {
	b := testutil.PackFile("ABIX", false,
		testutil.Chunk{Magic: "BIDX", Version: 1, Payload: make([]byte, 8)},
	)
	_, err := ReadStrict(ABIXFile, b)
	require.ErrorIs(t, err, types.ErrUnknownVersion)

	f, err := Read(ABIXFile, b)
	require.NoError(t, err)
	require.Empty(t, f.Chunks)
	require.Len(t, f.Skipped, 1)
}

func waveformPayload(audio []byte) []byte {
	var w testutil.Buffer
	w.U32(math.Float32bits(2.5)).U32(0)
	w.Pad(12)
	w.U32(0xDEADBEEF).U32(44100).U32(10).U32(20).U32(1)
	w.U8(3).Pad(3).U8(2).Pad(3)
	w.U32(uint32(len(audio)))
	ap := w.Ptr(false)
	w.U32(0).Ptr(false)
	w.Patch(ap, w.Len(), false)
	w.Raw(audio...)
	return w.Data()
}

func bankPayload(voiceID uint32, sound []byte) []byte {
	var w testutil.Buffer
	w.Pad(16)
	w.U32(1)
	files := w.Ptr(false)
	w.U32(0)
	w.Patch(files, w.Len(), false)

	w.U32(voiceID).U32(1).Pad(16)
	w.U32(math.Float32bits(2.5)).U32(0).Pad(4)
	w.U32(uint32(len(sound)))
	data := w.Ptr(false)
	w.Patch(data, w.Len(), false)
	w.Raw(sound...)
	return w.Data()
}

func TestABNK_NestedASND(t *testing.T) {
	mp3 := []byte{0xFF, 0xFB, 0x90, 0x00}
	inner := testutil.PackFile("ASND", false, testutil.Chunk{Magic: "ASND", Version: 2, Payload: waveformPayload(mp3)})
	outer := testutil.PackFile("ABNK", false, testutil.Chunk{Magic: "BKCK", Version: 2, Payload: bankPayload(404553, inner)})

	bank, err := Read(ABNKFile, outer)
	require.NoError(t, err)
	require.Empty(t, bank.Skipped)
	require.Len(t, bank.Chunks, 1)

	files := bank.Chunks[0].Data().Files
	require.Len(t, files, 1)
	require.Equal(t, uint32(404553), files[0].VoiceID)
	require.Equal(t, uint32(1), files[0].Flags)
	require.InDelta(t, 2.5, files[0].Length, 0)
	require.Equal(t, inner, files[0].AudioData)

	sound, err := Read(ASNDFile, files[0].AudioData)
	require.NoError(t, err)
	require.Len(t, sound.Chunks, 1)
	wave := sound.Chunks[0].Data()
	require.Equal(t, uint32(0xDEADBEEF), wave.CRC)
	require.Equal(t, uint32(44100), wave.NumSamples)
	require.Equal(t, uint32(10), wave.LoopStart)
	require.Equal(t, uint32(20), wave.LoopEnd)
	require.Equal(t, uint8(3), wave.Format)
	require.Equal(t, uint8(2), wave.NumChannels)
	require.Equal(t, mp3, wave.AudioData)
	require.Empty(t, wave.OtherData)
}

func TestABNK_SkipsBadChunks(t *testing.T) {
	b := testutil.PackFile("ABNK", false,
		testutil.Chunk{Magic: "BKCK", Version: 1, Payload: make([]byte, 28)},
		testutil.Chunk{Magic: "BKCK", Version: 2, Payload: make([]byte, 28)},
	)
	bank, err := Read(ABNKFile, b)
	require.NoError(t, err)
	require.Len(t, bank.Chunks, 1)
	require.Empty(t, bank.Chunks[0].Data().Files)
	require.Len(t, bank.Skipped, 1)
	require.ErrorIs(t, bank.Skipped[0], types.ErrUnknownVersion)
}

func TestASND_UnknownPair(t *testing.T) {
	b := testutil.PackFile("ASND", false, testutil.Chunk{Magic: "ASND", Version: 3, Payload: make([]byte, 8)})
	_, err := ReadStrict(ASNDFile, b)
	require.ErrorIs(t, err, types.ErrUnknownMagicOrVersion)
}

func TestTXTV(t *testing.T) {
	var w testutil.Buffer
	w.U32(2)
	p := w.Ptr(true)
	w.Patch(p, w.Len(), true)
	w.U32(100).U32(200).U32(101).U32(201)

	b := testutil.PackFile("txtv", true, testutil.Chunk{Magic: "txtv", Payload: w.Data()})
	chunks, err := ReadStrict(TXTVFile, b)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, []TextPackVoice{{TextID: 100, VoiceID: 200}, {TextID: 101, VoiceID: 201}},
		chunks[0].Data().Mappings)
}

func TestTags(t *testing.T) {
	require.Equal(t, 4, Tags.Len())
	for tag, got := range map[string]pf.FourCC{
		"BIDX": pf.MustTagOf[BIDX](Tags),
		"BKCK": pf.MustTagOf[BKCK](Tags),
		"ASND": pf.MustTagOf[ASND](Tags),
		"txtv": pf.MustTagOf[TXTV](Tags),
	} {
		require.Equal(t, tag, got.String())
	}
}
