package pf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pfkit/internal/testutil"
	"github.com/joshuapare/pfkit/pkg/types"
)

func TestWString(t *testing.T) {
	var w testutil.Buffer
	w.WString("voice_01").U8(0x7F)
	in := NewInput(w.Data(), false)
	s, err := WStringCodec.Decode(in)
	require.NoError(t, err)
	require.Equal(t, "voice_01", s.String())
	require.Equal(t, 8, s.Len())
	require.Equal(t, []byte{0x7F}, in.Remaining)
}

func TestWString_NoTerminator(t *testing.T) {
	_, err := Decode(WStringCodec, []byte{'a', 0, 'b', 0, 'c'}, false)
	require.ErrorIs(t, err, types.ErrTextTerminatorNotFound)
}

func TestWString_Empty(t *testing.T) {
	s, err := Decode(WStringCodec, []byte{0, 0}, false)
	require.NoError(t, err)
	require.Zero(t, s.Len())
	require.Equal(t, "", s.String())
}

func TestWString_NonBMP(t *testing.T) {
	var w testutil.Buffer
	w.WString("\U0001F600")
	s, err := Decode(WStringCodec, w.Data(), false)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	require.Equal(t, "\U0001F600", s.String())
}

func TestCString_Windows1252(t *testing.T) {
	in := NewInput([]byte{'a', 0x80, 0, 'z'}, false)
	s, err := CStringCodec.Decode(in)
	require.NoError(t, err)
	require.Equal(t, "a€", s.String())
	require.Equal(t, []byte{'z'}, in.Remaining)
}

func TestCString_NoTerminator(t *testing.T) {
	_, err := Decode(CStringCodec, []byte("abc"), false)
	require.ErrorIs(t, err, types.ErrTextTerminatorNotFound)
}

func TestFileName_ID(t *testing.T) {
	var w testutil.Buffer
	w.U16(0x6A01).U16(0x0102).U16(0)
	n, err := Decode(FileNameCodec, w.Data(), false)
	require.NoError(t, err)
	require.Equal(t, []uint16{0x6A01, 0x0102}, n.Units())
	require.Equal(t, uint32(157442), n.ID())
}

func TestFileName_ShortID(t *testing.T) {
	n, err := Decode(FileNameCodec, []byte{1, 0, 0, 0}, false)
	require.NoError(t, err)
	require.Zero(t, n.ID())
}
