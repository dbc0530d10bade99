package formats

import "github.com/joshuapare/pfkit/pkg/pf"

// WaveformData is one encoded sound. AudioData usually holds an MP3 stream.
type WaveformData struct {
	Length      float32
	Offset      float32
	CRC         uint32
	NumSamples  uint32
	LoopStart   uint32
	LoopEnd     uint32
	Flags       uint32
	Format      uint8
	NumChannels uint8
	AudioData   []byte
	OtherData   []byte
}

var waveformData = pf.Record("WaveformData",
	pf.Sizes(pf.Fixed(4*2), pf.Fixed(4*3), pf.Fixed(4*5), pf.Fixed(8), pf.Bytes.Size, pf.Bytes.Size),
	func(f *pf.Fields, v *WaveformData) {
		pf.Read(f, &v.Length, pf.F32)
		pf.Read(f, &v.Offset, pf.F32)
		f.Skip(4 * 3)
		pf.Read(f, &v.CRC, pf.U32)
		pf.Read(f, &v.NumSamples, pf.U32)
		pf.Read(f, &v.LoopStart, pf.U32)
		pf.Read(f, &v.LoopEnd, pf.U32)
		pf.Read(f, &v.Flags, pf.U32)
		pf.Read(f, &v.Format, pf.U8)
		f.Skip(3)
		pf.Read(f, &v.NumChannels, pf.U8)
		f.Skip(3)
		pf.Read(f, &v.AudioData, pf.Bytes)
		pf.Read(f, &v.OtherData, pf.Bytes)
	})

// ASND is the waveform chunk. Only version 2 is known.
type ASND struct {
	Version uint16
	V2      *WaveformData
}

// Data returns the version 2 payload.
func (c ASND) Data() *WaveformData { return c.V2 }

// ASNDFile is the sound file; the chunk and the container share the tag.
var ASNDFile = pf.PackFile[ASND]{
	Name:   "ASND",
	Format: FormatASND,
	Chunks: pf.Table[ASND]{
		Name: "ASND",
		Entries: map[pf.ChunkKey]pf.VersionFunc[ASND]{
			{Magic: pf.MustTagOf[ASND](Tags), Version: 2}: pf.Version(waveformData,
				func(d WaveformData) ASND { return ASND{Version: 2, V2: &d} }),
		},
	},
}
