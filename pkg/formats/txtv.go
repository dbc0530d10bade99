package formats

import "github.com/joshuapare/pfkit/pkg/pf"

// TextPackVoices maps text ids to the voice lines that speak them.
type TextPackVoices struct {
	Mappings []TextPackVoice
}

// TextPackVoice is one text-to-voice mapping.
type TextPackVoice struct {
	TextID  uint32
	VoiceID uint32
}

var (
	textPackVoice = pf.Record("TextPackVoice", pf.Fixed(8), func(f *pf.Fields, v *TextPackVoice) {
		pf.Read(f, &v.TextID, pf.U32)
		pf.Read(f, &v.VoiceID, pf.U32)
	})

	textPackVoices = pf.Record("TextPackVoices", pf.Slice(textPackVoice).Size, func(f *pf.Fields, v *TextPackVoices) {
		pf.Read(f, &v.Mappings, pf.Slice(textPackVoice))
	})
)

// TXTV is the voice mapping chunk. Only version 0 is known.
type TXTV struct {
	Version uint16
	V0      *TextPackVoices
}

// Data returns the version 0 payload.
func (c TXTV) Data() *TextPackVoices { return c.V0 }

// TXTVFile is the voice mapping file.
var TXTVFile = pf.PackFile[TXTV]{
	Name:   "txtv",
	Format: FormatTXTV,
	Chunks: pf.Table[TXTV]{
		Name: "txtv",
		Entries: map[pf.ChunkKey]pf.VersionFunc[TXTV]{
			{Magic: pf.MustTagOf[TXTV](Tags), Version: 0}: pf.Version(textPackVoices,
				func(d TextPackVoices) TXTV { return TXTV{Version: 0, V0: &d} }),
		},
	},
}
