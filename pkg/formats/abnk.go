package formats

import "github.com/joshuapare/pfkit/pkg/pf"

// BankFileData is a bank of sound files.
type BankFileData struct {
	Files []BankSound
}

// BankSound is one sound in a bank. AudioData is itself an ASND pack file.
type BankSound struct {
	VoiceID   uint32
	Flags     uint32
	Length    float32
	Offset    float32
	AudioData []byte
}

var (
	bankSound = pf.Record("BankSound",
		pf.Sizes(pf.Fixed(4*2), pf.Fixed(4*4), pf.Fixed(4*2), pf.Fixed(4), pf.Bytes.Size),
		func(f *pf.Fields, v *BankSound) {
			pf.Read(f, &v.VoiceID, pf.U32)
			pf.Read(f, &v.Flags, pf.U32)
			f.Skip(4 * 4)
			pf.Read(f, &v.Length, pf.F32)
			pf.Read(f, &v.Offset, pf.F32)
			f.Skip(4)
			pf.Read(f, &v.AudioData, pf.Bytes)
		})

	bankFileData = pf.Record("BankFileData",
		pf.Sizes(pf.Fixed(4*4), pf.Slice(bankSound).Size, pf.Fixed(4)),
		func(f *pf.Fields, v *BankFileData) {
			f.Skip(4 * 4)
			pf.Read(f, &v.Files, pf.Slice(bankSound))
			f.Skip(4)
		})
)

// BKCK is the bank chunk. Only version 2 is known.
type BKCK struct {
	Version uint16
	V2      *BankFileData
}

// Data returns the version 2 payload.
func (c BKCK) Data() *BankFileData { return c.V2 }

var bkckVersions = pf.Versioned[BKCK]{
	Name: "BKCK",
	Versions: map[uint16]pf.VersionFunc[BKCK]{
		2: pf.Version(bankFileData, func(d BankFileData) BKCK { return BKCK{Version: 2, V2: &d} }),
	},
}

// ABNKFile is the sound bank file.
var ABNKFile = pf.PackFile[BKCK]{
	Name:   "ABNK",
	Format: FormatABNK,
	Chunks: pf.Family[BKCK]{
		Name: "ABNK",
		Kinds: map[pf.FourCC]pf.KindFunc[BKCK]{
			pf.MustTagOf[BKCK](Tags): bkckVersions.Decode,
		},
	},
}
