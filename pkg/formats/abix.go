package formats

import "github.com/joshuapare/pfkit/pkg/pf"

// BankIndexData lists, per language, the file names of the sound banks.
type BankIndexData struct {
	BankLanguage []BankLanguageData
}

// BankLanguageData is the bank list of one language.
type BankLanguageData struct {
	BankFileName []BankFileNameData
}

// BankFileNameData names one bank file. FileName is nil for unused slots.
type BankFileNameData struct {
	FileName *pf.FileName
}

var (
	bankFileNameData = pf.Record("BankFileNameData", pf.Ref(pf.FileNameCodec).Size,
		func(f *pf.Fields, v *BankFileNameData) {
			pf.Read(f, &v.FileName, pf.Ref(pf.FileNameCodec))
		})

	bankLanguageData = pf.Record("BankLanguageData", pf.Slice(bankFileNameData).Size,
		func(f *pf.Fields, v *BankLanguageData) {
			pf.Read(f, &v.BankFileName, pf.Slice(bankFileNameData))
		})

	bankIndexData = pf.Record("BankIndexData", pf.Slice(bankLanguageData).Size,
		func(f *pf.Fields, v *BankIndexData) {
			pf.Read(f, &v.BankLanguage, pf.Slice(bankLanguageData))
		})
)

// BIDX is the bank index chunk. Only version 0 is known.
type BIDX struct {
	Version uint16
	V0      *BankIndexData
}

// Data returns the version 0 payload.
func (c BIDX) Data() *BankIndexData { return c.V0 }

var bidxVersions = pf.Versioned[BIDX]{
	Name: "BIDX",
	Versions: map[uint16]pf.VersionFunc[BIDX]{
		0: pf.Version(bankIndexData, func(d BankIndexData) BIDX { return BIDX{Version: 0, V0: &d} }),
	},
}

// ABIXFile is the bank index file.
var ABIXFile = pf.PackFile[BIDX]{
	Name:   "ABIX",
	Format: FormatABIX,
	Chunks: pf.Family[BIDX]{
		Name: "ABIX",
		Kinds: map[pf.FourCC]pf.KindFunc[BIDX]{
			pf.MustTagOf[BIDX](Tags): bidxVersions.Decode,
		},
	},
}
