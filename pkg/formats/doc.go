// Package formats holds the record layouts of the known pack-file formats
// and the dispatch tables that decode them.
//
// Each format is exposed as a pf.PackFile value:
//
//	it, err := formats.ABIXFile.Open(data)
//	for chunk, err := range it.All() {
//		index := chunk.Data()
//		...
//	}
//
// Read and ReadStrict collect every chunk of a file at once.
//
// Decoded records alias the input buffer: byte arrays and strings are views
// into data, which must outlive them.
package formats
