package testutil

// Chunk is one chunk of a synthetic pack file.
type Chunk struct {
	Magic   string
	Version uint16
	Payload []byte
}

// PackFile assembles a "PF" container with a 12-byte header and 16-byte
// chunk headers. Each chunk's next-offset is set so that offset + 8 lands on
// the following chunk.
func PackFile(format string, wide bool, chunks ...Chunk) []byte {
	var w Buffer
	var flags uint16
	if wide {
		flags = 1 << 2
	}
	w.Raw('P', 'F').U16(flags).U16(0).U16(12).Raw(fourCC(format)...)
	for _, c := range chunks {
		w.Raw(fourCC(c.Magic)...)
		w.U32(uint32(16 + len(c.Payload) - 8))
		w.U16(c.Version)
		w.U16(16)
		w.U32(uint32(len(c.Payload)))
		w.Raw(c.Payload...)
	}
	return w.Data()
}

func fourCC(s string) []byte {
	b := make([]byte, 4)
	copy(b, s)
	return b
}
