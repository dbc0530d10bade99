package testutil

// Executable image layout produced by Image.Build:
//
//	0x000  legacy header, pointer to the signature at 0x3C
//	0x040  "PE\0\0"
//	0x044  COFF header (20 bytes)
//	0x058  optional header (0xF0 bytes, image base at +24)
//	0x148  section table (40 bytes per section)
//	0x400  section data, each section padded to 0x200 (later when the
//	       section table does not fit)
const (
	imageSignatureOffset = 0x40
	imageOptionalSize    = 0xF0
	imageFirstData       = 0x400
	imageFileAlign       = 0x200
)

// Section is one section of a synthetic image. FilePointer is assigned by
// Build.
type Section struct {
	Name           string
	VirtualAddress uint32
	VirtualSize    uint32 // defaults to len(Data)
	Data           []byte
	FilePointer    uint32
}

// Image is a minimal 64-bit executable image.
type Image struct {
	Base     uint64
	Sections []*Section
}

// Build lays the image out and fills in each section's FilePointer.
func (im *Image) Build() []byte {
	var w Buffer
	w.Raw('M', 'Z').Pad(0x3A).U32(imageSignatureOffset)
	w.Raw('P', 'E', 0, 0)

	// COFF header
	w.U16(0x8664).U16(uint16(len(im.Sections))).U32(0).U32(0).U32(0)
	w.U16(imageOptionalSize).U16(0x22)

	// optional header
	opt := w.Len()
	w.U16(0x20b).Pad(22).U64(im.Base)
	w.Pad(imageOptionalSize - (w.Len() - opt))

	headerEnd := uint32(w.Len() + len(im.Sections)*40)
	first := max(uint32(imageFirstData), alignUp(headerEnd, imageFileAlign))
	fp := first
	for _, s := range im.Sections {
		s.FilePointer = fp
		fp += alignUp(uint32(len(s.Data)), imageFileAlign)
	}
	for _, s := range im.Sections {
		name := make([]byte, 8)
		copy(name, s.Name)
		vsize := s.VirtualSize
		if vsize == 0 {
			vsize = uint32(len(s.Data))
		}
		w.Raw(name...).U32(vsize).U32(s.VirtualAddress)
		w.U32(alignUp(uint32(len(s.Data)), imageFileAlign)).U32(s.FilePointer)
		w.Pad(16)
	}
	w.Pad(int(first) - w.Len())
	for _, s := range im.Sections {
		w.Raw(s.Data...)
		w.Align(imageFileAlign)
	}
	return w.Data()
}

// VA returns the virtual address of byte off within s.
func (im *Image) VA(s *Section, off int) uint64 {
	return im.Base + uint64(s.VirtualAddress) + uint64(off)
}

func alignUp(v, n uint32) uint32 {
	return (v + n - 1) / n * n
}
