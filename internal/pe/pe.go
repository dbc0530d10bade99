// Package pe maps virtual addresses of a 64-bit Windows executable onto
// offsets in its raw file bytes. It reads only the fields needed for that:
// the image base and the section table.
package pe

import (
	"fmt"

	"github.com/joshuapare/pfkit/internal/buf"
	"github.com/joshuapare/pfkit/pkg/types"
)

// Header offsets, relative to the start of the file unless noted.
const (
	signaturePointerOffset = 0x3C

	// relative to the signature
	sectionCountOffset    = 6
	optionalHeaderSizeOff = 20
	optionalHeaderOffset  = 24

	// relative to the optional header
	imageBaseOffset = 24

	sectionHeaderSize  = 40
	sectionVirtualSize = 8
	sectionVirtualAddr = 12
	sectionFilePointer = 20
	sectionHeaderSpan  = sectionFilePointer + 4

	signatureLength = 4
)

var signature = [signatureLength]byte{'P', 'E', 0, 0}

// Section is one entry of the section table.
type Section struct {
	VirtualAddress uint32
	VirtualSize    uint32
	FilePointer    uint32
}

// Contains reports whether rva lies inside the section's virtual range.
func (s Section) Contains(rva uint64) bool {
	return rva >= uint64(s.VirtualAddress) && rva < uint64(s.VirtualAddress)+uint64(s.VirtualSize)
}

// Image is a parsed executable. Raw aliases the caller's bytes.
type Image struct {
	Raw      []byte
	Base     uint64
	Sections []Section
}

// Parse reads the image base and up to types.MaxImageSections sections.
func Parse(raw []byte) (*Image, error) {
	sigOff, ok := buf.U32At(raw, signaturePointerOffset)
	if !ok {
		return nil, fmt.Errorf("pe: %w", types.ShortRead("pe header", signaturePointerOffset+4, len(raw)))
	}
	sig, ok := buf.Slice(raw, int(sigOff), signatureLength)
	if !ok || [signatureLength]byte(sig) != signature {
		return nil, &types.Error{
			Kind: types.ErrKindBadSignature,
			Type: "pe header",
			Msg:  fmt.Sprintf("no PE signature at %#x", sigOff),
		}
	}
	base := int(sigOff)

	count, ok1 := buf.U16At(raw, base+sectionCountOffset)
	optSize, ok2 := buf.U16At(raw, base+optionalHeaderSizeOff)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("pe: %w", types.ShortRead("coff header", base+optionalHeaderOffset, len(raw)))
	}
	opt := base + optionalHeaderOffset
	imageBase, ok := buf.U64At(raw, opt+imageBaseOffset)
	if !ok {
		return nil, fmt.Errorf("pe: %w", types.ShortRead("optional header", opt+imageBaseOffset+8, len(raw)))
	}

	n := min(int(count), types.MaxImageSections)
	img := &Image{Raw: raw, Base: imageBase, Sections: make([]Section, 0, n)}
	table := opt + int(optSize)
	for i := range n {
		hdr, ok := buf.Slice(raw, table+i*sectionHeaderSize, sectionHeaderSpan)
		if !ok {
			return nil, fmt.Errorf("pe: section %d: %w", i,
				types.ShortRead("section header", table+i*sectionHeaderSize+sectionHeaderSpan, len(raw)))
		}
		img.Sections = append(img.Sections, Section{
			VirtualSize:    buf.U32LE(hdr[sectionVirtualSize:]),
			VirtualAddress: buf.U32LE(hdr[sectionVirtualAddr:]),
			FilePointer:    buf.U32LE(hdr[sectionFilePointer:]),
		})
	}
	return img, nil
}

// Translate maps a relative virtual address to a file offset using the
// first section that contains it.
func (img *Image) Translate(rva uint64) (uint64, error) {
	for _, s := range img.Sections {
		if s.Contains(rva) {
			return rva - uint64(s.VirtualAddress) + uint64(s.FilePointer), nil
		}
	}
	return 0, &types.Error{Kind: types.ErrKindNoSectionFound, Offset: rva}
}

// ToRVA subtracts the image base from an absolute virtual address. Zero is
// the null pointer and is returned unchanged.
func (img *Image) ToRVA(addr uint64) (uint64, error) {
	if addr == 0 {
		return 0, nil
	}
	if addr < img.Base {
		return 0, &types.Error{Kind: types.ErrKindRvaOutOfBounds, Offset: addr}
	}
	return addr - img.Base, nil
}

// AddressToOffset maps an absolute virtual address to a file offset. Zero
// maps to zero.
func (img *Image) AddressToOffset(addr uint64) (uint64, error) {
	rva, err := img.ToRVA(addr)
	if err != nil || rva == 0 {
		return 0, err
	}
	return img.Translate(rva)
}

// View returns the raw bytes from off to the end of the file.
func (img *Image) View(off uint64) ([]byte, error) {
	if off > uint64(len(img.Raw)) {
		return nil, types.OffsetOutOfBounds(off)
	}
	return img.Raw[off:], nil
}

// CString returns the NUL-terminated byte string at off, without the
// terminator.
func (img *Image) CString(off uint64) ([]byte, error) {
	b, err := img.View(off)
	if err != nil {
		return nil, err
	}
	end := buf.IndexZero(b)
	if end < 0 {
		return nil, &types.Error{Kind: types.ErrKindTextTerminatorNotFound, Type: "cstring", Offset: off}
	}
	return b[:end:end], nil
}

// CStringAt resolves addr and reads the string there.
func (img *Image) CStringAt(addr uint64) ([]byte, error) {
	off, err := img.AddressToOffset(addr)
	if err != nil {
		return nil, err
	}
	return img.CString(off)
}
