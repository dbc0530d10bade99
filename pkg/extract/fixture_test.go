package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pfkit/internal/pe"
	"github.com/joshuapare/pfkit/internal/testutil"
)

// fixture lays out reflection tables inside one data section of a
// synthetic image. Addresses returned by its helpers are absolute virtual
// addresses, as stored in the tables.
type fixture struct {
	im  *testutil.Image
	sec *testutil.Section
	w   testutil.Buffer
}

type fieldSpec struct {
	tag   FieldTag
	name  string
	inner uint64
	size  uint64
}

func newFixture() *fixture {
	sec := &testutil.Section{Name: ".rdata", VirtualAddress: 0x2000}
	return &fixture{
		im:  &testutil.Image{Base: 0x140000000, Sections: []*testutil.Section{sec}},
		sec: sec,
	}
}

func (f *fixture) va(off int) uint64 { return f.im.VA(f.sec, off) }

// str stores a name prefixed by a byte that can never start a descriptor
// candidate.
func (f *fixture) str(s string) uint64 {
	f.w.Align(8)
	f.w.U8('.')
	off := f.w.Len()
	f.w.CString(s)
	return f.va(off)
}

// fields writes a field list terminated by an End entry carrying name.
func (f *fixture) fields(name string, specs ...fieldSpec) uint64 {
	specs = append(specs, fieldSpec{tag: TagEnd, name: name})
	names := make([]uint64, len(specs))
	for i, s := range specs {
		if s.name != "" {
			names[i] = f.str(s.name)
		}
	}
	f.w.Align(8)
	off := f.w.Len()
	for i, s := range specs {
		f.w.U16(uint16(s.tag)).U16(0).U32(0).U64(names[i]).U64(s.inner).U64(s.size)
	}
	return f.va(off)
}

// builtin writes a field list that only names a built-in type.
func (f *fixture) builtin(name string) uint64 { return f.fields(name) }

// table writes a list of addresses.
func (f *fixture) table(addrs ...uint64) uint64 {
	f.w.Align(8)
	off := f.w.Len()
	for _, a := range addrs {
		f.w.U64(a)
	}
	return f.va(off)
}

// meta writes version entries whose root pointers are roots.
func (f *fixture) meta(roots ...uint64) uint64 {
	f.w.Align(8)
	off := f.w.Len()
	for _, r := range roots {
		f.w.U64(r).Pad(16)
	}
	return f.va(off)
}

// descriptor writes a descriptor record and returns its section offset.
func (f *fixture) descriptor(tag string, count uint32, meta uint64) int {
	f.w.Align(8)
	off := f.w.Len()
	b := make([]byte, 4)
	copy(b, tag)
	f.w.Raw(b...).U32(count).U64(meta)
	return off
}

func (f *fixture) build(t *testing.T) *pe.Image {
	t.Helper()
	f.w.Align(8)
	f.sec.Data = f.w.Data()
	img, err := pe.Parse(f.im.Build())
	require.NoError(t, err)
	return img
}

// fileOffset converts a section offset from descriptor into a file offset.
func (f *fixture) fileOffset(off int) int { return int(f.sec.FilePointer) + off }

// patchInner points the inner pointer of entry i of the field list at list
// to target.
func (f *fixture) patchInner(list uint64, i int, target uint64) {
	off := int(list-f.va(0)) + i*DefaultLayout.FieldSize + fieldInnerOffset
	f.w.PutU64(off, target)
}
