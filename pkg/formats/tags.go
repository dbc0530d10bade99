package formats

import (
	"github.com/joshuapare/pfkit/pkg/pf"
	"github.com/joshuapare/pfkit/pkg/types"
)

// Container format tags.
var (
	FormatABIX = types.MakeFourCC("ABIX")
	FormatABNK = types.MakeFourCC("ABNK")
	FormatASND = types.MakeFourCC("ASND")
	FormatTXTV = types.MakeFourCC("txtv")
)

// Tags maps each chunk type to its on-disk magic.
var Tags = newTags()

func newTags() *pf.TagRegistry {
	r := pf.NewTagRegistry()
	mustRegister[BIDX](r, "BIDX")
	mustRegister[BKCK](r, "BKCK")
	mustRegister[ASND](r, "ASND")
	mustRegister[TXTV](r, "txtv")
	return r
}

func mustRegister[T any](r *pf.TagRegistry, tag string) {
	if err := pf.RegisterTag[T](r, types.MakeFourCC(tag)); err != nil {
		panic(err)
	}
}
