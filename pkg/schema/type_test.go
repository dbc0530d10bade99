package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBorrows(t *testing.T) {
	u8 := Scalar(KindU8)
	u32 := Scalar(KindU32)

	tests := []struct {
		name string
		typ  *Type
		want bool
	}{
		{"scalar", u32, false},
		{"filename", Scalar(KindFileName), false},
		{"cstring", Text(false), true},
		{"wstring", Text(true), true},
		{"dynamic byte array", Array(ArrayDynamic, u8, 0), true},
		{"small byte array", Array(ArrayDynamicSmall, u8, 0), true},
		{"fixed byte array", Array(ArrayFixed, u8, 16), false},
		{"inline byte vector", InlineArray(u8, 4), false},
		{"dynamic word array", Array(ArrayDynamic, u32, 0), false},
		{"array of text", Array(ArrayPointers, Text(true), 0), true},
		{"reference to text", Reference(RefOptional, Text(false)), true},
		{"plain composite", Composite("Plain", []Field{{"a", u32}, {"b", InlineArray(Scalar(KindF32), 3)}}), false},
		{"variant without text", Variant(u32, Composite("X", nil)), false},
		{"variant with text", Variant(u32, Text(false)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.typ.Borrows())
		})
	}
}

func TestBorrows_Transitive(t *testing.T) {
	leaf := Composite("Leaf", []Field{{"data", Array(ArrayDynamic, Scalar(KindU8), 0)}})
	mid := Composite("Mid", []Field{{"leaf", Reference(RefInline, leaf)}})
	top := Composite("Top", []Field{{"id", Scalar(KindU32)}, {"items", Array(ArrayDynamic, mid, 0)}})
	require.True(t, top.Borrows())

	c := NewChunk("ABC", []Version{{Number: 0, Root: Scalar(KindU32)}, {Number: 1, Root: top}})
	require.True(t, c.Borrows)

	c = NewChunk("ABC", []Version{{Number: 0, Root: Scalar(KindU32)}})
	require.False(t, c.Borrows)
}

func TestScalar_RejectsNonScalar(t *testing.T) {
	require.Panics(t, func() { Scalar(KindComposite) })
}

func TestTypeString(t *testing.T) {
	foo := Composite("Foo", nil)
	require.Equal(t, "u32", Scalar(KindU32).String())
	require.Equal(t, "[3]f32", InlineArray(Scalar(KindF32), 3).String())
	require.Equal(t, "[]*Foo", Array(ArrayDynamic, Reference(RefOptional, foo), 0).String())
	require.Equal(t, "[]*wstring", Array(ArrayPointers, Text(true), 0).String())
	require.Equal(t, "variant<Foo | u8>", Variant(foo, Scalar(KindU8)).String())
	require.Equal(t, "common Foo", Reference(RefStructCommon, foo).String())
}

func TestLatest(t *testing.T) {
	_, ok := Chunk{}.Latest()
	require.False(t, ok)

	c := NewChunk("ABC", []Version{{Number: 3}, {Number: 7}, {Number: 5}})
	v, ok := c.Latest()
	require.True(t, ok)
	require.Equal(t, uint32(7), v.Number)
}
