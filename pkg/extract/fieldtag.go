package extract

import (
	"fmt"

	"github.com/joshuapare/pfkit/pkg/schema"
	"github.com/joshuapare/pfkit/pkg/types"
)

// FieldTag is the type code stored in the first two bytes of a field
// descriptor.
type FieldTag uint16

const (
	TagEnd          FieldTag = 0
	TagFixedArray   FieldTag = 1
	TagArray        FieldTag = 2
	TagPtrArray     FieldTag = 3
	TagByte         FieldTag = 5
	TagByte4        FieldTag = 6
	TagDouble       FieldTag = 7
	TagDWord        FieldTag = 10
	TagFileName     FieldTag = 11
	TagFloat        FieldTag = 12
	TagFloat2       FieldTag = 13
	TagFloat3       FieldTag = 14
	TagFloat4       FieldTag = 15
	TagReference    FieldTag = 16
	TagQWord        FieldTag = 17
	TagWideCString  FieldTag = 18
	TagCString      FieldTag = 19
	TagInline       FieldTag = 20
	TagWord         FieldTag = 21
	TagUUID         FieldTag = 22
	TagByte3        FieldTag = 23
	TagDWord2       FieldTag = 24
	TagDWord4       FieldTag = 25
	TagWord3        FieldTag = 26
	TagFileRef      FieldTag = 27
	TagVariant      FieldTag = 28
	TagStructCommon FieldTag = 29
	TagSmallArray   FieldTag = 33
)

var fieldTagNames = map[FieldTag]string{
	TagEnd:          "End",
	TagFixedArray:   "FixedArray",
	TagArray:        "Array",
	TagPtrArray:     "PtrArray",
	TagByte:         "Byte",
	TagByte4:        "Byte4",
	TagDouble:       "Double",
	TagDWord:        "DWord",
	TagFileName:     "FileName",
	TagFloat:        "Float",
	TagFloat2:       "Float2",
	TagFloat3:       "Float3",
	TagFloat4:       "Float4",
	TagReference:    "Reference",
	TagQWord:        "QWord",
	TagWideCString:  "WideCString",
	TagCString:      "CString",
	TagInline:       "Inline",
	TagWord:         "Word",
	TagUUID:         "UUID",
	TagByte3:        "Byte3",
	TagDWord2:       "DWord2",
	TagDWord4:       "DWord4",
	TagWord3:        "Word3",
	TagFileRef:      "FileRef",
	TagVariant:      "Variant",
	TagStructCommon: "StructCommon",
	TagSmallArray:   "SmallArray",
}

func (t FieldTag) String() string {
	if s, ok := fieldTagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("FieldTag(%d)", uint16(t))
}

// Valid reports whether t is a known tag.
func (t FieldTag) Valid() bool {
	_, ok := fieldTagNames[t]
	return ok
}

func invalidFieldType(code uint16) error {
	return &types.Error{Kind: types.ErrKindInvalidFieldType, Code: code}
}

// leafField maps the tags that need no further descriptor data.
func leafField(t FieldTag) (*schema.Type, bool) {
	u8 := func() *schema.Type { return schema.Scalar(schema.KindU8) }
	u16 := func() *schema.Type { return schema.Scalar(schema.KindU16) }
	u32 := func() *schema.Type { return schema.Scalar(schema.KindU32) }
	f32 := func() *schema.Type { return schema.Scalar(schema.KindF32) }

	switch t {
	case TagByte:
		return u8(), true
	case TagWord:
		return u16(), true
	case TagDWord:
		return u32(), true
	case TagQWord:
		return schema.Scalar(schema.KindU64), true
	case TagFloat:
		return f32(), true
	case TagDouble:
		return schema.Scalar(schema.KindF64), true
	case TagFileName:
		return schema.Scalar(schema.KindFileName), true
	case TagFileRef:
		return schema.Scalar(schema.KindFileRef), true
	case TagUUID:
		return schema.Scalar(schema.KindUUID), true
	case TagByte3:
		return schema.InlineArray(u8(), 3), true
	case TagByte4:
		return schema.InlineArray(u8(), 4), true
	case TagWord3:
		return schema.InlineArray(u16(), 3), true
	case TagDWord2:
		return schema.InlineArray(u32(), 2), true
	case TagDWord4:
		return schema.InlineArray(u32(), 4), true
	case TagFloat2:
		return schema.InlineArray(f32(), 2), true
	case TagFloat3:
		return schema.InlineArray(f32(), 3), true
	case TagFloat4:
		return schema.InlineArray(f32(), 4), true
	case TagCString:
		return schema.Text(false), true
	case TagWideCString:
		return schema.Text(true), true
	}
	return nil, false
}

func arrayKind(t FieldTag) (schema.ArrayKind, bool) {
	switch t {
	case TagFixedArray:
		return schema.ArrayFixed, true
	case TagArray:
		return schema.ArrayDynamic, true
	case TagSmallArray:
		return schema.ArrayDynamicSmall, true
	case TagPtrArray:
		return schema.ArrayPointers, true
	}
	return 0, false
}

func refKind(t FieldTag) (schema.RefKind, bool) {
	switch t {
	case TagReference:
		return schema.RefOptional, true
	case TagInline:
		return schema.RefInline, true
	case TagStructCommon:
		return schema.RefStructCommon, true
	}
	return 0, false
}

// builtinType maps the names of built-in terminal types. A field list whose
// terminator carries one of these names describes that type rather than a
// composite.
func builtinType(name string) (*schema.Type, bool) {
	switch name {
	case "byte":
		return leafField(TagByte)
	case "word":
		return leafField(TagWord)
	case "dword":
		return leafField(TagDWord)
	case "qword":
		return leafField(TagQWord)
	case "float":
		return leafField(TagFloat)
	case "double":
		return leafField(TagDouble)
	case "byte3":
		return leafField(TagByte3)
	case "byte4":
		return leafField(TagByte4)
	case "word3":
		return leafField(TagWord3)
	case "dword4":
		return leafField(TagDWord4)
	case "float2":
		return leafField(TagFloat2)
	case "float3":
		return leafField(TagFloat3)
	case "float4":
		return leafField(TagFloat4)
	case "filename":
		return leafField(TagFileName)
	case "fileref":
		return leafField(TagFileRef)
	case "token":
		return schema.Scalar(schema.KindToken), true
	case "char *":
		return leafField(TagCString)
	case "wchar *":
		return leafField(TagWideCString)
	}
	return nil, false
}
