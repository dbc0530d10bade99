package schema

import "fmt"

// Kind tags the variant of a Type.
type Kind uint8

const (
	KindU8 Kind = iota + 1
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindUUID
	KindToken
	KindFileName
	KindFileRef
	KindCString
	KindWideCString
	KindReference
	KindArray
	KindVariant
	KindComposite
)

var kindNames = map[Kind]string{
	KindU8:          "u8",
	KindU16:         "u16",
	KindU32:         "u32",
	KindU64:         "u64",
	KindF32:         "f32",
	KindF64:         "f64",
	KindUUID:        "uuid",
	KindToken:       "token",
	KindFileName:    "filename",
	KindFileRef:     "fileref",
	KindCString:     "cstring",
	KindWideCString: "wstring",
	KindReference:   "reference",
	KindArray:       "array",
	KindVariant:     "variant",
	KindComposite:   "composite",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsScalar reports whether k is a fixed-size leaf.
func (k Kind) IsScalar() bool { return k >= KindU8 && k <= KindFileRef }

// IsText reports whether k is a NUL-terminated string.
func (k Kind) IsText() bool { return k == KindCString || k == KindWideCString }

// RefKind distinguishes the reference-like field tags.
type RefKind uint8

const (
	RefOptional RefKind = iota + 1
	RefInline
	RefStructCommon
)

func (k RefKind) String() string {
	switch k {
	case RefOptional:
		return "optional"
	case RefInline:
		return "inline"
	case RefStructCommon:
		return "struct-common"
	}
	return fmt.Sprintf("RefKind(%d)", uint8(k))
}

// ArrayKind distinguishes the array-like field tags.
type ArrayKind uint8

const (
	ArrayFixed ArrayKind = iota + 1
	ArrayDynamic
	ArrayDynamicSmall
	ArrayPointers
	// ArrayInline is a vector built in (float3, dword4, ...), not a field tag.
	ArrayInline
)

func (k ArrayKind) String() string {
	switch k {
	case ArrayFixed:
		return "fixed"
	case ArrayDynamic:
		return "dynamic"
	case ArrayDynamicSmall:
		return "dynamic-small"
	case ArrayPointers:
		return "pointers"
	case ArrayInline:
		return "inline"
	}
	return fmt.Sprintf("ArrayKind(%d)", uint8(k))
}
