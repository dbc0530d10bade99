package types

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindShortRead              ErrKind = iota + 1 // fewer bytes than a read requires
	ErrKindWrongFormatTag                            // container format tag is not the requested one
	ErrKindUnknownVersion                            // no layout registered for a version
	ErrKindUnknownMagic                              // no record kind registered for a magic
	ErrKindUnknownMagicOrVersion                     // no entry for a (magic, version) pair
	ErrKindRvaOutOfBounds                            // virtual address below the image base
	ErrKindNoSectionFound                            // RVA not covered by any section
	ErrKindOffsetOutOfBounds                         // file offset or pointer target outside the data
	ErrKindInvalidFieldType                          // unknown field descriptor type tag
	ErrKindDuplicateDescriptor                       // chunk descriptor already recovered
	ErrKindNoUsableVersions                          // descriptor without any usable version
	ErrKindTextTerminatorNotFound                    // null-terminated text runs off the data
	ErrKindBadSignature                              // "PF" or "PE\0\0" signature mismatch
	ErrKindInvalidText                               // embedded name is not valid UTF-8
	ErrKindCyclicType                                // field list refers back to itself
	ErrKindDepthExceeded                             // field list nesting beyond the configured limit
)

var kindNames = map[ErrKind]string{
	ErrKindShortRead:              "short read",
	ErrKindWrongFormatTag:         "wrong format tag",
	ErrKindUnknownVersion:         "unknown version",
	ErrKindUnknownMagic:           "unknown magic",
	ErrKindUnknownMagicOrVersion:  "unknown magic or version",
	ErrKindRvaOutOfBounds:         "rva out of bounds",
	ErrKindNoSectionFound:         "no section found",
	ErrKindOffsetOutOfBounds:      "offset out of bounds",
	ErrKindInvalidFieldType:       "invalid field type",
	ErrKindDuplicateDescriptor:    "duplicate descriptor",
	ErrKindNoUsableVersions:       "no usable versions",
	ErrKindTextTerminatorNotFound: "text terminator not found",
	ErrKindBadSignature:           "bad signature",
	ErrKindInvalidText:            "invalid text",
	ErrKindCyclicType:             "cyclic type",
	ErrKindDepthExceeded:          "type nesting too deep",
}

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error is a typed error. Only the fields relevant to Kind are populated.
type Error struct {
	Kind ErrKind
	Type string // owning type, when known

	Required int // ShortRead
	Actual   int // ShortRead

	Expected FourCC // WrongFormatTag
	Magic    FourCC // WrongFormatTag (actual), UnknownMagic, UnknownMagicOrVersion, DuplicateDescriptor
	Version  uint32 // UnknownVersion, UnknownMagicOrVersion, DuplicateDescriptor (version count)
	Offset   uint64 // RVA or file offset
	Code     uint16 // InvalidFieldType

	Msg string
	Err error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Type != "" {
		b.WriteString(" for ")
		b.WriteString(e.Type)
	}
	switch e.Kind {
	case ErrKindShortRead:
		fmt.Fprintf(&b, ": required %d, actual %d", e.Required, e.Actual)
	case ErrKindWrongFormatTag:
		fmt.Fprintf(&b, ": expected %s (%#08x), actual %s (%#08x)",
			e.Expected, uint32(e.Expected), e.Magic, uint32(e.Magic))
	case ErrKindUnknownVersion:
		fmt.Fprintf(&b, ": %d", e.Version)
	case ErrKindUnknownMagic:
		fmt.Fprintf(&b, ": %s (%#08x)", e.Magic, uint32(e.Magic))
	case ErrKindUnknownMagicOrVersion:
		fmt.Fprintf(&b, ": magic %s (%#08x), version %d", e.Magic, uint32(e.Magic), e.Version)
	case ErrKindRvaOutOfBounds, ErrKindNoSectionFound:
		fmt.Fprintf(&b, ": rva %#x", e.Offset)
	case ErrKindOffsetOutOfBounds, ErrKindCyclicType:
		fmt.Fprintf(&b, ": offset %#x", e.Offset)
	case ErrKindInvalidFieldType:
		fmt.Fprintf(&b, ": %d", e.Code)
	case ErrKindDuplicateDescriptor:
		fmt.Fprintf(&b, ": %s, %d versions, metadata at %#x", e.Magic, e.Version, e.Offset)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the sentinels below work with
// errors.Is regardless of the detail fields.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t != nil && e != nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrShortRead              = &Error{Kind: ErrKindShortRead}
	ErrWrongFormatTag         = &Error{Kind: ErrKindWrongFormatTag}
	ErrUnknownVersion         = &Error{Kind: ErrKindUnknownVersion}
	ErrUnknownMagic           = &Error{Kind: ErrKindUnknownMagic}
	ErrUnknownMagicOrVersion  = &Error{Kind: ErrKindUnknownMagicOrVersion}
	ErrRvaOutOfBounds         = &Error{Kind: ErrKindRvaOutOfBounds}
	ErrNoSectionFound         = &Error{Kind: ErrKindNoSectionFound}
	ErrOffsetOutOfBounds      = &Error{Kind: ErrKindOffsetOutOfBounds}
	ErrInvalidFieldType       = &Error{Kind: ErrKindInvalidFieldType}
	ErrDuplicateDescriptor    = &Error{Kind: ErrKindDuplicateDescriptor}
	ErrNoUsableVersions       = &Error{Kind: ErrKindNoUsableVersions}
	ErrTextTerminatorNotFound = &Error{Kind: ErrKindTextTerminatorNotFound}
	ErrBadSignature           = &Error{Kind: ErrKindBadSignature}
	ErrInvalidText            = &Error{Kind: ErrKindInvalidText}
	ErrCyclicType             = &Error{Kind: ErrKindCyclicType}
	ErrDepthExceeded          = &Error{Kind: ErrKindDepthExceeded}
)

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// ShortRead reports that typ needed required bytes but only actual remained.
func ShortRead(typ string, required, actual int) *Error {
	return &Error{Kind: ErrKindShortRead, Type: typ, Required: required, Actual: actual}
}

// WrongFormatTag reports a container whose format tag is not the expected one.
func WrongFormatTag(typ string, expected, actual FourCC) *Error {
	return &Error{Kind: ErrKindWrongFormatTag, Type: typ, Expected: expected, Magic: actual}
}

// UnknownVersion reports a version with no registered layout on typ.
func UnknownVersion(typ string, version uint16) *Error {
	return &Error{Kind: ErrKindUnknownVersion, Type: typ, Version: uint32(version)}
}

// UnknownMagic reports a magic with no registered record kind on typ.
func UnknownMagic(typ string, magic FourCC) *Error {
	return &Error{Kind: ErrKindUnknownMagic, Type: typ, Magic: magic}
}

// UnknownMagicOrVersion reports a (magic, version) pair missing from typ.
func UnknownMagicOrVersion(typ string, magic FourCC, version uint16) *Error {
	return &Error{Kind: ErrKindUnknownMagicOrVersion, Type: typ, Magic: magic, Version: uint32(version)}
}

// OffsetOutOfBounds reports an offset that does not address the data.
func OffsetOutOfBounds(offset uint64) *Error {
	return &Error{Kind: ErrKindOffsetOutOfBounds, Offset: offset}
}
