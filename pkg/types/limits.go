package types

// ============================================================================
// Structural limits
// ============================================================================

const (
	// MaxImageSections is the number of section headers retained from an
	// executable image. Images with more sections only expose the first 32.
	MaxImageSections = 32

	// DefaultMaxTypeDepth bounds field-list nesting during schema recovery.
	// Known builds nest no deeper than a dozen levels.
	DefaultMaxTypeDepth = 64

	// MaxDescriptorVersions is the largest version count a descriptor can
	// carry and still pass the scanner's coarse mask (upper 3 bytes zero).
	MaxDescriptorVersions = 0xFF
)
