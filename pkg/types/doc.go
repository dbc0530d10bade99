// Package types defines the shared vocabulary of pfkit: four-character
// codes, the typed error taxonomy used by the pack-file decoder and the
// schema extractor, and a handful of limits.
//
// Design goals:
//   - Typed errors with stable categories so callers branch on Kind, not text.
//   - Every error carries the offending tag, version, offset or size.
//   - Never panic on malformed input.
//
// This package has no dependencies beyond the standard library.
package types
