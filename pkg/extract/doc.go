// Package extract recovers chunk layouts from the reflection tables a game
// executable carries for its pack-file formats.
//
// A Scanner walks the raw executable looking for chunk descriptors (a tag,
// a version count and a pointer to per-version metadata), then follows each
// version's root pointer through the 32-byte field descriptors to rebuild a
// schema.Type graph.
//
//	chunks, err := extract.Locate(raw, extract.Options{})
//
// Candidates that fail to parse are skipped and logged at debug level.
package extract
