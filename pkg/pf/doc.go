// Package pf decodes "PF" pack files: a little-endian container of named,
// versioned chunks whose payloads are graphs of records linked by
// self-relative pointers.
//
// Decoding is zero-copy where the data allows it. Byte views, wide strings
// and narrow strings returned by the codecs in this package alias the
// caller's buffer, so the buffer must outlive every value decoded from it.
//
// Records are described by composing Codec values rather than by reflection:
//
//	var voice = pf.Record("TextPackVoice", pf.Sizes(pf.U32.Size, pf.U32.Size),
//		func(f *pf.Fields, v *TextPackVoice) {
//			pf.Read(f, &v.TextID, pf.U32)
//			pf.Read(f, &v.VoiceID, pf.U32)
//		})
//
// The container layer (PackFile, ChunkIter) validates the file header and
// walks the chunk sequence, handing each payload to a Family or Table that
// selects the record kind by magic and the layout by version.
package pf
