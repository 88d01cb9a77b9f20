// Package codec implements the sized block format used to persist byte
// buffers.
//
// Every block starts with an 8-byte little-endian header holding the
// uncompressed and the compressed size. A compressed size of zero marks a
// block stored as is, which Encode falls back to when compression saves
// less than 10%:
//
//	[Uncompressed uint32][Compressed uint32][Data...]
//
// Sizes are byte counts throughout, and block sizes for EncodeBlocks and
// Writer are KiB counts:
//
//	blocks, err := codec.EncodeBlocks(ctx, data, countof.KBs(64), codec.ZSTD)
//	data, err = codec.DecodeBlocks(ctx, blocks, codec.ZSTD)
//
// ZSTD encoders and decoders are pooled.
package codec
