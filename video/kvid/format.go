// Package kvid implements a dependency-free, framed binary video container
// as a fallback for environments without a real codec: "KVID" + version +
// codec tag + pixel-format tag + reserved byte + four big-endian u32s
// (width, height, fps, frame_count), followed by one record per frame:
// <u32 frameNumber><u64 timestampNanos><u32 payloadSize><payload>.
// Frame payloads are lz4-compressed raw RGB.
package kvid

const (
	magic = "KVID"

	formatVersion  = 1
	codecTagKVID   = 1
	pixelFormatRGB = 1

	headerSize = 4 + 1 + 1 + 1 + 1 + 4*4 // magic + version + codec + pixelfmt + reserved + 4 u32s
)
