package qr

import (
	"encoding/binary"
	"fmt"
)

// nativeSide is the fixed module-grid side length ReferenceCodec renders
// and expects on decode, in pixels. Capabilities.MaxDataCapacity is derived
// from it.
const nativeSide = 64

const lengthPrefixBytes = 4

// ReferenceCodec is a dependable-but-not-ISO-compliant stand-in for a real
// QR library: it renders text as a deterministic tiled grayscale bitmap
// with a fixed-size length header, and decodes that exact format back. It
// exercises the full encode -> video -> decode pipeline end to end without
// an external QR dependency; production deployments plug in an adapter
// around a real symbology library implementing the same two interfaces.
type ReferenceCodec struct{}

// NewReferenceCodec returns a ReferenceCodec. It carries no state.
func NewReferenceCodec() *ReferenceCodec { return &ReferenceCodec{} }

var _ Generator = (*ReferenceCodec)(nil)
var _ Decoder = (*ReferenceCodec)(nil)

func (c *ReferenceCodec) Capabilities() Capabilities {
	return Capabilities{
		MaxDataCapacity:    nativeSide*nativeSide/8 - lengthPrefixBytes,
		SupportedVersions:  []int{1},
		SupportedEccLevels: []EccLevel{EccLow, EccMedium, EccQuartile, EccHigh},
	}
}

// Generate renders text into a fixed nativeSide x nativeSide grayscale
// bitmap. version and ecc are accepted for interface compatibility but do
// not change the rendering; the reference codec carries no real ECC.
func (c *ReferenceCodec) Generate(text string, version int, ecc EccLevel) (*Image, error) {
	caps := c.Capabilities()
	if !caps.Supports(ecc) {
		return nil, fmt.Errorf("qr: unsupported ecc level %q", ecc)
	}
	payload := []byte(text)
	if len(payload) > caps.MaxDataCapacity {
		return nil, fmt.Errorf("qr: payload of %d bytes exceeds capacity %d", len(payload), caps.MaxDataCapacity)
	}

	data := make([]byte, lengthPrefixBytes+len(payload))
	binary.BigEndian.PutUint32(data, uint32(len(payload)))
	copy(data[lengthPrefixBytes:], payload)

	pixels := make([]byte, nativeSide*nativeSide)
	for i := range pixels {
		pixels[i] = 255
	}
	for bitIndex := 0; bitIndex < len(data)*8 && bitIndex < len(pixels); bitIndex++ {
		byteIdx := bitIndex / 8
		bitInByte := 7 - bitIndex%8
		if data[byteIdx]&(1<<bitInByte) != 0 {
			pixels[bitIndex] = 0
		}
	}

	return &Image{Width: nativeSide, Height: nativeSide, Pixels: pixels}, nil
}

// Decode nearest-neighbor-resamples frame to the native module grid (so it
// tolerates having been scaled up to an arbitrary video frame size by the
// encode coordinator) and recovers the length-prefixed payload.
func (c *ReferenceCodec) Decode(frame Image) (string, error) {
	if frame.Width <= 0 || frame.Height <= 0 || len(frame.Pixels) != frame.Width*frame.Height {
		return "", fmt.Errorf("qr: malformed frame %dx%d with %d pixels", frame.Width, frame.Height, len(frame.Pixels))
	}

	native := resample(frame, nativeSide, nativeSide)

	totalBits := nativeSide * nativeSide
	totalBytes := totalBits / 8
	data := make([]byte, totalBytes)
	for bitIndex := 0; bitIndex < totalBits; bitIndex++ {
		byteIdx := bitIndex / 8
		bitInByte := 7 - bitIndex%8
		if native[bitIndex] < 128 {
			data[byteIdx] |= 1 << bitInByte
		}
	}

	if len(data) < lengthPrefixBytes {
		return "", fmt.Errorf("qr: frame too small to hold a length header")
	}
	length := binary.BigEndian.Uint32(data[:lengthPrefixBytes])
	rest := data[lengthPrefixBytes:]
	if int(length) > len(rest) {
		return "", fmt.Errorf("qr: declared payload length %d exceeds available %d bytes", length, len(rest))
	}
	return string(rest[:length]), nil
}

// DecodeBatch decodes each frame independently, capturing per-frame errors
// rather than aborting the batch.
func (c *ReferenceCodec) DecodeBatch(frames []Image) ([]DecodeResult, error) {
	results := make([]DecodeResult, len(frames))
	for i, f := range frames {
		text, err := c.Decode(f)
		results[i] = DecodeResult{Text: text, Err: err}
	}
	return results, nil
}

// resample nearest-neighbor-scales src to dstW x dstH, independently on
// each axis, matching the encode coordinator's own up-scaling so that the
// two are inverses of each other for unmodified frames.
func resample(src Image, dstW, dstH int) []byte {
	dst := make([]byte, dstW*dstH)
	for y := 0; y < dstH; y++ {
		srcY := y * src.Height / dstH
		for x := 0; x < dstW; x++ {
			srcX := x * src.Width / dstW
			dst[y*dstW+x] = src.Pixels[srcY*src.Width+srcX]
		}
	}
	return dst
}
