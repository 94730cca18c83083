package encode

import "errors"

// ErrBusy is returned by BuildVideo when a build is already in progress
// against this coordinator.
var ErrBusy = errors.New("encode: coordinator is busy building")

// ErrEmptyBuffer is returned by BuildVideo when no chunks have been
// buffered via AddMessage.
var ErrEmptyBuffer = errors.New("encode: buffer is empty")

// ErrUnsupportedECC is returned by BuildVideo when the configured QR
// generator does not support the requested error-correction level.
var ErrUnsupportedECC = errors.New("encode: qr generator does not support the requested ecc level")

// ErrChunkTooLarge is returned by BuildVideo when a buffered chunk's
// content exceeds the QR generator's maximum data capacity.
var ErrChunkTooLarge = errors.New("encode: chunk content exceeds qr capacity")
