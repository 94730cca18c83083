package framevault

import (
	"errors"
	"fmt"
	"os"

	"github.com/arvok-systems/framevault/encode"
	"github.com/arvok-systems/framevault/index"
)

// ErrInvalidK is returned when k is not positive.
var ErrInvalidK = errors.New("k must be positive")

// ErrInvalidArgument is kind 1 of spec's five error kinds: dimension
// mismatch, negative k, empty buffer, unsupported ECC, chunk exceeds QR
// capacity, and similar caller-input problems.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidArgument struct {
	Reason string
	cause  error
}

func (e *ErrInvalidArgument) Error() string { return "invalid argument: " + e.Reason }
func (e *ErrInvalidArgument) Unwrap() error { return e.cause }

// ErrInvalidState is kind 2: busy encoder, search against a failed-load
// index, finalize before init, and similar sequencing problems.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidState struct {
	Reason string
	cause  error
}

func (e *ErrInvalidState) Error() string { return "invalid state: " + e.Reason }
func (e *ErrInvalidState) Unwrap() error  { return e.cause }

// ErrResource is kind 3: file not found, permission denied, no video
// track, codec unavailable. Never retried automatically by this module.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrResource struct {
	Reason string
	cause  error
}

func (e *ErrResource) Error() string { return "resource error: " + e.Reason }
func (e *ErrResource) Unwrap() error  { return e.cause }

// ErrCorruptData is kind 4: malformed index file, bad magic, partial
// graph. Loads that hit this never mutate the index.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrCorruptData struct {
	Path   string
	Reason string
	cause  error
}

func (e *ErrCorruptData) Error() string {
	return fmt.Sprintf("corrupt data at %s: %s", e.Path, e.Reason)
}
func (e *ErrCorruptData) Unwrap() error { return e.cause }

// translateError normalizes lower-level package errors into the five
// kinds before they cross Store's public API, mirroring the teacher's
// own translateError boundary-normalization pattern.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *index.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrInvalidArgument{Reason: dm.Error(), cause: err}
	}
	var corrupt *index.ErrCorrupt
	if errors.As(err, &corrupt) {
		return &ErrCorruptData{Path: corrupt.Path, Reason: corrupt.Reason, cause: err}
	}

	if errors.Is(err, encode.ErrBusy) {
		return &ErrInvalidState{Reason: err.Error(), cause: err}
	}
	if errors.Is(err, encode.ErrEmptyBuffer) || errors.Is(err, encode.ErrUnsupportedECC) || errors.Is(err, encode.ErrChunkTooLarge) {
		return &ErrInvalidArgument{Reason: err.Error(), cause: err}
	}

	if os.IsNotExist(err) || os.IsPermission(err) {
		return &ErrResource{Reason: err.Error(), cause: err}
	}

	return err
}
