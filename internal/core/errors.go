// Package core defines sentinel errors.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is.
var (
	// Frame decoding errors
	ErrTruncated       = errors.New("framedump: frame truncated")
	ErrMalformedLength = errors.New("framedump: malformed frame length")

	// Input errors
	ErrSourceUnavailable = errors.New("framedump: capture source unavailable")
	ErrUnsupportedFormat = errors.New("framedump: unsupported capture format")

	// Configuration errors
	ErrConfigInvalid = errors.New("framedump: invalid configuration")
)

// DecodeError records where in the capture a frame failed to decode.
type DecodeError struct {
	Seq    int    // 1-based sequence number of the frame being decoded
	Offset int    // Byte offset of the frame's first byte
	Field  string // Field whose byte range could not be read, if any
	Err    error  // ErrTruncated or ErrMalformedLength
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("frame %d at offset %d: %s: %v", e.Seq, e.Offset, e.Field, e.Err)
	}
	return fmt.Sprintf("frame %d at offset %d: %v", e.Seq, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
