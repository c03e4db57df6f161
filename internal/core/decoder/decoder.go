// Package decoder implements link-layer frame decoding over a raw capture buffer.
package decoder

import (
	"encoding/binary"

	"firestige.xyz/framedump/internal/core"
)

// Decoder decodes the frame starting at offset into a record.
// Record.Length is the number of bytes the frame occupies.
type Decoder interface {
	Decode(buf []byte, offset int) (core.Record, error)
}

// FrameDecoder is the Ethernet II / 802.3 decoder.
type FrameDecoder struct{}

// New returns the standard frame decoder.
func New() *FrameDecoder {
	return &FrameDecoder{}
}

// Decode reads the MAC header, classifies the frame and extracts its
// payload fields. It never reads past len(buf).
func (d *FrameDecoder) Decode(buf []byte, offset int) (core.Record, error) {
	rec := core.Record{Offset: offset}

	dst, err := field(buf, offset, 0, 6, "destination mac")
	if err != nil {
		return rec, err
	}
	src, err := field(buf, offset, 6, 6, "source mac")
	if err != nil {
		return rec, err
	}
	rec.DstMAC = FormatMAC(dst)
	rec.SrcMAC = FormatMAC(src)

	kind, typeLen, err := Classify(buf, offset)
	if err != nil {
		return rec, err
	}
	rec.Kind = kind
	rec.TypeLen = typeLen

	length, err := decodePayload(buf, offset, kind, typeLen, &rec)
	if err != nil {
		return rec, err
	}
	rec.Length = length
	return rec, nil
}

// field returns buf[offset+rel : offset+rel+n] or a truncation error.
func field(buf []byte, offset, rel, n int, name string) ([]byte, error) {
	start := offset + rel
	if offset < 0 || start+n > len(buf) {
		return nil, &core.DecodeError{Offset: offset, Field: name, Err: core.ErrTruncated}
	}
	return buf[start : start+n], nil
}

// uint16At reads a big-endian 16-bit field.
func uint16At(buf []byte, offset, rel int, name string) (uint16, error) {
	b, err := field(buf, offset, rel, 2, name)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}
