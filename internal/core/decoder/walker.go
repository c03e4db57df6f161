package decoder

import (
	"errors"

	"firestige.xyz/framedump/internal/core"
)

// Walker drives a Decoder across a capture, frame after frame, and keeps the
// tally. A Walker holds no state between walks and may be reused, but not
// concurrently.
type Walker struct {
	dec Decoder
}

// NewWalker returns a walker using dec. A nil dec selects the standard
// FrameDecoder.
func NewWalker(dec Decoder) *Walker {
	if dec == nil {
		dec = New()
	}
	return &Walker{dec: dec}
}

// Walk decodes a buffer of back-to-back frames with the standard decoder.
func Walk(buf []byte) *core.Result {
	return NewWalker(nil).Walk(buf)
}

// Walk decodes buf as a concatenation of frames. Each frame starts where the
// computed length of the previous one ends. Decoding stops at the first
// truncated or malformed frame; every record emitted before it is kept.
func (w *Walker) Walk(buf []byte) *core.Result {
	res := &core.Result{}
	cursor := 0
	for cursor < len(buf) {
		rec, err := w.step(buf, cursor, 0, len(res.Records)+1)
		if err != nil {
			return stop(res, err, cursor, cursor)
		}
		res.Tally.Add(rec.Kind)
		res.Records = append(res.Records, rec)
		cursor += rec.Length
	}
	res.Complete = true
	res.StopOffset = len(buf)
	res.Consumed = cursor
	return res
}

// WalkRecords decodes one frame per captured record, as read from a pcap
// file. Bytes after the decoded frame (padding, FCS) are ignored. Offsets in
// the result are relative to the concatenation of all records.
func (w *Walker) WalkRecords(records [][]byte) *core.Result {
	res := &core.Result{}
	base := 0
	for _, data := range records {
		rec, err := w.step(data, 0, base, len(res.Records)+1)
		if err != nil {
			return stop(res, err, base, base)
		}
		res.Tally.Add(rec.Kind)
		res.Records = append(res.Records, rec)
		base += len(data)
	}
	res.Complete = true
	res.StopOffset = base
	res.Consumed = base
	return res
}

// step decodes the frame at cursor and stamps its sequence number and
// absolute offset.
func (w *Walker) step(buf []byte, cursor, base, seq int) (core.Record, error) {
	rec, err := w.dec.Decode(buf, cursor)
	if err != nil {
		return rec, annotate(err, seq, base+cursor)
	}
	if rec.Length <= 0 {
		return rec, &core.DecodeError{Seq: seq, Offset: base + cursor, Err: core.ErrMalformedLength}
	}
	rec.Seq = seq
	rec.Offset = base + cursor
	return rec, nil
}

func stop(res *core.Result, err error, offset, consumed int) *core.Result {
	res.Complete = false
	res.StopOffset = offset
	res.Consumed = consumed
	res.Err = err
	return res
}

func annotate(err error, seq, offset int) error {
	var de *core.DecodeError
	if errors.As(err, &de) {
		de.Seq = seq
		de.Offset = offset
		return de
	}
	return &core.DecodeError{Seq: seq, Offset: offset, Err: err}
}
