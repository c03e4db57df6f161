// Package report renders decode results for people and tools.
package report

import (
	"fmt"
	"io"

	"firestige.xyz/framedump/internal/config"
	"firestige.xyz/framedump/internal/core"
)

// Report is everything known about one decoded capture.
type Report struct {
	Source string // File name as given on the command line
	Size   int    // File size in bytes
	Result *core.Result

	// RecordFramed is set for pcap input, where offsets count bytes of
	// record data rather than bytes of the file.
	RecordFramed bool
}

// stopRecord is the 1-based record at which a record-framed walk stopped.
func (r *Report) stopRecord() int {
	return r.Result.Frames() + 1
}

// Emitter writes a report to w.
type Emitter interface {
	Emit(w io.Writer, r *Report) error
}

// New returns the emitter for format.
func New(format config.ReportFormat) (Emitter, error) {
	switch format {
	case config.ReportText, "":
		return TextEmitter{}, nil
	case config.ReportJSON:
		return JSONEmitter{Indent: "  "}, nil
	case config.ReportYAML:
		return YAMLEmitter{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown report format %q", core.ErrConfigInvalid, format)
	}
}

// document is the structured form shared by the JSON and YAML emitters.
type document struct {
	Source     string       `json:"source" yaml:"source"`
	Size       int          `json:"size" yaml:"size"`
	Complete   bool         `json:"complete" yaml:"complete"`
	StopOffset *int         `json:"stop_offset,omitempty" yaml:"stop_offset,omitempty"`
	StopRecord int          `json:"stop_record,omitempty" yaml:"stop_record,omitempty"`
	StopReason string       `json:"stop_reason,omitempty" yaml:"stop_reason,omitempty"`
	Total      int          `json:"total_frames" yaml:"total_frames"`
	Frames     []frameEntry `json:"frames" yaml:"frames"`
	Tally      tallyEntries `json:"tally" yaml:"tally"`
}

type frameEntry struct {
	Seq     int              `json:"seq" yaml:"seq"`
	Offset  int              `json:"offset" yaml:"offset"`
	DstMAC  string           `json:"dst_mac" yaml:"dst_mac"`
	SrcMAC  string           `json:"src_mac" yaml:"src_mac"`
	Kind    core.FrameKind   `json:"kind" yaml:"kind"`
	TypeLen string           `json:"type_length" yaml:"type_length"`
	Length  int              `json:"length" yaml:"length"`
	IPv4    *core.IPv4Fields `json:"ipv4,omitempty" yaml:"ipv4,omitempty"`
	ARP     *core.ARPFields  `json:"arp,omitempty" yaml:"arp,omitempty"`
}

type tallyEntry struct {
	Category string
	Count    uint64
}

// tallyEntries marshals as a mapping that keeps category order.
type tallyEntries []tallyEntry

func newDocument(r *Report) document {
	res := r.Result
	doc := document{
		Source:   r.Source,
		Size:     r.Size,
		Complete: res.Complete,
		Total:    res.Frames(),
		Frames:   make([]frameEntry, 0, len(res.Records)),
	}
	if !res.Complete {
		off := res.StopOffset
		doc.StopOffset = &off
		if r.RecordFramed {
			doc.StopRecord = r.stopRecord()
		}
		if res.Err != nil {
			doc.StopReason = res.Err.Error()
		}
	}
	for _, rec := range res.Records {
		doc.Frames = append(doc.Frames, frameEntry{
			Seq:     rec.Seq,
			Offset:  rec.Offset,
			DstMAC:  rec.DstMAC,
			SrcMAC:  rec.SrcMAC,
			Kind:    rec.Kind,
			TypeLen: fmt.Sprintf("0x%04X", rec.TypeLen),
			Length:  rec.Length,
			IPv4:    rec.IPv4,
			ARP:     rec.ARP,
		})
	}
	for _, c := range core.Categories() {
		doc.Tally = append(doc.Tally, tallyEntry{Category: c.String(), Count: res.Tally.Get(c)})
	}
	return doc
}

// separated is implemented by emitters whose output needs a marker between
// consecutive reports in one stream.
type separated interface {
	separator() string
}

func (TextEmitter) separator() string { return "\n" }

func (YAMLEmitter) separator() string { return "---\n" }

// WriteAll emits reports to w in order.
func WriteAll(w io.Writer, e Emitter, reports []*Report) error {
	for i, r := range reports {
		if i > 0 {
			if s, ok := e.(separated); ok {
				if _, err := io.WriteString(w, s.separator()); err != nil {
					return err
				}
			}
		}
		if err := e.Emit(w, r); err != nil {
			return fmt.Errorf("emit report for %s: %w", r.Source, err)
		}
	}
	return nil
}
