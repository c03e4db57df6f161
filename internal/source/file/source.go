// Package file loads capture files into memory for decoding.
package file

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/spf13/afero"

	"firestige.xyz/framedump/internal/config"
	"firestige.xyz/framedump/internal/core"
)

// Capture is a capture file held in memory.
type Capture struct {
	Path   string
	Format config.InputFormat // Resolved format, never InputAuto
	Size   int                // File size in bytes

	// Data holds the frames back to back; nil for pcap input.
	Data []byte

	// Records holds one slice per captured packet; nil for raw input.
	Records [][]byte

	// Truncated is set when a pcap file ends in the middle of a record.
	Truncated bool
}

// Loader reads capture files through an afero filesystem.
type Loader struct {
	fs     afero.Fs
	format config.InputFormat
}

// NewLoader returns a loader for the given format. InputAuto (or "") sniffs
// each file's magic number.
func NewLoader(fs afero.Fs, format config.InputFormat) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if format == "" {
		format = config.InputAuto
	}
	return &Loader{fs: fs, format: format}
}

// Load reads the whole file. Failures wrap core.ErrSourceUnavailable.
func (l *Loader) Load(path string) (*Capture, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSourceUnavailable, err)
	}

	format := l.format
	if format == config.InputAuto {
		format = Detect(data)
	}
	c := &Capture{Path: path, Format: format, Size: len(data)}

	switch format {
	case config.InputRaw:
		c.Data = data
		return c, nil
	case config.InputPCAP, config.InputPCAPNG:
		r, err := newRecordReader(data, format)
		if err != nil {
			if l.format == config.InputAuto {
				// The leading bytes only looked like a capture header.
				c.Format = config.InputRaw
				c.Data = data
				return c, nil
			}
			return nil, wrapSourceErr(path, err)
		}
		if err := c.readRecords(r, r.LinkType()); err != nil {
			return nil, wrapSourceErr(path, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, format)
	}
}

// recordReader is satisfied by both pcapgo readers.
type recordReader interface {
	gopacket.PacketDataSource
	LinkType() layers.LinkType
}

func newRecordReader(data []byte, format config.InputFormat) (recordReader, error) {
	if format == config.InputPCAPNG {
		return pcapgo.NewNgReader(bytes.NewReader(data), pcapgo.DefaultNgReaderOptions)
	}
	return pcapgo.NewReader(bytes.NewReader(data))
}

func wrapSourceErr(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", core.ErrSourceUnavailable, path, err)
}

// readRecords drains a pcap/pcapng reader. A record cut short at the end of
// the file ends the read without error and marks the capture truncated.
func (c *Capture) readRecords(r gopacket.PacketDataSource, linkType layers.LinkType) error {
	if linkType != layers.LinkTypeEthernet {
		return fmt.Errorf("%w: link type %s", core.ErrUnsupportedFormat, linkType)
	}
	for {
		data, _, err := r.ReadPacketData()
		switch {
		case err == nil:
			c.Records = append(c.Records, data)
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			c.Truncated = true
			return nil
		default:
			return err
		}
	}
}

// RecordFramed reports whether the capture came from a pcap or pcapng file,
// where every record holds exactly one frame.
func (c *Capture) RecordFramed() bool {
	return c.Format == config.InputPCAP || c.Format == config.InputPCAPNG
}

// Detect guesses the format from the leading magic number. Anything that is
// not a pcap or pcapng file is treated as raw frames. A raw capture can start
// with the same bytes, so Load falls back to raw when the header is rejected.
func Detect(data []byte) config.InputFormat {
	if len(data) < 4 {
		return config.InputRaw
	}
	switch binary.BigEndian.Uint32(data[:4]) {
	case 0xA1B2C3D4, 0xD4C3B2A1, 0xA1B23C4D, 0x4D3CB2A1:
		return config.InputPCAP
	case 0x0A0D0D0A:
		return config.InputPCAPNG
	default:
		return config.InputRaw
	}
}
