package config

import (
	"fmt"
	"strings"

	"firestige.xyz/framedump/internal/core"
)

// InputFormat selects the capture file decoder.
type InputFormat string

const (
	InputAuto   InputFormat = "auto"   // Sniff the file magic
	InputRaw    InputFormat = "raw"    // Back-to-back frames, no framing
	InputPCAP   InputFormat = "pcap"   // libpcap savefile
	InputPCAPNG InputFormat = "pcapng" // pcap next generation
)

// UnmarshalText implements encoding.TextUnmarshaler for viper decode hooks
// and pflag values.
func (f *InputFormat) UnmarshalText(text []byte) error {
	switch v := InputFormat(strings.ToLower(string(text))); v {
	case InputAuto, InputRaw, InputPCAP, InputPCAPNG:
		*f = v
		return nil
	default:
		return fmt.Errorf("%w: unknown input format %q (must be auto/raw/pcap/pcapng)", core.ErrConfigInvalid, text)
	}
}

func (f InputFormat) String() string { return string(f) }

// Set implements pflag.Value.
func (f *InputFormat) Set(s string) error { return f.UnmarshalText([]byte(s)) }

// Type implements pflag.Value.
func (f *InputFormat) Type() string { return "format" }

// ReportFormat selects the report encoding.
type ReportFormat string

const (
	ReportText ReportFormat = "text"
	ReportJSON ReportFormat = "json"
	ReportYAML ReportFormat = "yaml"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *ReportFormat) UnmarshalText(text []byte) error {
	switch v := ReportFormat(strings.ToLower(string(text))); v {
	case ReportText, ReportJSON, ReportYAML:
		*f = v
		return nil
	case "yml":
		*f = ReportYAML
		return nil
	default:
		return fmt.Errorf("%w: unknown report format %q (must be text/json/yaml)", core.ErrConfigInvalid, text)
	}
}

func (f ReportFormat) String() string { return string(f) }

// Set implements pflag.Value.
func (f *ReportFormat) Set(s string) error { return f.UnmarshalText([]byte(s)) }

// Type implements pflag.Value.
func (f *ReportFormat) Type() string { return "format" }
