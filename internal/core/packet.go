// Package core defines core data structures with zero external dependencies.
package core

// IPv4Fields are the fields extracted from an Ethernet II / IPv4 frame.
type IPv4Fields struct {
	SrcIP       string `json:"src_ip" yaml:"src_ip"`
	DstIP       string `json:"dst_ip" yaml:"dst_ip"`
	TotalLength uint16 `json:"total_length" yaml:"total_length"`
}

// ARPFields are the fields extracted from an Ethernet II / ARP frame.
type ARPFields struct {
	SenderMAC string `json:"sender_mac" yaml:"sender_mac"`
	SenderIP  string `json:"sender_ip" yaml:"sender_ip"`
	TargetMAC string `json:"target_mac" yaml:"target_mac"`
	TargetIP  string `json:"target_ip" yaml:"target_ip"`
}

// Record is the decoded view of one frame.
type Record struct {
	Seq     int       // 1-based position in the capture
	Offset  int       // Byte offset of the destination MAC
	DstMAC  string
	SrcMAC  string
	Kind    FrameKind
	TypeLen uint16 // Raw EtherType / 802.3 length field
	Length  int    // Bytes the frame occupies, used to advance to the next frame

	IPv4 *IPv4Fields // Only for KindIPv4
	ARP  *ARPFields  // Only for KindARP
}

// Result is the outcome of walking one capture.
type Result struct {
	Records []Record
	Tally   Tally

	// Complete is false when decoding stopped on a malformed or truncated
	// frame. Records decoded before the fault remain valid.
	Complete   bool
	StopOffset int   // Offset of the frame that failed; len(buffer) when complete
	Err        error // *DecodeError when !Complete

	// Consumed is the cursor position when the walk ended. It may exceed the
	// buffer length when the last frame's declared length runs past the end.
	Consumed int
}

// Frames returns the number of fully decoded frames.
func (r *Result) Frames() int {
	return len(r.Records)
}
