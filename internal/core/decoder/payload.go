package decoder

import "firestige.xyz/framedump/internal/core"

// IPv4 and ARP field offsets relative to the start of the frame.
const (
	ipv4TotalLenOff = 16
	ipv4SrcOff      = 26
	ipv4DstOff      = 30

	arpSenderMACOff = 22
	arpSenderIPOff  = 28
	arpTargetMACOff = 32
	arpTargetIPOff  = 38
)

// decodePayload fills the kind-specific fields of rec and returns the frame
// length in bytes.
func decodePayload(buf []byte, offset int, kind core.FrameKind, typeLen uint16, rec *core.Record) (int, error) {
	switch kind {
	case core.KindIPv4:
		return decodeIPv4(buf, offset, rec)
	case core.KindARP:
		return decodeARP(buf, offset, rec)
	default:
		return int(typeLen) + core.EthernetHeaderLen, nil
	}
}

func decodeIPv4(buf []byte, offset int, rec *core.Record) (int, error) {
	totalLen, err := uint16At(buf, offset, ipv4TotalLenOff, "ipv4 total length")
	if err != nil {
		return 0, err
	}
	src, err := field(buf, offset, ipv4SrcOff, 4, "ipv4 source address")
	if err != nil {
		return 0, err
	}
	dst, err := field(buf, offset, ipv4DstOff, 4, "ipv4 destination address")
	if err != nil {
		return 0, err
	}

	rec.IPv4 = &core.IPv4Fields{
		SrcIP:       FormatIPv4(src),
		DstIP:       FormatIPv4(dst),
		TotalLength: totalLen,
	}
	// Total length covers the IP datagram only.
	return int(totalLen) + core.EthernetHeaderLen, nil
}

func decodeARP(buf []byte, offset int, rec *core.Record) (int, error) {
	senderMAC, err := field(buf, offset, arpSenderMACOff, 6, "arp sender mac")
	if err != nil {
		return 0, err
	}
	senderIP, err := field(buf, offset, arpSenderIPOff, 4, "arp sender ip")
	if err != nil {
		return 0, err
	}
	targetMAC, err := field(buf, offset, arpTargetMACOff, 6, "arp target mac")
	if err != nil {
		return 0, err
	}
	targetIP, err := field(buf, offset, arpTargetIPOff, 4, "arp target ip")
	if err != nil {
		return 0, err
	}

	rec.ARP = &core.ARPFields{
		SenderMAC: FormatMAC(senderMAC),
		SenderIP:  FormatIPv4(senderIP),
		TargetMAC: FormatMAC(targetMAC),
		TargetIP:  FormatIPv4(targetIP),
	}
	return core.ARPFrameLen, nil
}
