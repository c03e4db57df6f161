package decoder

import (
	"encoding/binary"
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

var (
	testDstMAC = []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	testSrcMAC = []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0x0F}
)

func writeMACHeader(frame []byte, typeLen uint16) {
	copy(frame[0:6], testDstMAC)
	copy(frame[6:12], testSrcMAC)
	binary.BigEndian.PutUint16(frame[12:14], typeLen)
}

// makeIPv4Frame builds an Ethernet II / IPv4 frame whose IPv4 total length
// is totalLen. The frame is exactly totalLen+14 bytes long.
func makeIPv4Frame(totalLen uint16) []byte {
	frame := make([]byte, int(totalLen)+14)
	writeMACHeader(frame, 0x0800)

	frame[14] = 0x45 // Version 4, IHL 5
	binary.BigEndian.PutUint16(frame[16:18], totalLen)
	frame[22] = 0x40 // TTL: 64
	frame[23] = 0x11 // Protocol: UDP
	// Src IP: 192.168.1.1
	frame[26], frame[27], frame[28], frame[29] = 192, 168, 1, 1
	// Dst IP: 192.168.1.2
	frame[30], frame[31], frame[32], frame[33] = 192, 168, 1, 2
	return frame
}

// makeARPFrame builds a 42-byte Ethernet II / ARP request.
func makeARPFrame() []byte {
	frame := make([]byte, 42)
	writeMACHeader(frame, 0x0806)

	frame[14], frame[15] = 0x00, 0x01 // Hardware type: Ethernet
	frame[16], frame[17] = 0x08, 0x00 // Protocol type: IPv4
	frame[18] = 6                     // Hardware size
	frame[19] = 4                     // Protocol size
	frame[20], frame[21] = 0x00, 0x01 // Opcode: request
	// Sender MAC: 02:00:5E:10:00:01
	copy(frame[22:28], []byte{0x02, 0x00, 0x5E, 0x10, 0x00, 0x01})
	// Sender IP: 10.0.0.1
	frame[28], frame[29], frame[30], frame[31] = 10, 0, 0, 1
	// Target MAC: unknown
	// Target IP: 10.0.0.254
	frame[38], frame[39], frame[40], frame[41] = 10, 0, 0, 254
	return frame
}

// makeDot3Frame builds an 802.3 frame with the given length field and the
// first two LLC bytes set to llc. The frame is length+14 bytes long.
func makeDot3Frame(length, llc uint16) []byte {
	frame := make([]byte, int(length)+14)
	writeMACHeader(frame, length)
	binary.BigEndian.PutUint16(frame[14:16], llc)
	return frame
}

// makeOtherFrame builds an Ethernet II frame with an unrecognised EtherType.
func makeOtherFrame(etherType uint16) []byte {
	frame := make([]byte, int(etherType)+14)
	writeMACHeader(frame, etherType)
	return frame
}

func concat(frames ...[]byte) []byte {
	var buf []byte
	for _, f := range frames {
		buf = append(buf, f...)
	}
	return buf
}

// serializeIPv4 builds an Ethernet II / IPv4 / UDP frame with gopacket.
// payloadLen must be at least 18 so the frame needs no padding.
func serializeIPv4(tb testing.TB, payloadLen int) []byte {
	tb.Helper()
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true}
	err := gopacket.SerializeLayers(buf, opts,
		&layers.Ethernet{
			SrcMAC:       net.HardwareAddr(testSrcMAC),
			DstMAC:       net.HardwareAddr(testDstMAC),
			EthernetType: layers.EthernetTypeIPv4,
		},
		&layers.IPv4{
			Version:  4,
			TTL:      64,
			Protocol: layers.IPProtocolUDP,
			SrcIP:    net.IP{172, 16, 0, 10},
			DstIP:    net.IP{172, 16, 0, 20},
		},
		&layers.UDP{SrcPort: 5060, DstPort: 5060},
		gopacket.Payload(make([]byte, payloadLen-8)),
	)
	if err != nil {
		tb.Fatalf("SerializeLayers failed: %v", err)
	}
	return buf.Bytes()
}

// serializeARP builds an ARP reply with gopacket and strips the Ethernet
// padding so the frame is exactly 42 bytes.
func serializeARP(tb testing.TB) []byte {
	tb.Helper()
	buf := gopacket.NewSerializeBuffer()
	err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{},
		&layers.Ethernet{
			SrcMAC:       net.HardwareAddr(testSrcMAC),
			DstMAC:       net.HardwareAddr(testDstMAC),
			EthernetType: layers.EthernetTypeARP,
		},
		&layers.ARP{
			AddrType:          layers.LinkTypeEthernet,
			Protocol:          layers.EthernetTypeIPv4,
			HwAddressSize:     6,
			ProtAddressSize:   4,
			Operation:         layers.ARPReply,
			SourceHwAddress:   []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01},
			SourceProtAddress: []byte{192, 0, 2, 1},
			DstHwAddress:      []byte{0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F},
			DstProtAddress:    []byte{192, 0, 2, 99},
		},
	)
	if err != nil {
		tb.Fatalf("SerializeLayers failed: %v", err)
	}
	return buf.Bytes()[:42]
}
