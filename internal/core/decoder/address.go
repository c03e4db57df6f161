package decoder

import "net/netip"

const hexDigits = "0123456789ABCDEF"

// FormatMAC renders a 6-byte hardware address as XX:XX:XX:XX:XX:XX.
func FormatMAC(b []byte) string {
	out := make([]byte, 0, 17)
	for i := 0; i < 6; i++ {
		if i > 0 {
			out = append(out, ':')
		}
		out = append(out, hexDigits[b[i]>>4], hexDigits[b[i]&0x0F])
	}
	return string(out)
}

// FormatIPv4 renders a 4-byte address in dotted decimal.
func FormatIPv4(b []byte) string {
	return netip.AddrFrom4([4]byte{b[0], b[1], b[2], b[3]}).String()
}
