package decoder

import "firestige.xyz/framedump/internal/core"

// Classify inspects the EtherType/length field at offset+12 and, for 802.3
// frames, the LLC header at offset+14. It returns the frame kind and the raw
// EtherType/length value.
func Classify(buf []byte, offset int) (core.FrameKind, uint16, error) {
	typeLen, err := uint16At(buf, offset, 12, "ethertype/length")
	if err != nil {
		return core.KindUnknown, 0, err
	}

	if typeLen > core.MaxDot3Length {
		switch typeLen {
		case core.EtherTypeIPv4:
			return core.KindIPv4, typeLen, nil
		case core.EtherTypeARP:
			return core.KindARP, typeLen, nil
		default:
			return core.KindEthernetOther, typeLen, nil
		}
	}

	// 802.3: typeLen is the payload length, the LLC header decides the variant.
	llc, err := uint16At(buf, offset, 14, "llc header")
	if err != nil {
		return core.KindUnknown, typeLen, err
	}
	switch llc {
	case core.LLCRaw:
		return core.KindRaw8023, typeLen, nil
	case core.LLCSNAP:
		return core.KindSNAP8023, typeLen, nil
	default:
		return core.KindLLC8023, typeLen, nil
	}
}
