// Package core defines core types with zero external dependencies.
package core

import "fmt"

// Link-layer constants.
const (
	EthernetHeaderLen = 14
	ARPFrameLen       = 42
	MaxDot3Length     = 0x05DC // Largest 802.3 length value; anything above is an EtherType

	EtherTypeIPv4 = 0x0800
	EtherTypeARP  = 0x0806

	LLCRaw  = 0xFFFF
	LLCSNAP = 0xAAAA
)

// FrameKind classifies a single decoded frame.
type FrameKind uint8

const (
	KindUnknown FrameKind = iota
	KindIPv4
	KindARP
	KindEthernetOther
	KindRaw8023
	KindSNAP8023
	KindLLC8023
)

var kindLabels = [...]string{
	KindUnknown:       "Unknown",
	KindIPv4:          LabelKindIPv4,
	KindARP:           LabelKindARP,
	KindEthernetOther: LabelKindOther,
	KindRaw8023:       LabelKindRaw8023,
	KindSNAP8023:      LabelKindSNAP,
	KindLLC8023:       LabelKindLLC,
}

func (k FrameKind) String() string {
	if int(k) < len(kindLabels) {
		return kindLabels[k]
	}
	return fmt.Sprintf("FrameKind(%d)", uint8(k))
}

// MarshalText renders the kind label in JSON and YAML reports.
func (k FrameKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsEthernetII reports whether the frame carries an EtherType (DIX framing).
func (k FrameKind) IsEthernetII() bool {
	return k == KindIPv4 || k == KindARP || k == KindEthernetOther
}

// Is8023 reports whether the frame carries an 802.3 length field.
func (k FrameKind) Is8023() bool {
	return k == KindRaw8023 || k == KindSNAP8023 || k == KindLLC8023
}

// Category is a tally key. Declaration order is the report order.
type Category uint8

const (
	CategoryARP Category = iota
	CategoryDIX
	CategoryIPv4
	CategoryLLC
	CategoryRAW
	CategorySNAP

	numCategories
)

var categoryLabels = [numCategories]string{
	CategoryARP:  LabelARP,
	CategoryDIX:  LabelDIX,
	CategoryIPv4: LabelIPv4,
	CategoryLLC:  LabelLLC,
	CategoryRAW:  LabelRAW,
	CategorySNAP: LabelSNAP,
}

func (c Category) String() string {
	if c < numCategories {
		return categoryLabels[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Categories returns every category in report order.
func Categories() []Category {
	cats := make([]Category, numCategories)
	for i := range cats {
		cats[i] = Category(i)
	}
	return cats
}

// Tally counts frames per category. The zero value is an empty tally.
//
// Counts cannot wrap: every frame advances the cursor by at least
// EthernetHeaderLen bytes, so no count exceeds len(buffer)/14.
type Tally [numCategories]uint64

// Add counts one frame of the given kind. Ethernet II frames always count as
// DIX, and IPv4 and ARP frames are counted in their own category as well.
func (t *Tally) Add(kind FrameKind) {
	switch kind {
	case KindIPv4:
		t[CategoryDIX]++
		t[CategoryIPv4]++
	case KindARP:
		t[CategoryDIX]++
		t[CategoryARP]++
	case KindEthernetOther:
		t[CategoryDIX]++
	case KindRaw8023:
		t[CategoryRAW]++
	case KindSNAP8023:
		t[CategorySNAP]++
	case KindLLC8023:
		t[CategoryLLC]++
	}
}

// Get returns the count for c.
func (t Tally) Get(c Category) uint64 {
	if c >= numCategories {
		return 0
	}
	return t[c]
}

// Merge adds every count of o into t.
func (t *Tally) Merge(o Tally) {
	for i := range t {
		t[i] += o[i]
	}
}
