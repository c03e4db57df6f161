// Package core defines core types.
package core

// Category labels used as tally keys in reports and metrics.
const (
	LabelARP  = "ARP"
	LabelDIX  = "DIX"
	LabelIPv4 = "IPv4"
	LabelLLC  = "LLC"
	LabelRAW  = "RAW"
	LabelSNAP = "SNAP"
)

// Frame kind labels.
const (
	LabelKindIPv4    = "EthernetII-IPv4"
	LabelKindARP     = "EthernetII-ARP"
	LabelKindOther   = "EthernetII-Other"
	LabelKindRaw8023 = "Raw8023"
	LabelKindSNAP    = "SNAP8023"
	LabelKindLLC     = "LLC8023"
)
