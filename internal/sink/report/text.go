package report

import (
	"bufio"
	"fmt"
	"io"

	"firestige.xyz/framedump/internal/core"
)

// TextEmitter writes the line-oriented report: one block per frame followed
// by the totals.
type TextEmitter struct{}

func (TextEmitter) Emit(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)
	res := r.Result

	fmt.Fprintf(bw, "File size of %s is %d byte\n\n", r.Source, r.Size)

	for i := range res.Records {
		writeFrame(bw, &res.Records[i])
		bw.WriteString("\n")
	}

	switch {
	case res.Complete:
	case r.RecordFramed:
		fmt.Fprintf(bw, "Decoding stopped at record %d (record data offset %d): %v\n\n", r.stopRecord(), res.StopOffset, res.Err)
	default:
		fmt.Fprintf(bw, "Decoding stopped at offset %d: %v\n\n", res.StopOffset, res.Err)
	}

	fmt.Fprintf(bw, "Total frames: %d\n\n", res.Frames())
	bw.WriteString("Type of frames:\n")
	for _, c := range core.Categories() {
		fmt.Fprintf(bw, "%s: %d\n", c, res.Tally.Get(c))
	}
	return bw.Flush()
}

func writeFrame(w *bufio.Writer, rec *core.Record) {
	fmt.Fprintf(w, "Frame №: %d\n", rec.Seq)
	fmt.Fprintf(w, "MAC address of the recipient: %s\n", rec.DstMAC)
	fmt.Fprintf(w, "MAC address of the sender: %s\n", rec.SrcMAC)

	switch rec.Kind {
	case core.KindIPv4:
		w.WriteString("Type of frame: DIX (Ethernet II)\n")
		w.WriteString("Protocol: IPv4\n")
		fmt.Fprintf(w, "IP address of the sender: %s\n", rec.IPv4.SrcIP)
		fmt.Fprintf(w, "IP address of the recipient: %s\n", rec.IPv4.DstIP)
		fmt.Fprintf(w, "Package Size: %d byte\n", rec.Length)
		return
	case core.KindARP:
		w.WriteString("Type of frame: DIX (Ethernet II)\n")
		w.WriteString("Type of frame: ARP\n")
		fmt.Fprintf(w, "MAC address of the sender: %s\n", rec.ARP.SenderMAC)
		fmt.Fprintf(w, "IP address of the sender: %s\n", rec.ARP.SenderIP)
		fmt.Fprintf(w, "MAC address of the recipient: %s\n", rec.ARP.TargetMAC)
		fmt.Fprintf(w, "IP address of the recipient: %s\n", rec.ARP.TargetIP)
	case core.KindEthernetOther:
		w.WriteString("Type of frame: DIX (Ethernet II)\n")
		fmt.Fprintf(w, "EtherType: 0x%04X\n", rec.TypeLen)
	case core.KindRaw8023:
		w.WriteString("Type of frame: Ethernet Raw 802.3\n")
	case core.KindSNAP8023:
		w.WriteString("Type of frame: Ethernet SNAP\n")
	case core.KindLLC8023:
		w.WriteString("Type of frame: Ethernet 802.2/LLC\n")
	}
	fmt.Fprintf(w, "Frame size: %d byte\n", rec.Length)
}
