package core

import (
	"errors"
	"testing"
)

func TestTallyAdd(t *testing.T) {
	tests := []struct {
		kind FrameKind
		want map[Category]uint64
	}{
		{KindIPv4, map[Category]uint64{CategoryDIX: 1, CategoryIPv4: 1}},
		{KindARP, map[Category]uint64{CategoryDIX: 1, CategoryARP: 1}},
		{KindEthernetOther, map[Category]uint64{CategoryDIX: 1}},
		{KindRaw8023, map[Category]uint64{CategoryRAW: 1}},
		{KindSNAP8023, map[Category]uint64{CategorySNAP: 1}},
		{KindLLC8023, map[Category]uint64{CategoryLLC: 1}},
		{KindUnknown, map[Category]uint64{}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			var tally Tally
			tally.Add(tt.kind)
			for _, c := range Categories() {
				if got := tally.Get(c); got != tt.want[c] {
					t.Errorf("%s: expected %d, got %d", c, tt.want[c], got)
				}
			}
		})
	}
}

func TestTallyMerge(t *testing.T) {
	var a, b Tally
	a.Add(KindIPv4)
	b.Add(KindARP)
	b.Add(KindLLC8023)

	a.Merge(b)
	if a.Get(CategoryDIX) != 2 {
		t.Errorf("expected DIX=2, got %d", a.Get(CategoryDIX))
	}
	if a.Get(CategoryLLC) != 1 {
		t.Errorf("expected LLC=1, got %d", a.Get(CategoryLLC))
	}
	if b.Get(CategoryIPv4) != 0 {
		t.Errorf("merge must not modify its argument")
	}
}

func TestCategoryOrder(t *testing.T) {
	expected := []string{"ARP", "DIX", "IPv4", "LLC", "RAW", "SNAP"}
	cats := Categories()
	if len(cats) != len(expected) {
		t.Fatalf("expected %d categories, got %d", len(expected), len(cats))
	}
	for i, c := range cats {
		if c.String() != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], c)
		}
	}
	if Category(42).String() != "Category(42)" {
		t.Errorf("unexpected label for out-of-range category: %s", Category(42))
	}
	if (Tally{}).Get(Category(42)) != 0 {
		t.Error("out-of-range category must read as zero")
	}
}

func TestFrameKind(t *testing.T) {
	for _, k := range []FrameKind{KindIPv4, KindARP, KindEthernetOther} {
		if !k.IsEthernetII() || k.Is8023() {
			t.Errorf("%s should be Ethernet II only", k)
		}
	}
	for _, k := range []FrameKind{KindRaw8023, KindSNAP8023, KindLLC8023} {
		if k.IsEthernetII() || !k.Is8023() {
			t.Errorf("%s should be 802.3 only", k)
		}
	}

	text, err := KindSNAP8023.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	if string(text) != "SNAP8023" {
		t.Errorf("expected SNAP8023, got %s", text)
	}
	if FrameKind(99).String() != "FrameKind(99)" {
		t.Errorf("unexpected label: %s", FrameKind(99))
	}
}

func TestSentinelErrors(t *testing.T) {
	t.Run("ErrorMessages", func(t *testing.T) {
		tests := []struct {
			err     error
			message string
		}{
			{ErrTruncated, "framedump: frame truncated"},
			{ErrMalformedLength, "framedump: malformed frame length"},
			{ErrSourceUnavailable, "framedump: capture source unavailable"},
			{ErrConfigInvalid, "framedump: invalid configuration"},
		}

		for _, tt := range tests {
			if tt.err.Error() != tt.message {
				t.Errorf("expected error message %q, got %q", tt.message, tt.err.Error())
			}
		}
	})

	t.Run("DecodeErrorUnwrap", func(t *testing.T) {
		var err error = &DecodeError{Seq: 3, Offset: 120, Field: "ethertype", Err: ErrTruncated}
		if !errors.Is(err, ErrTruncated) {
			t.Error("errors.Is failed for wrapped ErrTruncated")
		}
		if errors.Is(err, ErrMalformedLength) {
			t.Error("DecodeError must not match an unrelated sentinel")
		}
		want := "frame 3 at offset 120: ethertype: framedump: frame truncated"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("DecodeErrorWithoutField", func(t *testing.T) {
		err := &DecodeError{Seq: 1, Offset: 0, Err: ErrMalformedLength}
		want := "frame 1 at offset 0: framedump: malformed frame length"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})
}
