package ft8wire

import (
	"strings"
	"testing"
)

func TestFragmentMessageShortEchoSession(t *testing.T) {
	got := FragmentMessage("01", "02", "Hello World")
	want := []string{"0102 HELLO WO", "RLD"}
	assertFragments(t, got, want)
}

func TestFragmentMessageEmptyText(t *testing.T) {
	if got := FragmentMessage("01", "02", "###"); got != nil {
		t.Fatalf("FragmentMessage of all-invalid text = %v, want nil", got)
	}
}

func TestFragmentMessagePadsStationIDs(t *testing.T) {
	got := FragmentMessage("1", "2", "HI")
	if len(got) != 1 || !strings.HasPrefix(got[0], "0102 ") {
		t.Fatalf("FragmentMessage did not zero-pad short IDs: %v", got)
	}
}

func TestFragmentBroadcastMultiSlot(t *testing.T) {
	got := FragmentBroadcast("01", "02", "HELLO WORLD A 73")
	want := []string{"0102 HELLO WO", "RLD A 73  /AR"}
	assertFragments(t, got, want)
	last := got[len(got)-1]
	if len(last) != SlotSize {
		t.Fatalf("final broadcast slot length = %d, want %d", len(last), SlotSize)
	}
	if !strings.HasSuffix(last, "/AR") {
		t.Fatalf("final broadcast slot %q does not end with /AR", last)
	}
}

func TestFragmentBroadcastSpillsToNewSlotWhenFull(t *testing.T) {
	// 8 header chars + 13*N trailing chars, chosen so the last fragment
	// is exactly SlotSize long and has no room left for "/AR".
	text := strings.Repeat("A", FirstPayloadSize+SlotSize)
	got := FragmentBroadcast("01", "02", text)
	last := got[len(got)-1]
	if last != "          /AR" {
		t.Fatalf("spilled /AR slot = %q, want %q", last, "          /AR")
	}
	if len(last) != SlotSize {
		t.Fatalf("spilled /AR slot length = %d, want %d", len(last), SlotSize)
	}
}

func TestFragmentBroadcastEmptyText(t *testing.T) {
	if got := FragmentBroadcast("01", "02", ""); got != nil {
		t.Fatalf("FragmentBroadcast of empty text = %v, want nil", got)
	}
}

func TestFragmentMessagePayloadConcatenationMatchesFilteredText(t *testing.T) {
	inputs := []string{
		"Hello World",
		"The quick brown fox jumps over 73 times + a/b - c.d?",
		"A",
		strings.Repeat("Z", 130),
	}
	for _, in := range inputs {
		want := FilterText(in, MaxMessageLen)
		fragments := FragmentMessage("AB", "CD", in)

		var rebuilt strings.Builder
		for i, frag := range fragments {
			if i == 0 {
				rebuilt.WriteString(HeaderPayload(frag))
			} else {
				rebuilt.WriteString(frag)
			}
		}
		if rebuilt.String() != want {
			t.Errorf("payload concatenation for %q = %q, want %q", in, rebuilt.String(), want)
		}
	}
}

func TestFragmentBroadcastLastSlotAlwaysEndsWithAR(t *testing.T) {
	inputs := []string{"A", "Hello World", strings.Repeat("Q", 99)}
	for _, in := range inputs {
		fragments := FragmentBroadcast("01", "02", in)
		if len(fragments) == 0 {
			t.Fatalf("no fragments for %q", in)
		}
		last := fragments[len(fragments)-1]
		if !strings.HasSuffix(last, "/AR") {
			t.Errorf("last fragment for %q = %q, missing /AR", in, last)
		}
		if len(last) != SlotSize {
			t.Errorf("last fragment for %q has length %d, want %d", in, len(last), SlotSize)
		}
	}
}

func assertFragments(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("fragment count = %d, want %d (%v vs %v)", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fragment[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
