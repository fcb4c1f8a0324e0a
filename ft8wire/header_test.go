package ft8wire

import "testing"

func TestIsHeader(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"0102 HELLO WO", true},
		{"0102 ", true},
		{"0102", false},    // too short
		{"010 2HELLO", false},
		{"ABCD HELLO", false}, // not digits
		{"0102HELLOWO", false}, // no separating space
		{"", false},
	}
	for _, c := range cases {
		if got := IsHeader(c.text); got != c.want {
			t.Errorf("IsHeader(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestHeaderFieldExtraction(t *testing.T) {
	text := "0102 HELLO WO"
	if s := HeaderSender(text); s != "01" {
		t.Errorf("HeaderSender() = %q, want %q", s, "01")
	}
	if tgt := HeaderTarget(text); tgt != "02" {
		t.Errorf("HeaderTarget() = %q, want %q", tgt, "02")
	}
	if p := HeaderPayload(text); p != "HELLO WO" {
		t.Errorf("HeaderPayload() = %q, want %q", p, "HELLO WO")
	}
}

func TestHeaderFieldExtractionOnNonHeader(t *testing.T) {
	text := "NOT A HEADER"
	if s := HeaderSender(text); s != "" {
		t.Errorf("HeaderSender() on non-header = %q, want empty", s)
	}
	if tgt := HeaderTarget(text); tgt != "" {
		t.Errorf("HeaderTarget() on non-header = %q, want empty", tgt)
	}
	if p := HeaderPayload(text); p != "" {
		t.Errorf("HeaderPayload() on non-header = %q, want empty", p)
	}
}

func TestEndsWithAR(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"A 73       /AR", true},
		{"RLD A 73  /AR", true},
		{"  A 73 /AR  ", true},
		{"RLD A 73", false},
		{"/ARSOMETHING", false},
	}
	for _, c := range cases {
		if got := EndsWithAR(c.text); got != c.want {
			t.Errorf("EndsWithAR(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestStripAR(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"HI /AR", "HI"},
		{"RLD A 73  /AR", "RLD A 73"},
		{"          /AR", ""},
		{"NO SIGIL HERE", "NO SIGIL HERE"},
	}
	for _, c := range cases {
		if got := StripAR(c.text); got != c.want {
			t.Errorf("StripAR(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}
