package ft8wire

import "testing"

func TestFilterTextDropsInvalidAndUppercases(t *testing.T) {
	got := FilterText("hello, world! 123", 99)
	want := "HELLO WORLD 123"
	if got != want {
		t.Fatalf("FilterText() = %q, want %q", got, want)
	}
}

func TestFilterTextTruncatesAtMaxLen(t *testing.T) {
	got := FilterText("ABCDEFGHIJ", 5)
	if got != "ABCDE" {
		t.Fatalf("FilterText() = %q, want %q", got, "ABCDE")
	}
}

func TestFilterTextIdempotent(t *testing.T) {
	once := FilterText("HELLO WORLD +-./?", 99)
	twice := FilterText(once, 99)
	if once != twice {
		t.Fatalf("FilterText not idempotent: %q != %q", once, twice)
	}
}

func TestFilterTextAlphabetMembership(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 +-./?"
	in := "The Quick Brown Fox! #42 @ 73 +- ./? "
	out := FilterText(in, 99)
	for i := 0; i < len(out); i++ {
		found := false
		for j := 0; j < len(alphabet); j++ {
			if out[i] == alphabet[j] {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("FilterText produced out-of-alphabet byte %q at %d in %q", out[i], i, out)
		}
	}
}

func TestFilterTextEmptyInput(t *testing.T) {
	if got := FilterText("", 99); got != "" {
		t.Fatalf("FilterText(\"\") = %q, want empty", got)
	}
	if got := FilterText("###", 99); got != "" {
		t.Fatalf("FilterText of all-invalid input = %q, want empty", got)
	}
}
