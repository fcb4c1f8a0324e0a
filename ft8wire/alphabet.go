// Package ft8wire implements the FT8 free-text wire format shared by the
// chat protocol: the limited character alphabet, slot-sized fragmentation,
// header/terminator framing, and the two interfaces a host must supply to
// turn a fragment into an on-air waveform.
package ft8wire

import "strings"

// MaxMessageLen is the longest text accepted before fragmentation, mirroring
// the teacher FT8 message tables which cap free text well under a kilobyte.
const MaxMessageLen = 99

// isValidChar reports whether c belongs to the FT8 free-text alphabet:
// A-Z, 0-9, space, and the punctuation set + - . / ?
//
// This mirrors the teacher's Charn/Nchar character-table lookup
// (audio_extensions/ft8/text.go) narrowed to the single "full" table the
// free-text message type uses, rather than the multi-table scheme the
// decoder needs for callsigns and grid squares.
func isValidChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == ' ' || c == '+' || c == '-' || c == '.' || c == '/' || c == '?':
		return true
	default:
		return false
	}
}

// FilterText upper-cases text, drops every byte outside the FT8 alphabet,
// and truncates the result at maxLen. It is order-preserving and idempotent
// on already-clean input.
func FilterText(text string, maxLen int) string {
	upper := strings.ToUpper(text)
	var b strings.Builder
	for i := 0; i < len(upper) && b.Len() < maxLen; i++ {
		c := upper[i]
		if isValidChar(c) {
			b.WriteByte(c)
		}
	}
	return b.String()
}
