package ft8wire

import "strings"

// HeaderSize is the width of a header prefix: two sender digits, two
// target digits, one separating space.
const HeaderSize = 5

// SlotSize is the fixed width of one FT8 free-text transmission slot.
const SlotSize = 13

// FirstPayloadSize is how many payload characters fit in the header slot
// alongside the header prefix.
const FirstPayloadSize = SlotSize - HeaderSize

// arSigil is the end-of-message marker appended to the final slot of a
// broadcast transmission.
const arSigil = "/AR"

// IsHeader reports whether text opens with a four-digit station pair
// followed by a space, e.g. "0102 HELLO".
func IsHeader(text string) bool {
	if len(text) < HeaderSize {
		return false
	}
	for i := 0; i < 4; i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return text[4] == ' '
}

// HeaderSender returns the sender ID encoded in a header frame, or "" if
// text is not a header.
func HeaderSender(text string) string {
	if !IsHeader(text) {
		return ""
	}
	return text[0:2]
}

// HeaderTarget returns the target ID encoded in a header frame, or "" if
// text is not a header.
func HeaderTarget(text string) string {
	if !IsHeader(text) {
		return ""
	}
	return text[2:4]
}

// HeaderPayload returns the payload characters following the header
// prefix, or "" if text is not a header.
func HeaderPayload(text string) string {
	if !IsHeader(text) {
		return ""
	}
	return text[HeaderSize:]
}

// EndsWithAR reports whether the trimmed text ends with the broadcast
// terminator sigil "/AR".
func EndsWithAR(text string) bool {
	return strings.HasSuffix(strings.TrimSpace(text), arSigil)
}

// StripAR trims text and removes a trailing "/AR" sigil if present,
// trimming once more to drop the padding that preceded it.
func StripAR(text string) string {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimSuffix(trimmed, arSigil)
	return strings.TrimSpace(trimmed)
}
