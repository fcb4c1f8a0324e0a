package localize

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

func TestRenderEnglish(t *testing.T) {
	c := New(language.English)
	got := c.Render(chatproto.MsgSendingTo, "02", 3)
	if !strings.Contains(got, "02") || !strings.Contains(got, "3") {
		t.Fatalf("Render = %q, want it to contain the target and fragment count", got)
	}
}

func TestRenderFrench(t *testing.T) {
	c := New(language.French)
	got := c.Render(chatproto.MsgHalted)
	if !strings.Contains(got, "interrompue") {
		t.Fatalf("Render = %q, want the French translation", got)
	}
}
