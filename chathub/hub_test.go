package chathub

import (
	"testing"
	"time"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

func TestToWireEventStatusMessage(t *testing.T) {
	w := toWireEvent(chatproto.Event{Kind: chatproto.EventStatusMessage, StatusKey: chatproto.MsgHalted}, time.Now())
	if w.Kind != "status" || w.StatusKey != "halted" {
		t.Fatalf("wire event = %+v", w)
	}
}

func TestToWireEventMessageReceived(t *testing.T) {
	w := toWireEvent(chatproto.Event{Kind: chatproto.EventMessageReceived, RxSenderID: "01", RxFullText: "HI"}, time.Now())
	if w.Kind != "message_received" || w.Sender != "01" || w.Text != "HI" {
		t.Fatalf("wire event = %+v", w)
	}
}

func TestHubClientCountStartsZero(t *testing.T) {
	h := New()
	if h.ClientCount() != 0 {
		t.Fatalf("ClientCount = %d, want 0", h.ClientCount())
	}
}

func TestOnEventMarshalsCleanly(t *testing.T) {
	if _, err := marshalForTest(chatproto.Event{Kind: chatproto.EventMessageSentOk, TargetID: "02"}); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}
