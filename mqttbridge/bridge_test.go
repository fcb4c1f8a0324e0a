package mqttbridge

import (
	"testing"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

func TestEncodeMessageReceived(t *testing.T) {
	b := &Bridge{topicRoot: "ft8chat"}
	kind, payload := b.encode(chatproto.Event{Kind: chatproto.EventMessageReceived, RxSenderID: "01", RxFullText: "HI"})
	if kind != "message_received" {
		t.Fatalf("kind = %q, want message_received", kind)
	}
	if payload.Sender != "01" || payload.Text != "HI" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestGenerateClientIDIsUnique(t *testing.T) {
	a := generateClientID()
	b := generateClientID()
	if a == b {
		t.Fatal("expected two distinct generated client IDs")
	}
}
