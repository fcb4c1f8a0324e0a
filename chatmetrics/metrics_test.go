package chatmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

func TestMessagesSentCounterIncrements(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.OnEvent(chatproto.Event{Kind: chatproto.EventMessageSentOk, TargetID: "02"})
	m.OnEvent(chatproto.Event{Kind: chatproto.EventMessageSentOk, TargetID: "02"})

	var metric dto.Metric
	if err := m.messagesSent.Write(&metric); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Fatalf("messages_sent_total = %v, want 2", metric.Counter.GetValue())
	}
}

func TestRetriesExhaustedCounterIncrements(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.OnEvent(chatproto.Event{Kind: chatproto.EventStatusMessage, StatusKey: chatproto.MsgRetriesExhausted})

	var metric dto.Metric
	if err := m.retriesExhausted.Write(&metric); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Fatalf("retries_exhausted_total = %v, want 1", metric.Counter.GetValue())
	}
}
