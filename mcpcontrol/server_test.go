package mcpcontrol

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	clock := chatproto.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	e := chatproto.New(chatproto.Config{Clock: clock})
	e.SetMyID("01")
	return New(chatproto.NewLocked(e))
}

func TestHandleGetStateReportsIdle(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleGetState(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleGetState: %v", err)
	}

	text := resultText(t, result)
	var payload map[string]string
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if payload["state"] != "Idle" {
		t.Fatalf("state = %q, want Idle", payload["state"])
	}
}

func TestHandleSendMessageStartsSession(t *testing.T) {
	s := newTestServer(t)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"target": "02", "text": "HELLO"}

	if _, err := s.handleSendMessage(context.Background(), req); err != nil {
		t.Fatalf("handleSendMessage: %v", err)
	}
	if s.engine.State() != chatproto.SendingFragment {
		t.Fatalf("state = %v, want SendingFragment", s.engine.State())
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatalf("result has no text content: %+v", result)
	return ""
}

func TestHandleSendMessageMissingTargetErrors(t *testing.T) {
	s := newTestServer(t)
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"text": "HELLO"}

	result, err := s.handleSendMessage(context.Background(), req)
	if err != nil {
		t.Fatalf("handleSendMessage: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for a missing target")
	}
	if !strings.Contains(resultText(t, result), "target") {
		t.Fatalf("error text = %q, want it to mention target", resultText(t, result))
	}
}
