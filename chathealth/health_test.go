package chathealth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

func TestServeHTTPReturnsEngineState(t *testing.T) {
	clock := chatproto.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	e := chatproto.New(chatproto.Config{Clock: clock})
	h := New(chatproto.NewLocked(e))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var snap Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.EngineState != "Idle" {
		t.Fatalf("engine_state = %q, want Idle", snap.EngineState)
	}
}
