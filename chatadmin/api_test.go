package chatadmin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeLogFile(t *testing.T, dataDir string, day time.Time, rows [][]string) {
	t.Helper()
	dir := filepath.Join(dataDir, day.Format("2006"), day.Format("01"), day.Format("02"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	var lines string
	lines = "timestamp,direction,peer,text\n"
	for _, r := range rows {
		lines += r[0] + "," + r[1] + "," + r[2] + "," + r[3] + "\n"
	}
	if err := os.WriteFile(filepath.Join(dir, "chat.csv"), []byte(lines), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
}

func TestHandleLogsReturnsFilteredEntries(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	writeLogFile(t, dir, day, [][]string{
		{day.Format(time.RFC3339), "rx", "01", "HELLO"},
		{day.Add(time.Minute).Format(time.RFC3339), "tx", "02", "BYE"},
	})

	api, err := New(dir, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/logs?start=2026-03-04&end=2026-03-04&peer=01", nil)
	rec := httptest.NewRecorder()
	api.HandleLogs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if int(body["count"].(float64)) != 1 {
		t.Fatalf("count = %v, want 1", body["count"])
	}
}

func TestHandleLogsRejectsInvalidLimit(t *testing.T) {
	dir := t.TempDir()
	api, err := New(dir, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/logs?limit=0", nil)
	rec := httptest.NewRecorder()
	api.HandleLogs(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
