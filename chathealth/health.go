// Package chathealth reports a snapshot of process and host health
// alongside the engine's current session state, for a liveness/readiness
// endpoint. Grounded on the teacher's use of gopsutil/v3 (instance_reporter.go,
// admin.go) for CPU core counts, generalized here to a small standalone
// health document instead of a periodic instance report.
package chathealth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

// Snapshot is the health document served over HTTP.
type Snapshot struct {
	Time           time.Time `json:"time"`
	EngineState    string    `json:"engine_state"`
	CPUCores       int       `json:"cpu_cores"`
	MemUsedPercent float64   `json:"mem_used_percent"`
	Load1          float64   `json:"load1"`
}

// Handler serves a JSON health Snapshot reflecting engine and host state.
type Handler struct {
	engine *chatproto.Locked
	now    func() time.Time
}

// New creates a Handler reporting on engine.
func New(engine *chatproto.Locked) *Handler {
	return &Handler{engine: engine, now: time.Now}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshot()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (h *Handler) snapshot() (Snapshot, error) {
	cores, err := cpu.Counts(true)
	if err != nil {
		return Snapshot{}, err
	}

	vmem, err := mem.VirtualMemory()
	if err != nil {
		return Snapshot{}, err
	}

	avg, err := load.Avg()
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Time:           h.now(),
		EngineState:    h.engine.State().String(),
		CPUCores:       cores,
		MemUsedPercent: vmem.UsedPercent,
		Load1:          avg.Load1,
	}, nil
}
