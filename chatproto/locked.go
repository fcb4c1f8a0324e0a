package chatproto

import "sync"

// Locked wraps an Engine with a mutex so it can be driven safely from
// multiple goroutines at once — in particular, RealClock delivers timer
// callbacks from their own goroutines, so any host using RealClock must
// serialize engine access somehow. Locked is that serialization; a host
// using FakeClock in tests can skip it and call the Engine directly,
// since FakeClock only ever fires synchronously inside Advance.
type Locked struct {
	mu sync.Mutex
	e  *Engine
}

// NewLocked wraps e for safe concurrent use.
func NewLocked(e *Engine) *Locked {
	return &Locked{e: e}
}

// Do runs fn with the engine locked, giving callers access to any Engine
// method not already wrapped below.
func (l *Locked) Do(fn func(*Engine)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.e)
}

// SendMessage is the locked equivalent of Engine.SendMessage.
func (l *Locked) SendMessage(targetID, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.e.SendMessage(targetID, text)
}

// SendBroadcast is the locked equivalent of Engine.SendBroadcast.
func (l *Locked) SendBroadcast(targetID, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.e.SendBroadcast(targetID, text)
}

// ProcessIncoming is the locked equivalent of Engine.ProcessIncoming.
func (l *Locked) ProcessIncoming(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.e.ProcessIncoming(text)
}

// NextTxText is the locked equivalent of Engine.NextTxText.
func (l *Locked) NextTxText() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.e.NextTxText()
}

// HaltTx is the locked equivalent of Engine.HaltTx.
func (l *Locked) HaltTx() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.e.HaltTx()
}

// State is the locked equivalent of Engine.State.
func (l *Locked) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.e.State()
}
