package chatproto

import "github.com/Philippe-Colt/ft8chat/ft8wire"

// Engine is the chat protocol's session state machine: single-threaded,
// event-driven, and the sole owner of all protocol state and timers
// (spec.md §5). A host drives it through the public methods in this
// package and receives notifications through Subscribe.
type Engine struct {
	myID string

	state State

	sender   senderState
	receiver receiverState

	timing Timing
	clock  Clock

	encoder   ft8wire.Encoder
	waveforms ft8wire.WaveformGenerator

	observers []Observer
}

// Config bundles the construction-time dependencies an Engine needs.
// Encoder and Waveforms may be nil if the host never calls SendDirect.
type Config struct {
	Timing    Timing
	Clock     Clock
	Encoder   ft8wire.Encoder
	Waveforms ft8wire.WaveformGenerator
}

// New creates an Engine in the Idle state. If cfg.Clock is nil, a
// production RealClock is used; if cfg.Timing is the zero value,
// DefaultTiming is used.
func New(cfg Config) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = NewRealClock()
	}
	if cfg.Timing == (Timing{}) {
		cfg.Timing = DefaultTiming()
	}
	e := &Engine{
		state:     Idle,
		timing:    cfg.Timing,
		clock:     cfg.Clock,
		encoder:   cfg.Encoder,
		waveforms: cfg.Waveforms,
	}
	e.sender.reset()
	return e
}

// Subscribe registers an observer. Observers are notified in the order
// they were subscribed, synchronously within the call that emits the
// event.
func (e *Engine) Subscribe(obs Observer) {
	e.observers = append(e.observers, obs)
}

// SetMyID configures the two-digit station identifier this engine answers
// to as a receiver and transmits as a sender.
func (e *Engine) SetMyID(id string) {
	e.myID = ft8wire.PadStationID(id)
}

// MyID returns the configured station identifier.
func (e *Engine) MyID() string {
	return e.myID
}

// State returns the engine's current state.
func (e *Engine) State() State {
	return e.state
}

// CurrentFragment returns the 1-based index of the fragment currently
// being sent, or 0 if no send is in progress.
func (e *Engine) CurrentFragment() int {
	if len(e.sender.fragments) == 0 {
		return 0
	}
	return e.sender.fragIndex + 1
}

// TotalFragments returns the number of fragments in the active outgoing
// message, or 0 if none.
func (e *Engine) TotalFragments() int {
	return len(e.sender.fragments)
}

// HasDataToSend reports whether the next NextTxText call would return
// non-empty text.
func (e *Engine) HasDataToSend() bool {
	return e.state == SendingFragment || e.state == EchoReady || e.state == Broadcasting
}

// HaltTx aborts any session in progress and returns the engine to Idle.
// It is idempotent: calling it while already Idle is a no-op beyond the
// status event.
func (e *Engine) HaltTx() {
	e.reset()
	e.emitStatus(MsgHalted)
}

func (e *Engine) setState(s State) {
	if e.state != s {
		e.state = s
		e.emitStateChanged(s)
	}
}

// reset cancels all timers and wipes both the sender and receiver state
// groups, per spec.md §3's invariant that the two are never simultaneously
// populated. It is the universal recovery primitive (spec.md §7) and is
// always safe to call.
func (e *Engine) reset() {
	e.sender.reset()
	e.receiver.reset()
	e.clock.Cancel(TimerSessionTimeout)
	e.clock.Cancel(TimerReceiveIdle)
	e.clock.Cancel(TimerDirectTxTick)
	e.setState(Idle)
}
