package chatproto

import "time"

// Timing holds the engine's four timer durations, overridable by the host
// (chatconfig exposes this as YAML) but defaulting to the values spec.md
// §3 specifies.
type Timing struct {
	SessionTimeout  time.Duration
	ReceiveIdle     time.Duration
	CompleteDisplay time.Duration
	DirectTxTick    time.Duration
}

// DefaultTiming returns the spec's literal timer values.
func DefaultTiming() Timing {
	return Timing{
		SessionTimeout:  90 * time.Second,
		ReceiveIdle:     45 * time.Second,
		CompleteDisplay: 2 * time.Second,
		DirectTxTick:    500 * time.Millisecond,
	}
}

const maxRetries = 5

// senderState holds every field meaningful only while the engine is acting
// as a sender (SendingFragment, WaitingEcho, Broadcasting, DirectTx, or
// the Complete state that follows one of those). Keeping it as its own
// struct, zeroed in one assignment by reset, makes "sender and receiver
// state are never simultaneously populated" (spec.md §3) a property of the
// zero value rather than something every call site must remember to
// uphold.
type senderState struct {
	targetID   string
	fragments  []string
	fragIndex  int
	lastSent   string
	retryCount int
	broadcast  bool // written for parity with the original; never read — spec.md §9

	directTxTotalFragments int
	directTxElapsedStart   time.Time
	directTxCurrentFrag    int
	directTxTracking       bool
}

// receiverState holds every field meaningful only while the engine is
// acting as a receiver (EchoReady, WaitingNext).
type receiverState struct {
	senderID string
	payloads []string
	echoText string
}

func (s *senderState) reset() {
	*s = senderState{directTxCurrentFrag: -1}
}

func (r *receiverState) reset() {
	*r = receiverState{}
}
