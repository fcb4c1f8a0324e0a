package chatproto

// MessageKey names a localizable status string. The engine never formats
// human language itself; it emits a key plus positional arguments so a
// host-side renderer (package localize) can pick the operator's language.
// This mirrors the teacher/original source's use of Qt's tr() for every
// status string while keeping the engine free of any i18n dependency.
type MessageKey string

const (
	MsgSendingTo           MessageKey = "sending_to"            // target, fragmentCount
	MsgBroadcastingTo      MessageKey = "broadcasting_to"        // target, fragmentCount
	MsgTxFragment          MessageKey = "tx_fragment"             // current, total
	MsgCQFragment          MessageKey = "cq_fragment"             // current, total
	MsgEchoSent            MessageKey = "echo_sent"
	MsgEchoOK              MessageKey = "echo_ok"                 // current, total
	MsgEchoBad             MessageKey = "echo_bad"                // retryCount, maxRetries
	MsgRetriesExhausted    MessageKey = "retries_exhausted"
	MsgMessageSent         MessageKey = "message_sent"            // target
	MsgBroadcastDone       MessageKey = "broadcast_done"          // target
	MsgTimeoutBroadcast    MessageKey = "timeout_broadcast"
	MsgTimeoutSession      MessageKey = "timeout_session"
	MsgHalted              MessageKey = "halted"
	MsgReceivedFrom        MessageKey = "received_from"           // sender
	MsgContinuationFrom    MessageKey = "continuation_from"       // sender
	MsgMessageComplete     MessageKey = "message_complete"        // sender
	MsgDirectTxReady       MessageKey = "direct_tx_ready"          // target, fragmentCount, seconds
	MsgDirectTxProgress    MessageKey = "direct_tx_progress"       // current, total, secondsRemaining
	MsgDirectTxComplete    MessageKey = "direct_tx_complete"       // target
	MsgEncoderFailure      MessageKey = "encoder_failure"
)

// Event is one notification emitted by the engine. Exactly one of the
// typed fields below is meaningful, selected by Kind.
type Event struct {
	Kind EventKind

	// StateChanged
	NewState State

	// StatusMessage
	StatusKey  MessageKey
	StatusArgs []any

	// FragmentProgress
	FragCurrent int
	FragTotal   int
	FragIsEcho  bool

	// MessageReceived
	RxSenderID string
	RxFullText string

	// MessageSentOk
	TargetID string

	// DirectTxReady
	TotalSymbols  int
	NumFragments  int

	// DirectFragmentStarted
	DFCurrent, DFTotal     int
	DFCurrentText, DFNextText string
}

// EventKind discriminates the Event union.
type EventKind int

const (
	EventStateChanged EventKind = iota
	EventStatusMessage
	EventFragmentProgress
	EventMessageReceived
	EventMessageSentOk
	EventDirectTxReady
	EventDirectTxComplete
	EventDirectFragmentStarted
)

// Observer receives every event the engine emits, in emission order,
// synchronously within the public call that triggered it (spec.md §5's
// ordering guarantees). Implementations must not block or call back into
// the engine.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

// OnEvent implements Observer.
func (f ObserverFunc) OnEvent(e Event) { f(e) }

// emit fans an event out to every subscribed observer, in subscription
// order.
func (e *Engine) emit(ev Event) {
	for _, obs := range e.observers {
		obs.OnEvent(ev)
	}
}

func (e *Engine) emitStateChanged(s State) {
	e.emit(Event{Kind: EventStateChanged, NewState: s})
}

func (e *Engine) emitStatus(key MessageKey, args ...any) {
	e.emit(Event{Kind: EventStatusMessage, StatusKey: key, StatusArgs: args})
}

func (e *Engine) emitFragmentProgress(current, total int, isEcho bool) {
	e.emit(Event{Kind: EventFragmentProgress, FragCurrent: current, FragTotal: total, FragIsEcho: isEcho})
}

func (e *Engine) emitMessageReceived(sender, text string) {
	e.emit(Event{Kind: EventMessageReceived, RxSenderID: sender, RxFullText: text})
}

func (e *Engine) emitMessageSentOk(target string) {
	e.emit(Event{Kind: EventMessageSentOk, TargetID: target})
}

func (e *Engine) emitDirectTxReady(totalSymbols, numFragments int) {
	e.emit(Event{Kind: EventDirectTxReady, TotalSymbols: totalSymbols, NumFragments: numFragments})
}

func (e *Engine) emitDirectTxComplete() {
	e.emit(Event{Kind: EventDirectTxComplete})
}

func (e *Engine) emitDirectFragmentStarted(current, total int, currentText, nextText string) {
	e.emit(Event{
		Kind:          EventDirectFragmentStarted,
		DFCurrent:     current,
		DFTotal:       total,
		DFCurrentText: currentText,
		DFNextText:    nextText,
	})
}
