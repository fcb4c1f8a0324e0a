package chatproto

import (
	"strings"

	"github.com/Philippe-Colt/ft8chat/ft8wire"
)

// ProcessIncoming feeds one decoded FT8 text into the engine. The engine
// decides, from its own state, whether the text is an echo of something it
// sent, a header frame addressed to it, a continuation of a message
// already in progress, or noise to ignore (spec.md §4.3 and §4.4).
func (e *Engine) ProcessIncoming(text string) {
	switch e.state {
	case WaitingEcho:
		e.processEcho(text)
	case EchoReady, WaitingNext:
		e.processContinuation(text)
	default:
		e.processHeader(text)
	}
}

// processHeader looks for a 5-character "DDDD " header frame addressed to
// this station. Anything else — noise, a header for another station, an
// unparseable frame — is silently ignored, matching the original's
// tolerance for a noisy channel.
func (e *Engine) processHeader(text string) {
	if !ft8wire.IsHeader(text) {
		return
	}
	if ft8wire.HeaderTarget(text) != e.myID {
		return
	}

	sender := ft8wire.HeaderSender(text)
	payload := ft8wire.HeaderPayload(text)

	if ft8wire.EndsWithAR(payload) {
		e.deliverSingleSlot(sender, payload)
		return
	}

	e.receiver.reset()
	e.receiver.senderID = sender
	e.receiver.payloads = append(e.receiver.payloads, payload)
	e.receiver.echoText = text

	e.emitStatus(MsgReceivedFrom, sender)
	e.setState(EchoReady)
}

// processContinuation handles every frame received once a message is
// already in progress: a bare continuation payload (no header), echoed
// back verbatim as the receiver's own next TX text, appended to the
// buffered payloads; delivery triggers when it carries /AR. A fresh header
// addressed to us, from any sender, restarts reception rather than being
// appended; a header addressed to another station is dropped (spec.md
// §4.3 rule 5).
func (e *Engine) processContinuation(text string) {
	if text == "" {
		return
	}

	if ft8wire.IsHeader(text) {
		if ft8wire.HeaderTarget(text) == e.myID {
			e.processHeader(text)
		}
		return
	}

	e.clock.Cancel(TimerReceiveIdle)

	e.receiver.payloads = append(e.receiver.payloads, text)
	e.receiver.echoText = text

	if ft8wire.EndsWithAR(text) {
		e.deliverReceivedMessage()
		return
	}

	e.emitStatus(MsgContinuationFrom, e.receiver.senderID)
	e.setState(EchoReady)
}

// deliverSingleSlot handles a message that fits entirely within the
// header frame's own payload slot, terminated by /AR in the same frame
// that announced it (spec.md §4.4's single-slot broadcast case).
func (e *Engine) deliverSingleSlot(sender, payload string) {
	e.receiver.reset()
	e.receiver.senderID = sender
	e.receiver.payloads = append(e.receiver.payloads, payload)
	e.deliverReceivedMessage()
}

// nextTxEchoReady is the EchoReady branch of NextTxText: the receiver's
// job is simply to retransmit what it just heard, acknowledging receipt.
// The receive-idle timer is armed here, at the point the echo is actually
// pulled for transmission, not when the header first arrived — a session
// whose echo the host never pulls is left dangling rather than delivered,
// matching the original.
func (e *Engine) nextTxEchoReady() string {
	e.setState(WaitingNext)
	e.emitStatus(MsgEchoSent)
	e.clock.Schedule(TimerReceiveIdle, e.timing.ReceiveIdle, e.onRxComplete)
	return e.receiver.echoText
}

// deliverReceivedMessage concatenates the buffered payload fragments,
// strips the trailing /AR sigil from the terminating fragment only, and
// emits the reassembled text. A single space is inserted between
// fragments whenever neither side of the join already has one, since the
// wire format drops a payload's trailing spaces when it is 8 characters
// wide; the non-terminating payloads are joined un-trimmed so their own
// leading/trailing spaces can drive that logic, and the whole string is
// trimmed exactly once at the end.
func (e *Engine) deliverReceivedMessage() {
	var b strings.Builder
	last := len(e.receiver.payloads) - 1
	for i, p := range e.receiver.payloads {
		if i == last {
			p = ft8wire.StripAR(p)
		}
		if i > 0 && b.Len() > 0 && !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(p, " ") {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}

	full := strings.TrimSpace(b.String())
	sender := e.receiver.senderID

	e.clock.Cancel(TimerReceiveIdle)
	e.emitMessageReceived(sender, full)
	e.emitStatus(MsgMessageComplete, sender)
	e.receiver.reset()
	e.setState(Idle)
}

// onRxComplete fires when 45s pass with no further continuation frame.
// Whatever was buffered is delivered as-is rather than discarded, since a
// partial message is still useful to the operator (spec.md §7). It only
// acts once the echo has actually been pulled (state WaitingNext) or in
// Idle; a session still sitting in EchoReady, or any other state, is left
// alone.
func (e *Engine) onRxComplete() {
	if e.state != WaitingNext && e.state != Idle {
		return
	}
	if len(e.receiver.payloads) == 0 {
		e.receiver.reset()
		e.setState(Idle)
		return
	}
	e.deliverReceivedMessage()
}
