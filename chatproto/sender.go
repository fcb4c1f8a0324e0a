package chatproto

import (
	"strings"

	"github.com/Philippe-Colt/ft8chat/ft8wire"
)

// SendMessage begins an echo-mode session: fragment text, target it at
// targetID, and start transmitting. Any session in progress is aborted
// first. A text that filters down to nothing starts no session and emits
// no events (spec.md §7's "empty message" disposition).
func (e *Engine) SendMessage(targetID, text string) {
	e.reset()

	e.sender.targetID = ft8wire.PadStationID(targetID)
	e.sender.fragments = ft8wire.FragmentMessage(e.myID, e.sender.targetID, text)
	e.sender.fragIndex = 0
	e.sender.retryCount = 0

	if len(e.sender.fragments) == 0 {
		return
	}

	e.setState(SendingFragment)
	e.clock.Schedule(TimerSessionTimeout, e.timing.SessionTimeout, e.onTimeout)
	e.emitStatus(MsgSendingTo, e.sender.targetID, len(e.sender.fragments))
}

// SendBroadcast begins a broadcast session: fragment text with a trailing
// /AR terminator and transmit continuously with no echo awaited.
func (e *Engine) SendBroadcast(targetID, text string) {
	e.reset()

	e.sender.broadcast = true
	e.sender.targetID = ft8wire.PadStationID(targetID)
	e.sender.fragments = ft8wire.FragmentBroadcast(e.myID, e.sender.targetID, text)
	e.sender.fragIndex = 0

	if len(e.sender.fragments) == 0 {
		return
	}

	e.setState(Broadcasting)
	e.clock.Schedule(TimerSessionTimeout, e.timing.SessionTimeout, e.onTimeout)
	e.emitStatus(MsgBroadcastingTo, e.sender.targetID, len(e.sender.fragments))
}

// NextTxText returns the slot text the host should transmit in its next
// TX window, or "" if the engine has nothing to send. Called once per TX
// slot (spec.md §2's pull model).
func (e *Engine) NextTxText() string {
	switch e.state {
	case SendingFragment:
		return e.nextTxSendingFragment()
	case Broadcasting:
		return e.nextTxBroadcasting()
	case EchoReady:
		return e.nextTxEchoReady()
	default:
		return ""
	}
}

func (e *Engine) nextTxSendingFragment() string {
	if e.sender.fragIndex >= len(e.sender.fragments) {
		e.setState(Idle)
		return ""
	}
	e.sender.lastSent = e.sender.fragments[e.sender.fragIndex]
	e.setState(WaitingEcho)

	e.emitFragmentProgress(e.sender.fragIndex+1, len(e.sender.fragments), false)
	e.emitStatus(MsgTxFragment, e.sender.fragIndex+1, len(e.sender.fragments))
	return e.sender.lastSent
}

func (e *Engine) nextTxBroadcasting() string {
	if e.sender.fragIndex >= len(e.sender.fragments) {
		e.setState(Idle)
		return ""
	}
	frag := e.sender.fragments[e.sender.fragIndex]
	e.sender.fragIndex++

	e.emitFragmentProgress(e.sender.fragIndex, len(e.sender.fragments), false)
	e.emitStatus(MsgCQFragment, e.sender.fragIndex, len(e.sender.fragments))

	if e.sender.fragIndex >= len(e.sender.fragments) {
		e.completeSend(MsgBroadcastDone)
	}

	return frag
}

// completeSend stops the session timeout, transitions through Complete,
// emits the success notifications, and schedules the auto-return to Idle
// spec.md §3 describes ("a short display delay (2 s)").
func (e *Engine) completeSend(doneKey MessageKey) {
	target := e.sender.targetID
	e.clock.Cancel(TimerSessionTimeout)
	e.setState(Complete)
	e.emitMessageSentOk(target)
	e.emitStatus(doneKey, target)
	e.clock.Schedule(TimerComplete, e.timing.CompleteDisplay, func() {
		if e.state == Complete {
			e.setState(Idle)
		}
	})
}

// onTimeout fires after 90s of session inactivity (spec.md §7's "session
// timeout" disposition).
func (e *Engine) onTimeout() {
	if e.state == Idle || e.state == Complete {
		return
	}
	if e.state == Broadcasting {
		e.emitStatus(MsgTimeoutBroadcast)
	} else {
		e.emitStatus(MsgTimeoutSession)
	}
	e.reset()
}

// processEcho implements spec.md §4.3's sender-echo-mode step 3: compare
// the incoming decode against the last-sent fragment by equal prefix over
// the shorter trimmed length. This is the open question from spec.md §9 —
// reproduced exactly, including the tolerance for a truncated echo.
func (e *Engine) processEcho(text string) {
	expected := strings.TrimSpace(e.sender.lastSent)
	received := strings.TrimSpace(text)

	n := min(len(expected), len(received))
	if expected[:n] == received[:n] {
		e.onEchoMatch()
	} else {
		e.onEchoMismatch()
	}
}

func (e *Engine) onEchoMatch() {
	e.emitStatus(MsgEchoOK, e.sender.fragIndex+1, len(e.sender.fragments))
	e.sender.retryCount = 0
	e.sender.fragIndex++

	if e.sender.fragIndex >= len(e.sender.fragments) {
		e.completeSend(MsgMessageSent)
		return
	}
	e.setState(SendingFragment)
}

func (e *Engine) onEchoMismatch() {
	e.sender.retryCount++
	if e.sender.retryCount >= maxRetries {
		e.emitStatus(MsgRetriesExhausted)
		e.reset()
		return
	}
	e.emitStatus(MsgEchoBad, e.sender.retryCount, maxRetries)
	e.setState(SendingFragment)
}
