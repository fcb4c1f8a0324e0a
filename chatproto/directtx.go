package chatproto

import (
	"fmt"
	"time"

	"github.com/Philippe-Colt/ft8chat/ft8wire"
)

// directTxSlotPeriod is the wall-clock duration of one FT8 TX period,
// independent of sample rate, matching ChatProtocol.cpp's use of
// FT8_SLOT_TIME for elapsed-time fragment tracking.
const directTxSlotPeriod = 15 * time.Second

// SendDirect renders text as one continuous waveform covering every
// fragment back-to-back, for hosts that drive their own audio pipeline
// instead of pulling text slot-by-slot (spec's direct-TX mode). It
// requires an Encoder and WaveformGenerator to have been supplied at
// construction.
//
// Fragment i is rendered at the start of its own SamplesPerPeriod-long
// period of dst and the rest of that period is zero-filled, so dst must
// hold at least numFragments*SamplesPerPeriod samples
// (TotalSymbols(numFragments)*SamplesPerSymbol always does). SendDirect
// returns nil on success, or an error if encoding or rendering failed or
// dst is too small.
func (e *Engine) SendDirect(targetID, text string, freqHz float64, dst []float32) error {
	e.reset()

	target := ft8wire.PadStationID(targetID)
	fragments := ft8wire.FragmentBroadcast(e.myID, target, text)
	if len(fragments) == 0 {
		return nil
	}

	if e.encoder == nil || e.waveforms == nil {
		e.emitStatus(MsgEncoderFailure)
		return errEncoderUnavailable
	}

	for i, frag := range fragments {
		tones, err := e.encoder.Encode(ft8wire.PadMessage(frag))
		if err == nil && len(tones) == 0 {
			err = fmt.Errorf("chatproto: encoder returned no tones for %q", frag)
		}
		if err != nil {
			e.emitStatus(MsgEncoderFailure)
			return err
		}
		offset := i * ft8wire.SamplesPerPeriod
		n := len(tones) * ft8wire.SamplesPerSymbol
		if n > ft8wire.SamplesPerPeriod || offset+ft8wire.SamplesPerPeriod > len(dst) {
			return errBufferTooSmall
		}
		if err := e.waveforms.Generate(tones, ft8wire.SampleRate, ft8wire.GaussianBT, freqHz, dst[offset:offset+n]); err != nil {
			e.emitStatus(MsgEncoderFailure)
			return err
		}
		clear(dst[offset+n : offset+ft8wire.SamplesPerPeriod])
	}

	e.sender.broadcast = true
	e.sender.targetID = target
	e.sender.fragments = fragments
	e.sender.directTxTotalFragments = len(fragments)
	e.sender.directTxCurrentFrag = -1

	totalSymbols := ft8wire.TotalSymbols(len(fragments))
	e.setState(DirectTx)
	e.emitDirectTxReady(totalSymbols, len(fragments))
	return nil
}

// StartDirectTxTracking begins the periodic progress tick a host uses to
// drive a UI while a direct-TX waveform plays out. The engine itself does
// not touch audio; it only tracks elapsed wall-clock time against the
// known fragment boundaries.
func (e *Engine) StartDirectTxTracking() {
	if e.state != DirectTx {
		return
	}
	e.sender.directTxElapsedStart = e.clock.Now()
	e.sender.directTxTracking = true
	e.sender.directTxCurrentFrag = -1
	e.clock.SchedulePeriodic(TimerDirectTxTick, e.timing.DirectTxTick, e.onDirectTxTick)
}

// onDirectTxTick recomputes which fragment is currently playing from
// elapsed time and emits a DirectFragmentStarted event whenever that
// index advances.
func (e *Engine) onDirectTxTick() {
	if !e.sender.directTxTracking {
		return
	}
	elapsed := e.clock.Now().Sub(e.sender.directTxElapsedStart)
	frag := int(elapsed / directTxSlotPeriod)
	if frag >= e.sender.directTxTotalFragments {
		frag = e.sender.directTxTotalFragments - 1
	}

	if frag != e.sender.directTxCurrentFrag {
		e.sender.directTxCurrentFrag = frag
		var nextText string
		if frag+1 < len(e.sender.fragments) {
			nextText = e.sender.fragments[frag+1]
		}
		e.emitDirectFragmentStarted(frag+1, e.sender.directTxTotalFragments, e.sender.fragments[frag], nextText)
		e.emitFragmentProgress(frag+1, e.sender.directTxTotalFragments, false)

		remaining := time.Duration(e.sender.directTxTotalFragments)*directTxSlotPeriod - elapsed
		if remaining < 0 {
			remaining = 0
		}
		e.emitStatus(MsgDirectTxProgress, frag+1, e.sender.directTxTotalFragments, int(remaining/time.Second))
	}
}

// NotifyDirectTxComplete tells the engine the host's audio pipeline has
// finished playing the rendered waveform. It mirrors the final steps of a
// successful echo-mode send: announce the last fragment as started,
// transition through Complete with the usual 2s auto-return to Idle, and
// emit messageSentOk exactly once.
func (e *Engine) NotifyDirectTxComplete() {
	if e.state != DirectTx {
		return
	}
	total := e.sender.directTxTotalFragments
	last := ""
	if total > 0 {
		last = e.sender.fragments[total-1]
	}

	e.clock.Cancel(TimerDirectTxTick)
	e.sender.directTxTracking = false
	e.sender.directTxCurrentFrag = total - 1

	e.emitDirectFragmentStarted(total, total, last, "")
	e.emitFragmentProgress(total, total, false)
	e.completeSend(MsgDirectTxComplete)
	e.emitDirectTxComplete()
}
