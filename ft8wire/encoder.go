package ft8wire

// These constants mirror the FT8 symbol/sample-rate relationships used by
// the teacher decoder's config.go (FT8SymbolCount, FT8SlotTime) and the
// original ChatProtocol.cpp's FT8_NSYM/FT8_NSPS/SAMPLES_PER_PERIOD, so the
// direct-TX scheduler's arithmetic is checked against a real FT8
// implementation rather than invented from scratch.
const (
	// PaddedMessageLen is the fixed-width message buffer FT8 encoders
	// expect, space-padded.
	PaddedMessageLen = 37

	// SymbolsPerFrame is the number of channel symbols in one FT8 frame.
	SymbolsPerFrame = 79

	// SampleRate is the audio sample rate the direct-TX scheduler renders at.
	SampleRate = 48000

	// SamplesPerSymbol is samples-per-symbol at SampleRate (7680 = 4*1920).
	SamplesPerSymbol = 4 * 1920

	// SamplesPerFrame is the active waveform length of one encoded frame
	// (79 * 7680 = 606720 samples, ~12.64s).
	SamplesPerFrame = SymbolsPerFrame * SamplesPerSymbol

	// SamplesPerPeriod is the full 15-second slot period in samples
	// (720000), including the trailing silence after SamplesPerFrame.
	SamplesPerPeriod = 15 * SampleRate

	// GaussianBT is the Gaussian filter bandwidth-time product used by the
	// waveform generator.
	GaussianBT = 2.0

	// modulatorSymbolRate is the frame rate the host's symbol-based
	// modulator expects tone counts at (1920 samples/symbol at 12kHz,
	// quadrupled to this package's 48kHz samples-per-symbol).
	modulatorSymbolRate = 4 * 1920
)

// Encoder turns a padded 37-character FT8 message into a sequence of tone
// indices. Implementations are supplied by the host; the FT8 physical
// layer (Costas sync, LDPC, CRC) is out of scope for this package.
type Encoder interface {
	// Encode returns SymbolsPerFrame tone indices for paddedMessage, or an
	// error if the message could not be encoded. An implementation that
	// returns zero tones without an error is treated as an encoder
	// failure by the scheduler (spec's "encoder failure" error category).
	Encode(paddedMessage string) (tones []int, err error)
}

// WaveformGenerator renders a tone sequence into real-valued audio samples
// written directly into dst, mirroring gen_ft8wave_'s in-place buffer
// write so the caller controls the destination offset.
type WaveformGenerator interface {
	// Generate writes len(tones)*SamplesPerSymbol samples into dst[:] at
	// carrier frequency freqHz, Gaussian BT bt, sample rate sampleRate.
	Generate(tones []int, sampleRate int, bt float64, freqHz float64, dst []float32) error
}

// PadMessage space-pads text to PaddedMessageLen, truncating if longer —
// the fixed-width buffer FT8 encoders require.
func PadMessage(text string) string {
	if len(text) >= PaddedMessageLen {
		return text[:PaddedMessageLen]
	}
	return leftJustify(text, PaddedMessageLen)
}

// TotalSymbols computes the symbol count a host's symbol-based modulator
// needs to cover numFragments full 15-second periods, rounding up.
func TotalSymbols(numFragments int) int {
	totalSamples := numFragments * SamplesPerPeriod
	return (totalSamples + modulatorSymbolRate - 1) / modulatorSymbolRate
}
