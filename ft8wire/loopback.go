package ft8wire

import (
	"fmt"
	"strings"
)

// LoopbackEncoder is a deterministic Encoder stand-in for tests and the
// demo host binary: it derives tone indices from the message bytes instead
// of running real FT8 LDPC/Costas encoding, which is out of scope for this
// repository (spec.md §1).
type LoopbackEncoder struct {
	// FailOn, if non-empty, makes Encode return zero tones for any message
	// containing this substring, to exercise the "encoder failure" error
	// path deterministically.
	FailOn string
}

// Encode implements Encoder.
func (e *LoopbackEncoder) Encode(paddedMessage string) ([]int, error) {
	if e.FailOn != "" && strings.Contains(paddedMessage, e.FailOn) {
		return nil, nil
	}
	tones := make([]int, SymbolsPerFrame)
	for i := range tones {
		tones[i] = int(paddedMessage[i%len(paddedMessage)]) % 8
	}
	return tones, nil
}

// LoopbackWaveformGenerator is a deterministic WaveformGenerator stand-in:
// it writes a tone-indexed synthetic waveform instead of rendering real
// Gaussian-filtered FSK audio.
type LoopbackWaveformGenerator struct{}

// Generate implements WaveformGenerator.
func (LoopbackWaveformGenerator) Generate(tones []int, sampleRate int, bt float64, freqHz float64, dst []float32) error {
	need := len(tones) * SamplesPerSymbol
	if len(dst) < need {
		return fmt.Errorf("ft8wire: destination buffer too small: need %d, have %d", need, len(dst))
	}
	for i, tone := range tones {
		base := i * SamplesPerSymbol
		for j := 0; j < SamplesPerSymbol; j++ {
			dst[base+j] = float32(tone) / 8.0
		}
	}
	return nil
}
