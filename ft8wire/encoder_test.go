package ft8wire

import "testing"

func TestPadMessagePadsAndTruncates(t *testing.T) {
	padded := PadMessage("0102 HI")
	if len(padded) != PaddedMessageLen {
		t.Fatalf("len(padded) = %d, want %d", len(padded), PaddedMessageLen)
	}
	long := PadMessage("0123456789012345678901234567890123456789")
	if len(long) != PaddedMessageLen {
		t.Fatalf("len(truncated) = %d, want %d", len(long), PaddedMessageLen)
	}
}

func TestTotalSymbolsCeilingDivision(t *testing.T) {
	// One fragment: 720000 samples / 7680 = 93.75 -> ceil = 94
	if got := TotalSymbols(1); got != 94 {
		t.Fatalf("TotalSymbols(1) = %d, want 94", got)
	}
	if got := TotalSymbols(3); got != 3*94 {
		t.Fatalf("TotalSymbols(3) = %d, want %d", got, 3*94)
	}
}

func TestLoopbackEncoderProducesFullFrame(t *testing.T) {
	enc := &LoopbackEncoder{}
	tones, err := enc.Encode(PadMessage("0102 HELLO"))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(tones) != SymbolsPerFrame {
		t.Fatalf("len(tones) = %d, want %d", len(tones), SymbolsPerFrame)
	}
	for _, tone := range tones {
		if tone < 0 || tone > 7 {
			t.Fatalf("tone %d out of 8-FSK range", tone)
		}
	}
}

func TestLoopbackEncoderFailOn(t *testing.T) {
	enc := &LoopbackEncoder{FailOn: "BOOM"}
	tones, err := enc.Encode(PadMessage("0102 BOOM"))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(tones) != 0 {
		t.Fatalf("expected zero tones on forced failure, got %d", len(tones))
	}
}

func TestLoopbackWaveformGeneratorFillsDestination(t *testing.T) {
	gen := LoopbackWaveformGenerator{}
	tones := make([]int, SymbolsPerFrame)
	dst := make([]float32, SamplesPerFrame)
	if err := gen.Generate(tones, SampleRate, GaussianBT, 1500, dst); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
}

func TestLoopbackWaveformGeneratorRejectsShortDestination(t *testing.T) {
	gen := LoopbackWaveformGenerator{}
	tones := make([]int, SymbolsPerFrame)
	dst := make([]float32, 10)
	if err := gen.Generate(tones, SampleRate, GaussianBT, 1500, dst); err == nil {
		t.Fatal("Generate() with undersized destination should error")
	}
}
