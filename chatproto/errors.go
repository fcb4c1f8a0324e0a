package chatproto

import "errors"

var (
	// errEncoderUnavailable is returned by SendDirect when the engine was
	// constructed without an Encoder/WaveformGenerator pair.
	errEncoderUnavailable = errors.New("chatproto: direct TX requires an encoder and waveform generator")

	// errBufferTooSmall is returned by SendDirect when dst cannot hold the
	// rendered waveform for every fragment.
	errBufferTooSmall = errors.New("chatproto: destination buffer too small for direct TX waveform")
)
