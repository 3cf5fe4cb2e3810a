// Package audioline demodulates the receiver's input bit from an audio
// front end via gordonklaus/portaudio, an alternative to gpioline for
// setups that feed the WWVB receiver's AM envelope into a sound card
// input instead of a GPIO-attached demodulator chip. Declared in the
// teacher's go.mod with no in-tree caller; this adapter is what
// exercises it.
package audioline

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/kf0wwv/wwvbrx/internal/diag"
)

// tickRateHz is the receiver's tick rate; Open divides the audio sample
// rate by it to get the number of frames reduced into one tick.
const tickRateHz = 60

// BitReader buffers raw audio samples and reduces each 1/60s window to
// a single demodulated bit by comparing RMS amplitude against a
// threshold, implementing inputsource.BitReader.
type BitReader struct {
	stream         *portaudio.Stream
	buf            []int16
	samplesPerTick int
	threshold      int32
	log            *diag.Logger
}

// Open initializes portaudio and opens the default input device at
// sampleRate (commonly 44100 or 48000), buffering sampleRate/60 frames
// per ReadBit call.
func Open(sampleRate float64, threshold int32, log *diag.Logger) (*BitReader, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audioline: initializing portaudio: %w", err)
	}

	samplesPerTick := int(sampleRate / tickRateHz)
	buf := make([]int16, samplesPerTick)

	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, samplesPerTick, buf)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("audioline: opening default input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("audioline: starting stream: %w", err)
	}

	return &BitReader{
		stream:         stream,
		buf:            buf,
		samplesPerTick: samplesPerTick,
		threshold:      threshold,
		log:            log,
	}, nil
}

// ReadBit blocks for one tick's worth of audio and returns 1 if the
// window's RMS amplitude exceeds the configured threshold (the AM
// carrier's "on" envelope), else 0.
func (b *BitReader) ReadBit() (byte, error) {
	if err := b.stream.Read(); err != nil {
		return 0, fmt.Errorf("audioline: reading stream: %w", err)
	}

	var sumSq int64
	for _, s := range b.buf {
		v := int64(s)
		sumSq += v * v
	}
	meanSq := sumSq / int64(len(b.buf))

	if meanSq > int64(b.threshold)*int64(b.threshold) {
		return 1, nil
	}
	return 0, nil
}

// Close stops the stream and releases portaudio.
func (b *BitReader) Close() error {
	if err := b.stream.Close(); err != nil {
		return fmt.Errorf("audioline: closing stream: %w", err)
	}
	return portaudio.Terminate()
}
