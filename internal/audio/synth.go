package audio

import (
	"encoding/binary"
	"math"
	"time"
)

const (
	// SampleRate is the playback rate of synthesized tones.
	SampleRate = 44100
	// ChannelCount is the number of interleaved output channels.
	ChannelCount = 2

	bytesPerSample = 2
	fadeFraction   = 0.2
)

// Synthesize renders a sine tone as signed 16-bit little-endian interleaved PCM.
// The last fifth of the tone fades out linearly.
func Synthesize(frequencyHz float64, duration time.Duration, volume float64, sampleRate int) []byte {
	if sampleRate <= 0 || duration <= 0 {
		return nil
	}
	volume = math.Max(0, math.Min(1, volume))

	frames := int(int64(sampleRate) * int64(duration) / int64(time.Second))
	fadeStart := int(float64(frames) * (1 - fadeFraction))
	fadeLength := frames - fadeStart

	pcm := make([]byte, frames*ChannelCount*bytesPerSample)
	for frame := 0; frame < frames; frame++ {
		envelope := 1.0
		if frame >= fadeStart && fadeLength > 0 {
			envelope = float64(frames-frame) / float64(fadeLength)
		}
		sample := math.Sin(2*math.Pi*frequencyHz*float64(frame)/float64(sampleRate)) * volume * envelope
		value := uint16(int16(sample * math.MaxInt16))

		offset := frame * ChannelCount * bytesPerSample
		for channel := 0; channel < ChannelCount; channel++ {
			binary.LittleEndian.PutUint16(pcm[offset+channel*bytesPerSample:], value)
		}
	}
	return pcm
}
