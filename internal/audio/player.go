package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"podcasttimer/internal/logger"
)

const drainPoll = 10 * time.Millisecond

// TonePlayer plays synthesized tones on the default output device.
// The device is opened lazily on the first tone; when it cannot be opened
// every call is a no-op.
type TonePlayer struct {
	once    sync.Once
	context *oto.Context
	err     error
	open    func() (*oto.Context, error)
}

// NewTonePlayer creates a player bound to the default output device.
func NewTonePlayer() *TonePlayer {
	return &TonePlayer{open: openContext}
}

// Available opens the device if needed and reports whether tones can be played.
func (player *TonePlayer) Available() bool {
	return player.device() != nil
}

// PlayTone starts a tone and returns without waiting for it to finish.
func (player *TonePlayer) PlayTone(frequencyHz float64, duration time.Duration, volume float64) {
	device := player.device()
	if device == nil {
		return
	}
	pcm := Synthesize(frequencyHz, duration, volume, SampleRate)
	if len(pcm) == 0 {
		return
	}

	stream := device.NewPlayer(bytes.NewReader(pcm))
	stream.Play()
	go func() {
		for stream.IsPlaying() {
			time.Sleep(drainPoll)
		}
		if err := stream.Close(); err != nil {
			logger.Debug("close audio stream", "err", err)
		}
	}()
}

func (player *TonePlayer) device() *oto.Context {
	player.once.Do(func() {
		player.context, player.err = player.open()
		if player.err != nil {
			logger.Warn("audio output unavailable, cues disabled", "err", player.err)
		}
	})
	return player.context
}

func openContext() (*oto.Context, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready
	return context, nil
}
