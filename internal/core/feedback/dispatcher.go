package feedback

import (
	"sync"
	"time"

	"podcasttimer/internal/core/timer"
	"podcasttimer/internal/logger"
)

// Player plays a tone without blocking the caller for the tone's duration.
type Player interface {
	PlayTone(frequencyHz float64, duration time.Duration, volume float64)
}

// Cue is a stage-entry event for one timer.
type Cue struct {
	Role  timer.Role
	Stage timer.Stage
	// Audio carries the session's audio_enabled flag at the time of the tick.
	Audio bool
}

// Dispatcher turns cues into fire-and-forget audio playback.
type Dispatcher struct {
	player   Player
	inflight sync.WaitGroup
	sleep    func(time.Duration)
}

// NewDispatcher creates a dispatcher. A nil player disables audio entirely.
func NewDispatcher(player Player) *Dispatcher {
	return &Dispatcher{player: player, sleep: time.Sleep}
}

// Dispatch starts playback for the cue and returns immediately. It reports
// whether a playback was started.
func (dispatcher *Dispatcher) Dispatch(cue Cue) bool {
	profile := ProfileFor(cue.Stage)
	if !cue.Audio || !profile.Audible() || dispatcher.player == nil {
		return false
	}

	dispatcher.inflight.Add(1)
	go dispatcher.play(cue, profile)
	return true
}

// Wait blocks until every started playback has been handed to the player.
func (dispatcher *Dispatcher) Wait() {
	dispatcher.inflight.Wait()
}

func (dispatcher *Dispatcher) play(cue Cue, profile Profile) {
	defer dispatcher.inflight.Done()
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Warn("audio cue failed", "role", cue.Role, "stage", cue.Stage, "panic", recovered)
		}
	}()

	logger.Debug("audio cue", "role", cue.Role, "stage", cue.Stage, "hz", profile.FrequencyHz)
	for pulse := 0; pulse < profile.Pulses; pulse++ {
		if pulse > 0 && profile.Gap > 0 {
			dispatcher.sleep(profile.Gap)
		}
		dispatcher.player.PlayTone(profile.FrequencyHz, profile.Duration, profile.Volume)
	}
}
