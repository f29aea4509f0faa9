package feedback

import (
	"time"

	"podcasttimer/internal/core/timer"
)

const (
	halfwayLowPercent  = 50
	halfwayHighPercent = 55

	toneVolume = 0.45
)

// Profile describes the tone played on entering a stage.
type Profile struct {
	FrequencyHz float64
	Duration    time.Duration
	Volume      float64
	Pulses      int
	// Gap is the start-to-start spacing between pulses.
	Gap time.Duration
}

// Audible reports whether the profile produces any sound.
func (profile Profile) Audible() bool {
	return profile.Pulses > 0 && profile.FrequencyHz > 0 && profile.Duration > 0
}

// ProfileFor returns the tone profile of a stage. GREAT is silent.
func ProfileFor(stage timer.Stage) Profile {
	switch stage {
	case timer.StageYellow:
		return Profile{FrequencyHz: 660, Duration: 180 * time.Millisecond, Volume: toneVolume, Pulses: 1}
	case timer.StageRed:
		return Profile{FrequencyHz: 440, Duration: 220 * time.Millisecond, Volume: toneVolume, Pulses: 1}
	case timer.StageDone:
		return Profile{
			FrequencyHz: 330,
			Duration:    300 * time.Millisecond,
			Volume:      toneVolume,
			Pulses:      2,
			Gap:         380 * time.Millisecond,
		}
	default:
		return Profile{}
	}
}

// Descriptor is the presentation-independent feedback for one timer.
type Descriptor struct {
	StatusText string
	Color      timer.Stage
	// Pulse is set for stages whose indicator animates.
	Pulse bool
	// Backdrop is set when the stage colour also drives the window-level alert.
	Backdrop  bool
	PlayAudio bool
	Audio     Profile
}

// Describe maps a timer snapshot to its feedback descriptor.
func Describe(snapshot timer.Snapshot) Descriptor {
	profile := ProfileFor(snapshot.Stage)
	descriptor := Descriptor{
		Color:     snapshot.Stage,
		Pulse:     snapshot.Stage == timer.StageRed || snapshot.Stage == timer.StageDone,
		Backdrop:  snapshot.Role == timer.RoleEpisode,
		PlayAudio: profile.Audible(),
		Audio:     profile,
	}
	if snapshot.Running {
		descriptor.StatusText = statusText(snapshot)
	}
	return descriptor
}

func statusText(snapshot timer.Snapshot) string {
	if snapshot.Stage == timer.StageDone {
		return "TIME'S UP"
	}

	if snapshot.Role == timer.RoleEpisode {
		switch snapshot.Stage {
		case timer.StageRed:
			return "FINALIZE THE EPISODE"
		case timer.StageYellow:
			return "START SUMMARIZING"
		}
		if snapshot.ElapsedWithin(halfwayLowPercent, halfwayHighPercent) {
			return "HALF WAY THERE"
		}
		return ""
	}

	switch snapshot.Stage {
	case timer.StageRed:
		return "WRAP IT UP"
	case timer.StageYellow:
		return "GET TO THE POINT"
	default:
		return "DOING GREAT"
	}
}

// View pairs a timer snapshot with its descriptor.
type View struct {
	Timer      timer.Snapshot
	Descriptor Descriptor
}

// Frame is what a presentation draws for one tick.
type Frame struct {
	Episode View
	Speaker View
}

// Render builds the frame for a pair of timer snapshots.
func Render(episode, speaker timer.Snapshot) Frame {
	return Frame{
		Episode: View{Timer: episode, Descriptor: Describe(episode)},
		Speaker: View{Timer: speaker, Descriptor: Describe(speaker)},
	}
}
