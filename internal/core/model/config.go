package model

import "fmt"

// TimerDuration is a configured countdown length.
type TimerDuration struct {
	Minutes int
	Seconds int
}

// TotalSeconds returns the duration in whole seconds.
func (duration TimerDuration) TotalSeconds() int {
	return duration.Minutes*60 + duration.Seconds
}

// String formats the duration as MM:SS.
func (duration TimerDuration) String() string {
	return fmt.Sprintf("%02d:%02d", duration.Minutes, duration.Seconds)
}

// DurationFromSeconds splits a second count into minutes and seconds.
func DurationFromSeconds(total int) TimerDuration {
	if total < 0 {
		total = 0
	}
	return TimerDuration{Minutes: total / 60, Seconds: total % 60}
}

// SessionConfig contains the settings the session controller owns.
type SessionConfig struct {
	Episode      TimerDuration
	Speaker      TimerDuration
	AudioEnabled bool
}
