package timer

import (
	"errors"
	"fmt"
)

// Stage is the warning level of a countdown.
type Stage string

const (
	StageGreat  Stage = "great"
	StageYellow Stage = "yellow"
	StageRed    Stage = "red"
	StageDone   Stage = "done"
)

// Role identifies which of the two session timers a Timer is.
type Role string

const (
	RoleEpisode Role = "episode"
	RoleSpeaker Role = "speaker"
)

// Label returns the display name of the role.
func (role Role) Label() string {
	switch role {
	case RoleEpisode:
		return "Episode Timer"
	case RoleSpeaker:
		return "Speaker Timer"
	default:
		return string(role)
	}
}

const (
	MaxMinutes = 99
	MaxSeconds = 59

	yellowPercent = 75
	redPercent    = 90
)

// ErrRunning indicates the timer cannot be edited while it runs.
var ErrRunning = errors.New("timer is running")

// Timer is a single countdown with a stage classifier.
type Timer struct {
	role      Role
	total     int
	remaining int
	running   bool
	stage     Stage
}

// New creates an idle timer with the given duration.
func New(role Role, minutes, seconds int) *Timer {
	countdown := &Timer{role: role, stage: StageGreat}
	countdown.setTime(minutes, seconds)
	return countdown
}

// Classify returns the stage for the given remaining and total seconds.
func Classify(remaining, total int) Stage {
	if remaining <= 0 {
		return StageDone
	}
	if total <= 0 {
		return StageGreat
	}
	elapsed := total - remaining
	switch {
	case elapsed*100 >= total*redPercent:
		return StageRed
	case elapsed*100 >= total*yellowPercent:
		return StageYellow
	default:
		return StageGreat
	}
}

// Role returns the timer role.
func (countdown *Timer) Role() Role {
	return countdown.role
}

// Stage returns the current stage.
func (countdown *Timer) Stage() Stage {
	return countdown.stage
}

// Remaining returns the remaining seconds.
func (countdown *Timer) Remaining() int {
	return countdown.remaining
}

// Total returns the configured seconds.
func (countdown *Timer) Total() int {
	return countdown.total
}

// Running reports whether the timer has been started.
func (countdown *Timer) Running() bool {
	return countdown.running
}

// Editable reports whether SetTime is allowed.
func (countdown *Timer) Editable() bool {
	return !countdown.running
}

// SetTime configures a new duration. Values are clamped to 99:59.
func (countdown *Timer) SetTime(minutes, seconds int) error {
	if countdown.running {
		return fmt.Errorf("set %s time: %w", countdown.role, ErrRunning)
	}
	countdown.setTime(minutes, seconds)
	return nil
}

// Start marks the timer as running.
func (countdown *Timer) Start() {
	countdown.running = true
}

// Tick advances the countdown by one second. The returned bool is true only
// when the stage changed.
func (countdown *Timer) Tick() (Stage, bool) {
	if !countdown.running {
		return countdown.stage, false
	}
	if countdown.remaining > 0 {
		countdown.remaining--
	}
	next := Classify(countdown.remaining, countdown.total)
	if next == countdown.stage {
		return countdown.stage, false
	}
	countdown.stage = next
	return next, true
}

// Stop halts the timer and restores its configured duration.
func (countdown *Timer) Stop() {
	countdown.running = false
	countdown.rewind()
}

// ResetSelf restores the configured duration without changing running.
func (countdown *Timer) ResetSelf() {
	countdown.rewind()
}

// Snapshot returns a copy of the timer state.
func (countdown *Timer) Snapshot() Snapshot {
	return Snapshot{
		Role:      countdown.role,
		Total:     countdown.total,
		Remaining: countdown.remaining,
		Running:   countdown.running,
		Stage:     countdown.stage,
	}
}

func (countdown *Timer) setTime(minutes, seconds int) {
	countdown.total = clamp(minutes, 0, MaxMinutes)*60 + clamp(seconds, 0, MaxSeconds)
	countdown.rewind()
}

func (countdown *Timer) rewind() {
	countdown.remaining = countdown.total
	countdown.stage = StageGreat
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
