package session

import (
	"time"

	"podcasttimer/internal/core/feedback"
	"podcasttimer/internal/core/timer"
)

// State represents the session mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// EventType defines the type of session event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventStage       EventType = "stage"
	EventSpeakerNext EventType = "speaker_next"
	EventEdit        EventType = "edit"
	EventSettings    EventType = "settings"
)

// EditPhase describes an edit event.
type EditPhase string

const (
	EditBegin    EditPhase = "begin"
	EditCommit   EditPhase = "commit"
	EditCancel   EditPhase = "cancel"
	EditRejected EditPhase = "rejected"
)

// Snapshot is a consistent copy of both timers and the session flags.
type Snapshot struct {
	SessionID    string
	State        State
	EditPending  bool
	AudioEnabled bool
	Episode      timer.Snapshot
	Speaker      timer.Snapshot
}

// Timer returns the snapshot of the timer with the given role.
func (snapshot Snapshot) Timer(role timer.Role) timer.Snapshot {
	if role == timer.RoleSpeaker {
		return snapshot.Speaker
	}
	return snapshot.Episode
}

// Frame renders the snapshot for presentation.
func (snapshot Snapshot) Frame() feedback.Frame {
	return feedback.Render(snapshot.Episode, snapshot.Speaker)
}

// Event represents a session update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	// Cue is set for EventStage.
	Cue *feedback.Cue
	// Edit and Drafts are set for EventEdit.
	Edit   EditPhase
	Drafts EditRequest
	Err    error
	At     time.Time
}
