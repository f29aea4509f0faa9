package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"podcasttimer/internal/core/model"
	"podcasttimer/internal/core/timer"
)

var (
	// ErrInvalidState indicates the operation is not allowed in the current state.
	ErrInvalidState = errors.New("operation not allowed in current state")
	// ErrEditPending indicates an edit must be committed or cancelled first.
	ErrEditPending = errors.New("edit in progress")
	// ErrNoEdit indicates there is no edit to commit or cancel.
	ErrNoEdit = errors.New("no edit in progress")
	// ErrClosed indicates the controller has been closed.
	ErrClosed = errors.New("session closed")
)

// Edit field names reported by InputError.
const (
	FieldEpisodeMinutes = "episode.minutes"
	FieldEpisodeSeconds = "episode.seconds"
	FieldSpeakerMinutes = "speaker.minutes"
	FieldSpeakerSeconds = "speaker.seconds"
)

// InputError lists the edit fields that could not be parsed.
type InputError struct {
	Fields []string
}

func (err *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", strings.Join(err.Fields, ", "))
}

// Has reports whether field was rejected.
func (err *InputError) Has(field string) bool {
	for _, candidate := range err.Fields {
		if candidate == field {
			return true
		}
	}
	return false
}

// Draft holds the raw text of one timer's edit inputs.
type Draft struct {
	Minutes string
	Seconds string
}

// DraftFor formats a duration the way the edit inputs display it.
func DraftFor(duration model.TimerDuration) Draft {
	return Draft{
		Minutes: fmt.Sprintf("%02d", duration.Minutes),
		Seconds: fmt.Sprintf("%02d", duration.Seconds),
	}
}

// EditRequest carries the drafts for both timers.
type EditRequest struct {
	Episode Draft
	Speaker Draft
}

// Draft returns the draft of the given role.
func (request EditRequest) Draft(role timer.Role) Draft {
	if role == timer.RoleSpeaker {
		return request.Speaker
	}
	return request.Episode
}

type parsedEdit struct {
	episode model.TimerDuration
	speaker model.TimerDuration
}

func (request EditRequest) parse() (parsedEdit, error) {
	var fields []string
	episode, bad := parseDraft(request.Episode, FieldEpisodeMinutes, FieldEpisodeSeconds)
	fields = append(fields, bad...)
	speaker, bad := parseDraft(request.Speaker, FieldSpeakerMinutes, FieldSpeakerSeconds)
	fields = append(fields, bad...)
	if len(fields) > 0 {
		return parsedEdit{}, &InputError{Fields: fields}
	}
	return parsedEdit{episode: episode, speaker: speaker}, nil
}

func parseDraft(draft Draft, minutesField, secondsField string) (model.TimerDuration, []string) {
	var bad []string
	minutes, err := strconv.Atoi(strings.TrimSpace(draft.Minutes))
	if err != nil {
		bad = append(bad, minutesField)
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(draft.Seconds))
	if err != nil {
		bad = append(bad, secondsField)
	}
	return model.TimerDuration{Minutes: minutes, Seconds: seconds}, bad
}
