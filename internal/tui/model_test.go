package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"podcasttimer/internal/core/feedback"
	"podcasttimer/internal/core/model"
	"podcasttimer/internal/core/session"
)

type silentSink struct{}

func (silentSink) Dispatch(cue feedback.Cue) bool { return false }

func newTestModel(t *testing.T) (Model, *session.Controller) {
	t.Helper()
	config := model.SessionConfig{
		Episode:      model.TimerDuration{Minutes: 20},
		Speaker:      model.TimerDuration{Minutes: 2},
		AudioEnabled: true,
	}
	controller := session.New(config, session.Config{TickInterval: time.Hour}, silentSink{})
	t.Cleanup(controller.Close)
	return NewModel(controller), controller
}

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return next
}

func TestToggleCyclesStates(t *testing.T) {
	m, controller := newTestModel(t)
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	steps := []struct {
		msg  tea.KeyMsg
		want session.State
	}{
		{space, session.StateRunning},
		{space, session.StatePaused},
		{space, session.StateRunning},
		{runes("r"), session.StateIdle},
	}
	for i, step := range steps {
		m = press(t, m, step.msg)
		if got := controller.State(); got != step.want {
			t.Fatalf("step %d: state = %s, want %s", i, got, step.want)
		}
		if m.snapshot.State != step.want {
			t.Fatalf("step %d: model snapshot = %s, want %s", i, m.snapshot.State, step.want)
		}
	}
}

func TestEditFlow(t *testing.T) {
	m, controller := newTestModel(t)

	m = press(t, m, runes("e"))
	if !m.editing {
		t.Fatal("editor not opened")
	}
	values := []string{m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value(), m.inputs[3].Value()}
	if strings.Join(values, ",") != "20,00,02,00" {
		t.Fatalf("drafts = %v", values)
	}

	m.inputs[2].SetValue("x")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.editing || !m.invalid[session.FieldSpeakerMinutes] || m.invalid[session.FieldEpisodeMinutes] {
		t.Fatalf("invalid input: editing=%v invalid=%v", m.editing, m.invalid)
	}
	if !controller.Snapshot().EditPending {
		t.Fatal("rejected commit must keep the edit open")
	}

	m.inputs[2].SetValue("3")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.editing {
		t.Fatal("editor still open after a valid save")
	}
	if m.snapshot.Speaker.Total != 180 || m.snapshot.Episode.Total != 1200 {
		t.Errorf("totals = %d / %d", m.snapshot.Episode.Total, m.snapshot.Speaker.Total)
	}
}

func TestEditCancel(t *testing.T) {
	m, controller := newTestModel(t)

	m = press(t, m, runes("e"))
	m.inputs[0].SetValue("55")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.editing || controller.Snapshot().EditPending {
		t.Fatal("edit not cancelled")
	}
	if controller.Snapshot().Episode.Total != 1200 {
		t.Errorf("cancel changed the episode to %d", controller.Snapshot().Episode.Total)
	}
}

func TestTabCyclesFields(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("e"))

	for _, want := range []int{1, 2, 3, 0} {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.focus != want {
			t.Fatalf("focus = %d, want %d", m.focus, want)
		}
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != 3 {
		t.Errorf("focus = %d, want 3", m.focus)
	}
}

func TestRejectedActionShowsError(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = press(t, m, runes("e"))

	if m.editing {
		t.Fatal("editor opened while running")
	}
	if !errors.Is(m.err, session.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", m.err)
	}
	if !strings.Contains(m.View(), m.err.Error()) {
		t.Error("error not rendered")
	}
}

func TestAudioToggle(t *testing.T) {
	m, controller := newTestModel(t)
	m = press(t, m, runes("m"))
	if controller.Snapshot().AudioEnabled || m.snapshot.AudioEnabled {
		t.Fatal("audio still enabled")
	}
	if !strings.Contains(m.View(), "audio off") {
		t.Error("status line does not show audio off")
	}
}

func TestViewIdle(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"EPISODE TIMER", "SPEAKER TIMER", "20:00", "02:00", "idle"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEventsDriveSnapshot(t *testing.T) {
	m, controller := newTestModel(t)
	if err := controller.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	msg := m.Init()()
	if _, ok := msg.(eventMsg); !ok {
		t.Fatalf("Init produced %T", msg)
	}
	m = press(t, m, msg)
	if m.snapshot.State != session.StateRunning {
		t.Errorf("state = %s", m.snapshot.State)
	}
}

func TestEventsClosedQuits(t *testing.T) {
	m, controller := newTestModel(t)
	controller.Close()

	msg := m.Init()()
	if _, ok := msg.(eventsClosedMsg); !ok {
		t.Fatalf("Init produced %T", msg)
	}
	m = press(t, m, msg)
	if !m.quitting || m.View() != "" {
		t.Error("model did not quit")
	}
}
