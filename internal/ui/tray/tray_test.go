package tray

import (
	"testing"

	"fyne.io/fyne/v2"

	"podcasttimer/internal/core/session"
	"podcasttimer/internal/core/timer"
)

type fakeHost struct {
	menu *fyne.Menu
	icon fyne.Resource
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu)    { host.menu = menu }
func (host *fakeHost) SetSystemTrayIcon(icon fyne.Resource) { host.icon = icon }

func (host *fakeHost) item(label string) *fyne.MenuItem {
	for _, item := range host.menu.Items {
		if item.Label == label {
			return item
		}
	}
	return nil
}

func TestTrayStates(t *testing.T) {
	host := &fakeHost{}
	active := fyne.NewStaticResource("active.svg", []byte("<svg/>"))
	paused := fyne.NewStaticResource("paused.svg", []byte("<svg/>"))
	manager := New(host, Icons{Active: active, Paused: paused}, Callbacks{})

	if host.menu == nil || host.item("Start") == nil {
		t.Fatal("menu not installed with a Start item")
	}
	if !host.item("Stop / Reset").Disabled || !host.item("Next speaker").Disabled {
		t.Error("reset and next must be disabled while idle")
	}

	tests := []struct {
		state  session.State
		toggle string
		icon   fyne.Resource
	}{
		{state: session.StateRunning, toggle: "Pause", icon: active},
		{state: session.StatePaused, toggle: "Resume", icon: paused},
		{state: session.StateIdle, toggle: "Start", icon: active},
	}
	for _, tt := range tests {
		manager.SetState(tt.state, tt.state == session.StateIdle)
		if host.item(tt.toggle) == nil {
			t.Errorf("%s: no %q item", tt.state, tt.toggle)
		}
		if host.icon != tt.icon {
			t.Errorf("%s: icon = %v", tt.state, host.icon)
		}
		if settings := host.item("Settings"); settings.Disabled != (tt.state != session.StateIdle) {
			t.Errorf("%s: settings disabled = %v", tt.state, settings.Disabled)
		}
	}
}

func TestTrayCallbacks(t *testing.T) {
	host := &fakeHost{}
	calls := map[string]int{}
	New(host, Icons{}, Callbacks{
		OnToggle: func() { calls["toggle"]++ },
		OnQuit:   func() { calls["quit"]++ },
	})

	host.item("Start").Action()
	host.item("Quit").Action()
	host.item("Next speaker").Action()

	if calls["toggle"] != 1 || calls["quit"] != 1 {
		t.Errorf("calls = %v", calls)
	}
}

func TestTrayStatus(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, Icons{}, Callbacks{})

	manager.SetStatus(Describe(session.Snapshot{
		State:   session.StatePaused,
		Episode: timer.Snapshot{Role: timer.RoleEpisode, Total: 1200, Remaining: 754},
	}))
	if manager.Status() != "Status: paused at 12:34" {
		t.Errorf("status = %q", manager.Status())
	}
	if host.item("Status: paused at 12:34") == nil {
		t.Error("status item not refreshed in the menu")
	}

	running := Describe(session.Snapshot{State: session.StateRunning, Episode: timer.Snapshot{Stage: timer.StageRed}})
	if running != "running, episode red" {
		t.Errorf("running status = %q", running)
	}
}
