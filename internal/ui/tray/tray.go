package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"podcasttimer/internal/core/session"
)

const menuTitle = "Podcast Timer"

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnNext        func()
	OnPreferences func()
	OnQuit        func()
}

// Icons holds the tray icons per session state.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	host        Host
	icons       Icons
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	resetItem   *fyne.MenuItem
	nextItem    *fyne.MenuItem
	prefsItem   *fyne.MenuItem
	state       session.State
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(host Host, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		icons:     icons,
		callbacks: callbacks,
		state:     session.StateIdle,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggle))
	manager.resetItem = fyne.NewMenuItem("Stop / Reset", invoke(&manager.callbacks.OnReset))
	manager.nextItem = fyne.NewMenuItem("Next speaker", invoke(&manager.callbacks.OnNext))
	manager.prefsItem = fyne.NewMenuItem("Settings", invoke(&manager.callbacks.OnPreferences))

	manager.statusLabel = "ready"
	manager.SetState(session.StateIdle, true)
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshMenu()
}

// SetState updates menu labels and the icon for the session state.
// settingsAvailable enables the Settings item.
func (manager *Manager) SetState(state session.State, settingsAvailable bool) {
	manager.state = state

	switch state {
	case session.StateRunning:
		manager.toggleItem.Label = "Pause"
	case session.StatePaused:
		manager.toggleItem.Label = "Resume"
	default:
		manager.toggleItem.Label = "Start"
	}
	manager.toggleItem.Disabled = !settingsAvailable && state == session.StateIdle
	manager.resetItem.Disabled = state == session.StateIdle
	manager.nextItem.Disabled = state != session.StateRunning
	manager.prefsItem.Disabled = !settingsAvailable

	manager.applyIcon()
	manager.refreshMenu()
}

// Status returns the label shown in the tray menu.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) applyIcon() {
	if manager.host == nil {
		return
	}
	icon := manager.icons.Active
	if manager.state == session.StatePaused && manager.icons.Paused != nil {
		icon = manager.icons.Paused
	}
	if icon != nil {
		manager.host.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	if manager.host == nil {
		return
	}
	manager.host.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		manager.nextItem,
		fyne.NewMenuItemSeparator(),
		manager.prefsItem,
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	))
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}

// Describe summarizes a snapshot for the tray status line.
func Describe(snapshot session.Snapshot) string {
	switch snapshot.State {
	case session.StateRunning:
		return fmt.Sprintf("running, episode %s", snapshot.Episode.Stage)
	case session.StatePaused:
		return fmt.Sprintf("paused at %s", snapshot.Episode.Clock())
	default:
		return "ready"
	}
}
