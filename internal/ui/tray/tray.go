package tray

import (
	"fmt"

	"hackclock/internal/core/countdown"
	"hackclock/internal/ui/display"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow       func()
	OnToggleMain func()
	OnReset      func()
	OnQuit       func()
}

// Icons are swapped as the main countdown starts and pauses.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Manager mirrors the main countdown in the system tray.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	icons      Icons
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	running    bool
	iconSet    bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		icons:     icons,
	}

	manager.statusItem = fyne.NewMenuItem("Main: --:--:--", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start main", func() {
		invoke(manager.callbacks.OnToggleMain)
	})

	manager.refreshMenu()
	manager.refreshIcon()
	return manager
}

// Render updates the status line, toggle label and icon from snapshot.
func (manager *Manager) Render(snapshot countdown.Snapshot) {
	manager.statusItem.Label = fmt.Sprintf("Main: %s", statusText(snapshot))
	manager.toggleItem.Label = display.ToggleLabel(snapshot.MainRunning) + " main"

	if manager.running != snapshot.MainRunning || !manager.iconSet {
		manager.running = snapshot.MainRunning
		manager.refreshIcon()
	}
	manager.refreshMenu()
}

// StatusLabel returns the current status line.
func (manager *Manager) StatusLabel() string {
	return manager.statusItem.Label
}

// ToggleLabel returns the current toggle menu label.
func (manager *Manager) ToggleLabel() string {
	return manager.toggleItem.Label
}

func statusText(snapshot countdown.Snapshot) string {
	if snapshot.MainDone() {
		return "done"
	}
	text := countdown.FormatTime(snapshot.MainRemaining)
	if !snapshot.MainRunning {
		text += " (paused)"
	}
	return text
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.icons.Paused
	if manager.running {
		icon = manager.icons.Active
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
		manager.iconSet = true
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(display.Title,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			invoke(manager.callbacks.OnShow)
		}),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", func() {
			invoke(manager.callbacks.OnReset)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			invoke(manager.callbacks.OnQuit)
		}),
	))
}

func invoke(handler func()) {
	if handler != nil {
		handler()
	}
}
