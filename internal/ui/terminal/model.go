package terminal

import (
	"fmt"
	"strings"

	"hackclock/internal/core/countdown"
	"hackclock/internal/core/model"
	"hackclock/internal/ui/display"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller is the countdown surface the terminal view drives.
type Controller interface {
	ToggleMain()
	TogglePhase(index int)
	Reset()
	Snapshot() countdown.Snapshot
	Phases() []model.Phase
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BEF264"))
	mainStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34D399")).Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#34D399"))
	nameStyle    = lipgloss.NewStyle().Width(34)
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399"))
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	doneStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6B7280"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

type eventMsg countdown.Event

type closedMsg struct{}

// Model is the bubbletea model for the terminal clock.
type Model struct {
	controller Controller
	events     <-chan countdown.Event
	phases     []model.Phase
	snapshot   countdown.Snapshot
	keys       KeyMap
	width      int
	quitting   bool
}

// New creates a terminal model rendering events from the store subscription.
func New(controller Controller, events <-chan countdown.Event) Model {
	phases := controller.Phases()
	return Model{
		controller: controller,
		events:     events,
		phases:     phases,
		snapshot:   controller.Snapshot(),
		keys:       DefaultKeyMap(len(phases)),
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan countdown.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(event)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case eventMsg:
		m.snapshot = msg.Snapshot
		return m, waitForEvent(m.events)
	case closedMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleMain):
		m.controller.ToggleMain()
	case key.Matches(msg, m.keys.Reset):
		m.controller.Reset()
	case key.Matches(msg, m.keys.TogglePhase):
		index := int(msg.String()[0] - '1')
		m.controller.TogglePhase(index)
	default:
		return m, nil
	}
	m.snapshot = m.controller.Snapshot()
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(display.Title))
	b.WriteString("\n\n")
	b.WriteString(mainStyle.Render(display.MainText(m.snapshot)))
	b.WriteString("  ")
	b.WriteString(stateLabel(m.snapshot.MainRunning))
	b.WriteString("\n\n")

	for index, phase := range m.phases {
		face := display.PhaseText(m.snapshot, index)
		if m.snapshot.PhaseDone(index) {
			face = doneStyle.Render(face)
		}
		fmt.Fprintf(&b, " %d  %s %s  %s\n",
			index+1,
			nameStyle.Render(phase.Name),
			face,
			stateLabel(m.snapshot.PhaseRunning[index]),
		)
	}

	b.WriteString("\n")
	help := make([]string, 0, 4)
	for _, binding := range m.keys.ShortHelp() {
		help = append(help, binding.Help().Key+" "+binding.Help().Desc)
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " · ")))
	b.WriteString("\n")
	return b.String()
}

func stateLabel(running bool) string {
	if running {
		return runningStyle.Render("running")
	}
	return pausedStyle.Render("paused")
}
