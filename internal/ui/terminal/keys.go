package terminal

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the terminal bindings.
type KeyMap struct {
	ToggleMain  key.Binding
	TogglePhase key.Binding
	Reset       key.Binding
	Quit        key.Binding
}

// DefaultKeyMap binds digits 1..phases (at most 9) to the phases.
func DefaultKeyMap(phases int) KeyMap {
	if phases > 9 {
		phases = 9
	}
	digits := make([]string, 0, phases)
	for index := 1; index <= phases; index++ {
		digits = append(digits, strconv.Itoa(index))
	}

	return KeyMap{
		ToggleMain:  key.NewBinding(key.WithKeys(" ", "space", "m"), key.WithHelp("space", "start/pause main")),
		TogglePhase: key.NewBinding(key.WithKeys(digits...), key.WithHelp("1-"+strconv.Itoa(phases), "start/pause phase")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists bindings in display order.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.ToggleMain, keys.TogglePhase, keys.Reset, keys.Quit}
}
