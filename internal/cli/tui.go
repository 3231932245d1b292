package cli

import (
	"fmt"
	"log"

	"hackclock/internal/storage"
	"hackclock/internal/ui/terminal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

func runTUI(app *App) error {
	if !app.IsInteractive() {
		return ErrNotInteractive
	}
	if storage.Backend(app.cfg.Storage.Backend) == storage.BackendPreferences {
		return fmt.Errorf("open state: %s backend needs the window, use yaml or sqlite", storage.BackendPreferences)
	}

	sess, err := app.openSession(nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Printf("close session: %v", err)
		}
	}()
	logPersistErrors(sess.store)

	model := terminal.New(sess.store, sess.store.Subscribe(16))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run terminal view: %w", err)
	}
	return nil
}
