package cli

import (
	"fmt"

	"hackclock/internal/core/countdown"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the persisted main countdown with the full event length",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && app.cfg.ConfirmReset && app.IsInteractive() {
				confirmed := false
				if err := resetConfirm(&confirmed).Run(); err != nil {
					return fmt.Errorf("confirm reset: %w", err)
				}
				if !confirmed {
					fmt.Fprintln(out(cmd), "Reset cancelled")
					return nil
				}
			}

			sess, err := app.openSession(nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			sess.store.Reset()
			remaining := sess.store.Snapshot().MainRemaining
			if seconds, ok := sess.mainTime.Load(); !ok || seconds != remaining {
				return fmt.Errorf("reset: state at %s was not updated", sess.location)
			}

			fmt.Fprintf(out(cmd), "Main countdown reset to %s\n", countdown.FormatTime(remaining))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func resetConfirm(result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset the main countdown to 24:00:00?").
				Affirmative("Reset").
				Negative("Cancel").
				Value(result),
		),
	).WithShowHelp(false)
}
