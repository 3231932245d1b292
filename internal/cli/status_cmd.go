package cli

import (
	"fmt"
	"text/tabwriter"

	"hackclock/internal/core/countdown"
	"hackclock/internal/core/model"
	"hackclock/internal/storage"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the persisted main countdown and the phase plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, closeFn, location, err := app.openStorage(nil)
			if err != nil {
				return err
			}
			defer closeFn()

			remaining := int(model.DefaultMainDuration.Seconds())
			source := "default"
			if seconds, ok := storage.NewMainTime(kv).Load(); ok {
				remaining = seconds
				source = "saved"
			}

			w := out(cmd)
			fmt.Fprintf(w, "Main countdown: %s (%d s, %s)\n", countdown.FormatTime(remaining), remaining, source)
			fmt.Fprintf(w, "State: %s\n\n", location)

			table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(table, "#\tPHASE\tDURATION")
			for index, phase := range model.DefaultPhases() {
				fmt.Fprintf(table, "%d\t%s\t%s\n", index+1, phase.Name, countdown.FormatTime(phase.Seconds()))
			}
			return table.Flush()
		},
	}
}
