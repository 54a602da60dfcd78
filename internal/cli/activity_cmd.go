package cli

import (
	"fmt"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Track activity progress",
	}
	cmd.AddCommand(newActivityStatusCmd(app))
	return cmd
}

func newActivityStatusCmd(app *App) *cobra.Command {
	var progress int

	cmd := &cobra.Command{
		Use:   "status ACTIVITY_ID STATUS",
		Short: "Set an activity's status (pending, in_progress, completed, blocked)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseActivityStatus(args[1])
			if err != nil {
				return err
			}
			var pct *int
			if cmd.Flags().Changed("progress") {
				pct = &progress
			}
			a, err := app.Activities.SetStatus(cmd.Context(), args[0], status, pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s (%d%%)\n", a.Code, a.Name, a.Status, a.Progress)
			return nil
		},
	}

	cmd.Flags().IntVar(&progress, "progress", 0, "Partial progress percentage (0-100)")

	return cmd
}
