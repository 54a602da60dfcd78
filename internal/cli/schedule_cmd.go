package cli

import (
	"fmt"

	"github.com/alexanderramin/samplan/internal/cli/formatter"
	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/template"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute schedules without saving them",
	}
	cmd.AddCommand(newSchedulePreviewCmd(app))
	return cmd
}

func newSchedulePreviewCmd(app *App) *cobra.Command {
	var kickoff domain.Date
	durations := template.DefaultDurations()

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the schedule a project would get, using stored holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.PreviewRequest{Kickoff: kickoff}
			if cmd.Flags().Changed("durations") {
				req.Durations = &durations
			}
			resp, err := app.Projects.Preview(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSchedule(resp))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&kickoff), "kickoff", "Kickoff date (YYYY-MM-DD)")
	cmd.Flags().Var(newDurationsValue(&durations), "durations", "Phase working days, e.g. prepare=10,connect=15,realize=40,run=10")
	_ = cmd.MarkFlagRequired("kickoff")

	return cmd
}
