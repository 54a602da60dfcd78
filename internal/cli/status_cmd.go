package cli

import (
	"fmt"

	"github.com/alexanderramin/samplan/internal/cli/formatter"
	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var projects []string
	var today domain.Date
	var all bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progress and schedule variance of every active project",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewStatusRequest()
			req.ProjectScope = projects
			req.IncludeClosed = all
			if cmd.Flags().Changed("today") {
				req.Today = &today
			}

			resp, err := app.Status.GetStatus(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(resp))
			if len(projects) > 0 {
				for _, p := range resp.Projects {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectStatus(p))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&projects, "project", nil, "Limit to project IDs or short IDs (shows phase detail)")
	cmd.Flags().Var(newDateValue(&today), "today", "Evaluate as of this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&all, "all", false, "Include closed projects")

	return cmd
}
