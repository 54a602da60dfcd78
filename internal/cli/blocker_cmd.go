package cli

import (
	"fmt"

	"github.com/alexanderramin/samplan/internal/cli/formatter"
	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/spf13/cobra"
)

func newBlockerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocker",
		Short: "Record blockers and pauses and apply their impact",
	}

	cmd.AddCommand(
		newBlockerOpenCmd(app),
		newBlockerResolveCmd(app),
		newBlockerListCmd(app),
	)

	return cmd
}

func newBlockerOpenCmd(app *App) *cobra.Command {
	var project, reason, kind string
	var start domain.Date

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a blocker on a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := domain.ParseBlockerKind(kind)
			if err != nil {
				return err
			}
			b, err := app.Blockers.Open(cmd.Context(), contract.OpenBlockerRequest{
				ProjectID: project,
				Kind:      k,
				Reason:    reason,
				StartDate: start,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s %s from %s\n", b.Kind, b.ID, b.StartDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or short ID")
	cmd.Flags().StringVar(&reason, "reason", "", "What is blocking the project")
	cmd.Flags().StringVar(&kind, "kind", string(domain.BlockerKindBlocker), "BLOCKER or PAUSE")
	cmd.Flags().Var(newDateValue(&start), "start", "First blocked day (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("reason")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newBlockerResolveCmd(app *App) *cobra.Command {
	var end domain.Date
	var impact int

	cmd := &cobra.Command{
		Use:   "resolve BLOCKER_ID",
		Short: "Resolve a blocker; a positive impact shifts pending activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.ResolveBlockerRequest{EndDate: end}
			if cmd.Flags().Changed("impact") {
				req.ImpactDays = &impact
			}
			result, err := app.Blockers.Resolve(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResolveResult(result))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&end), "end", "Last blocked day (YYYY-MM-DD)")
	cmd.Flags().IntVar(&impact, "impact", 0, "Working days the schedule slips")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newBlockerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's blockers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blockers, err := app.Blockers.ListByProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBlockers(blockers))
			return nil
		},
	}
}
