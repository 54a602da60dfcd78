package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/samplan/internal/cli/formatter"
	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/template"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectViewCmd(app),
		newProjectCloseCmd(app),
		newProjectDeleteCmd(app),
	)

	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var shortID, name, client string
	var kickoff domain.Date
	durations := template.DefaultDurations()

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project and schedule every SAM activity",
		Example: `  samplan project create --id ACME01 --name "S/4 rollout" --kickoff 2025-06-02
  samplan project create --id ACME01 --name "S/4 rollout" --kickoff 2025-06-02 --durations realize=60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.CreateProjectRequest{
				ShortID: strings.ToUpper(shortID),
				Name:    name,
				Client:  client,
				Kickoff: kickoff,
			}

			if cmd.Flags().Changed("durations") {
				req.Durations = &durations
			} else if app.interactive() {
				fields := newDurationFields(durations)
				if err := durationsForm(fields).Run(); err != nil {
					return err
				}
				d, err := fields.durations()
				if err != nil {
					return err
				}
				req.Durations = &d
			}

			resp, err := app.Projects.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSchedule(resp))
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s], ending %s\n",
				resp.Project.Name, resp.Project.ShortID, resp.EndDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 letters + 2-4 digits, e.g. ACME01)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().Var(newDateValue(&kickoff), "kickoff", "Kickoff date (YYYY-MM-DD)")
	cmd.Flags().Var(newDurationsValue(&durations), "durations", "Phase working days, e.g. prepare=10,connect=15,realize=40,run=10")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("kickoff")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include closed projects")

	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a project's schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Projects.Schedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSchedule(resp))
			return nil
		},
	}
}

func newProjectViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view ID",
		Short: "Browse a project's schedule in an interactive table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Projects.Schedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !app.interactive() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSchedule(resp))
				return nil
			}
			return runScheduleView(cmd, resp)
		},
	}
}

func newProjectCloseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "close ID",
		Short: "Close a project; closed projects leave the status report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Projects.Close(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Closed project %s\n", args[0])
			return nil
		},
	}
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project with its schedule and blockers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %s without --yes", args[0])
				}
				if err := confirmForm(fmt.Sprintf("Delete project %s and its whole schedule?", args[0]), &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Projects.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
