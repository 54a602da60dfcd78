package cli

import (
	"log/slog"

	"github.com/alexanderramin/samplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings the commands run against.
type App struct {
	Projects   service.ProjectService
	Status     service.StatusService
	Activities service.ActivityService
	Blockers   service.BlockerService
	Holidays   service.HolidayService

	// Logger, HTTPAddr and CORSOrigins configure `serve`.
	Logger      *slog.Logger
	HTTPAddr    string
	CORSOrigins []string

	// IsInteractive reports whether stdin is a terminal. Nil means never,
	// which keeps prompts out of scripts and tests.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "samplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "samplan",
		Short:         "SAP Activate project scheduling on working days",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newScheduleCmd(app),
		newHolidayCmd(app),
		newActivityCmd(app),
		newBlockerCmd(app),
		newStatusCmd(app),
		newServeCmd(app),
	)

	return root
}
