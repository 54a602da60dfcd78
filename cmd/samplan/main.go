package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/samplan/internal/cli"
	"github.com/alexanderramin/samplan/internal/config"
	"github.com/alexanderramin/samplan/internal/db"
	"github.com/alexanderramin/samplan/internal/repository"
	"github.com/alexanderramin/samplan/internal/service"
	"github.com/alexanderramin/samplan/internal/template"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	base := template.Base()
	if cfg.TemplateFile != "" {
		if base, err = template.LoadFile(cfg.TemplateFile); err != nil {
			return fmt.Errorf("loading template: %w", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)
	blockerRepo := repository.NewSQLiteBlockerRepo(database)
	auditRepo := repository.NewSQLiteAuditRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	authz := service.StaticAuthorizer{Session: cfg.Session()}
	audit := service.NewAuditRecorder(auditRepo)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	holidays := service.NewHolidayService(holidayRepo, nil, uow, authz, audit, observers...)
	app := &cli.App{
		Projects:   service.NewProjectService(projectRepo, phaseRepo, holidays, uow, authz, audit, base, observers...),
		Status:     service.NewStatusService(projectRepo, phaseRepo, blockerRepo, cfg.Variance),
		Activities: service.NewActivityService(uow, authz, audit, observers...),
		Blockers:   service.NewBlockerService(projectRepo, blockerRepo, holidays, uow, authz, audit, observers...),
		Holidays:   holidays,

		Logger:      logger,
		HTTPAddr:    cfg.HTTPAddr,
		CORSOrigins: cfg.CORSOrigins,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
