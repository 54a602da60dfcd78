package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/db"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/holiday"
	"github.com/alexanderramin/samplan/internal/progress"
	"github.com/alexanderramin/samplan/internal/repository"
	"github.com/alexanderramin/samplan/internal/template"
	"github.com/alexanderramin/samplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

type failingAudit struct{}

func (failingAudit) Record(context.Context, string, string, string, string, any) error {
	return errors.New("audit store offline")
}

type testEnv struct {
	db          *sql.DB
	projectRepo *repository.SQLiteProjectRepo
	phaseRepo   *repository.SQLitePhaseRepo
	holidayRepo *repository.SQLiteHolidayRepo
	blockerRepo *repository.SQLiteBlockerRepo
	auditRepo   *repository.SQLiteAuditRepo
	observer    *recordingObserver

	Projects   ProjectService
	Holidays   HolidayService
	Status     StatusService
	Activities ActivityService
	Blockers   BlockerService
}

type envOption func(*envConfig)

type envConfig struct {
	role  domain.Role
	uow   func(*sql.DB) db.UnitOfWork
	audit func(repository.AuditRepo) AuditRecorder
}

func withRole(r domain.Role) envOption {
	return func(c *envConfig) { c.role = r }
}

func withUoW(f func(*sql.DB) db.UnitOfWork) envOption {
	return func(c *envConfig) { c.uow = f }
}

func withAudit(a AuditRecorder) envOption {
	return func(c *envConfig) { c.audit = func(repository.AuditRepo) AuditRecorder { return a } }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	cfg := envConfig{
		role:  domain.RoleProjectManager,
		uow:   testutil.NewTestUoW,
		audit: NewAuditRecorder,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:          database,
		projectRepo: repository.NewSQLiteProjectRepo(database),
		phaseRepo:   repository.NewSQLitePhaseRepo(database),
		holidayRepo: repository.NewSQLiteHolidayRepo(database),
		blockerRepo: repository.NewSQLiteBlockerRepo(database),
		auditRepo:   repository.NewSQLiteAuditRepo(database),
		observer:    &recordingObserver{},
	}
	uow := cfg.uow(database)
	authz := StaticAuthorizer{Session: domain.Session{Actor: "tester", Role: cfg.role}}
	audit := cfg.audit(env.auditRepo)

	env.Holidays = NewHolidayService(env.holidayRepo, holiday.PeruProvider{}, uow, authz, audit, env.observer)
	env.Projects = NewProjectService(env.projectRepo, env.phaseRepo, env.Holidays, uow, authz, audit, template.Base(), env.observer)
	env.Status = NewStatusService(env.projectRepo, env.phaseRepo, env.blockerRepo, progress.DefaultVariancePolicy())
	env.Activities = NewActivityService(uow, authz, audit, env.observer)
	env.Blockers = NewBlockerService(env.projectRepo, env.blockerRepo, env.Holidays, uow, authz, audit, env.observer)
	return env
}

func d(s string) domain.Date { return domain.MustParseDate(s) }

func createReq(shortID, kickoff string) contract.CreateProjectRequest {
	return contract.CreateProjectRequest{
		ShortID: shortID,
		Name:    "Project " + shortID,
		Client:  "Minera Andina",
		Kickoff: d(kickoff),
	}
}

// createProject creates a default-duration project and returns its stored schedule.
func (e *testEnv) createProject(t *testing.T, shortID, kickoff string) (*domain.Project, []domain.Phase) {
	t.Helper()
	ctx := context.Background()
	resp, err := e.Projects.Create(ctx, createReq(shortID, kickoff))
	require.NoError(t, err)
	p, err := e.projectRepo.GetByID(ctx, resp.Project.ID)
	require.NoError(t, err)
	phases, err := e.phaseRepo.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	return p, phases
}

func findActivity(t *testing.T, phases []domain.Phase, code string) domain.Activity {
	t.Helper()
	for _, p := range phases {
		for _, a := range p.Activities {
			if a.Code == code {
				return a
			}
		}
	}
	t.Fatalf("activity %s not found", code)
	return domain.Activity{}
}

func (e *testEnv) complete(t *testing.T, phases []domain.Phase, codes ...string) {
	t.Helper()
	for _, code := range codes {
		_, err := e.Activities.SetStatus(context.Background(), findActivity(t, phases, code).ID, domain.ActivityCompleted, nil)
		require.NoError(t, err)
	}
}
