package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/db"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/template"
	"github.com/alexanderramin/samplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create_DefaultDurations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.Projects.Create(ctx, createReq("acme01", "2025-06-02"))
	require.NoError(t, err)
	require.NotNil(t, resp.Project)
	assert.NotEmpty(t, resp.Project.ID, "UUID should be generated")
	assert.Equal(t, "ACME01", resp.Project.ShortID, "short ID is upper-cased")
	assert.Equal(t, domain.ProjectActive, resp.Project.Status)

	// 65 forward working days from Mon 2025-06-02 with no holidays stored.
	assert.Equal(t, "2025-08-29", resp.EndDate.String())
	assert.Len(t, resp.Warnings, 3, "2024, 2025 and 2026 have no holidays")

	phases, err := env.phaseRepo.ListByProject(ctx, resp.Project.ID)
	require.NoError(t, err)
	require.Len(t, phases, 4)
	total := 0
	for i, p := range phases {
		assert.Equal(t, i+1, p.Order)
		assert.NotEmpty(t, p.ID)
		for _, a := range p.Activities {
			assert.Equal(t, p.ID, a.PhaseID)
			assert.Equal(t, domain.ActivityPending, a.Status)
			total++
		}
	}
	assert.Equal(t, 20, total)

	p04 := findActivity(t, phases, "P04")
	assert.Equal(t, "2025-06-01", p04.EndDate.String(), "PREPARE ends the day before kickoff")
}

func TestProjectService_Create_UsesStoredHolidays(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Holidays.ImportYear(ctx, 2025)
	require.NoError(t, err)

	resp, err := env.Projects.Create(ctx, createReq("ACME02", "2025-06-02"))
	require.NoError(t, err)
	// 07-23, 07-28, 07-29 and 08-06 fall on weekdays and push the end four working days.
	assert.Equal(t, "2025-09-04", resp.EndDate.String())
	assert.Len(t, resp.Warnings, 2)
}

func TestProjectService_Create_CustomDurations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := createReq("ACME03", "2025-06-02")
	req.Durations = &domain.PhaseDurations{Prepare: 3, Connect: 5, Realize: 10, Run: 3}
	resp, err := env.Projects.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-25", resp.EndDate.String())

	entries, err := env.auditRepo.ListByEntity(ctx, "project", resp.Project.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "create", entries[0].Action)
	assert.Equal(t, "tester", entries[0].Actor)
	assert.Contains(t, entries[0].Payload, `"end_date":"2025-06-25"`)
}

func TestProjectService_Create_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  func() contract.CreateProjectRequest
	}{
		{"missing short id", func() contract.CreateProjectRequest { return createReq("", "2025-06-02") }},
		{"bad short id", func() contract.CreateProjectRequest { return createReq("AB1", "2025-06-02") }},
		{"missing name", func() contract.CreateProjectRequest {
			r := createReq("ACME01", "2025-06-02")
			r.Name = "  "
			return r
		}},
		{"missing kickoff", func() contract.CreateProjectRequest {
			r := createReq("ACME01", "2025-06-02")
			r.Kickoff = domain.Date{}
			return r
		}},
		{"zero duration", func() contract.CreateProjectRequest {
			r := createReq("ACME01", "2025-06-02")
			r.Durations = &domain.PhaseDurations{Prepare: 3, Connect: 0, Realize: 10, Run: 3}
			return r
		}},
		{"negative duration", func() contract.CreateProjectRequest {
			r := createReq("ACME01", "2025-06-02")
			r.Durations = &domain.PhaseDurations{Prepare: -1, Connect: 5, Realize: 10, Run: 3}
			return r
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()

			_, err := env.Projects.Create(ctx, tc.req())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			projects, err := env.projectRepo.List(ctx, true)
			require.NoError(t, err)
			assert.Empty(t, projects)
		})
	}
}

func TestProjectService_Create_Forbidden(t *testing.T) {
	env := newTestEnv(t, withRole(domain.RoleClient))
	ctx := context.Background()

	_, err := env.Projects.Create(ctx, createReq("ACME01", "2025-06-02"))
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))

	projects, err := env.projectRepo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, projects)

	events := env.observer.named("create-project")
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
}

func TestProjectService_Create_RollbackOnActivityFailure(t *testing.T) {
	// ExecContext calls in Create: #1 project, #2 PREPARE phase, #3-#7 its five
	// activities, #8 CONNECT phase. Fail on #8.
	env := newTestEnv(t, withUoW(func(database *sql.DB) db.UnitOfWork {
		return &testutil.FailingUoW{
			DB:     database,
			FailOn: 8,
			Err:    fmt.Errorf("injected phase create failure"),
		}
	}))
	ctx := context.Background()

	_, err := env.Projects.Create(ctx, createReq("ACME01", "2025-06-02"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected phase create failure")

	projects, err := env.projectRepo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, projects, "no project should exist after rollback")

	var phaseCount int
	require.NoError(t, env.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM phases`).Scan(&phaseCount))
	assert.Zero(t, phaseCount)
	var activityCount int
	require.NoError(t, env.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&activityCount))
	assert.Zero(t, activityCount)
}

func TestProjectService_Create_DuplicateShortID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Projects.Create(ctx, createReq("ACME01", "2025-06-02"))
	require.NoError(t, err)
	_, err = env.Projects.Create(ctx, createReq("ACME01", "2025-07-01"))
	require.Error(t, err)

	var activityCount int
	require.NoError(t, env.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&activityCount))
	assert.Equal(t, 20, activityCount, "the failed create left nothing behind")
}

func TestProjectService_Create_AuditFailureDoesNotFail(t *testing.T) {
	env := newTestEnv(t, withAudit(failingAudit{}))
	ctx := context.Background()

	resp, err := env.Projects.Create(ctx, createReq("ACME01", "2025-06-02"))
	require.NoError(t, err)
	require.NotNil(t, resp.Project)

	events := env.observer.named("audit")
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.ErrorContains(t, events[0].Err, "audit store offline")
}

func TestProjectService_GetByID_AcceptsShortID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, _ := env.createProject(t, "MINSA01", "2025-06-02")

	byID, err := env.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byID.ID)

	byShort, err := env.Projects.GetByID(ctx, "minsa01")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byShort.ID)

	_, err = env.Projects.GetByID(ctx, "NOPE01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "NOPE01")
}

func TestProjectService_CloseAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, _ := env.createProject(t, "ACME01", "2025-06-02")
	env.createProject(t, "ACME02", "2025-06-02")

	require.NoError(t, env.Projects.Close(ctx, "ACME01"))
	active, err := env.Projects.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "ACME02", active[0].ShortID)

	require.NoError(t, env.Projects.Delete(ctx, "ACME01"))
	_, err = env.Projects.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	phases, err := env.phaseRepo.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, phases, "phases are deleted with the project")
}

func TestProjectService_Delete_Forbidden(t *testing.T) {
	env := newTestEnv(t)
	p, _ := env.createProject(t, "ACME01", "2025-06-02")

	consultant := StaticAuthorizer{Session: domain.Session{Actor: "carla", Role: domain.RoleConsultant}}
	svc := NewProjectService(env.projectRepo, env.phaseRepo, env.Holidays,
		testutil.NewTestUoW(env.db), consultant, nil, template.Base())
	err := svc.Delete(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, err.Error(), "CONSULTANT")

	_, err = env.Projects.GetByID(context.Background(), p.ID)
	assert.NoError(t, err)
}

func TestProjectService_Schedule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.Projects.Create(ctx, createReq("ACME01", "2025-06-02"))
	require.NoError(t, err)

	stored, err := env.Projects.Schedule(ctx, "ACME01")
	require.NoError(t, err)
	assert.Equal(t, created.EndDate, stored.EndDate)
	assert.Equal(t, "2025-06-02", stored.Kickoff.String())
	require.Len(t, stored.Phases, 4)
	for i := range stored.Phases {
		assert.Equal(t, created.Phases[i].StartDate, stored.Phases[i].StartDate)
		assert.Equal(t, created.Phases[i].EndDate, stored.Phases[i].EndDate)
		assert.Len(t, stored.Phases[i].Activities, len(created.Phases[i].Activities))
	}
	assert.Empty(t, stored.Warnings)
}

func TestProjectService_Preview_DoesNotPersist(t *testing.T) {
	env := newTestEnv(t, withRole(domain.RoleClient))
	ctx := context.Background()

	resp, err := env.Projects.Preview(ctx, contract.PreviewRequest{
		Kickoff:   d("2025-06-02"),
		Durations: &domain.PhaseDurations{Prepare: 3, Connect: 5, Realize: 10, Run: 3},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Project)
	assert.Equal(t, "2025-06-02", resp.Kickoff.String())
	assert.Equal(t, "2025-06-25", resp.EndDate.String())
	require.Len(t, resp.Phases, 4)
	assert.Empty(t, resp.Phases[0].Activities[0].ID)

	projects, err := env.projectRepo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, projects)

	_, err = env.Projects.Preview(ctx, contract.PreviewRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
