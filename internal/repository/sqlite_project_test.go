package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Acme Rollout", testutil.WithKickoff(domain.MustParseDate("2025-01-06")))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Acme Rollout", fetched.Name)
	assert.Equal(t, "Test Client", fetched.Client)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
	assert.Equal(t, "2025-01-06", fetched.KickoffDate.String())
	assert.True(t, proj.CreatedAt.Equal(fetched.CreatedAt))
}

func TestProjectRepo_GetByShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Minsa", testutil.WithShortID("MINSA01"), testutil.WithClient("Ministerio de Salud"))
	require.NoError(t, repo.Create(ctx, proj))

	// Case-insensitive lookup.
	fetched, err := repo.GetByShortID(ctx, "minsa01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "MINSA01", fetched.ShortID)
	assert.Equal(t, "Ministerio de Salud", fetched.Client)
}

func TestProjectRepo_DuplicateShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("One", testutil.WithShortID("DUP01"))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestProject("Two", testutil.WithShortID("DUP01"))))
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectRepo_List_ExcludesClosed(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	p1 := testutil.NewTestProject("Late", testutil.WithKickoff(domain.MustParseDate("2025-09-01")))
	p2 := testutil.NewTestProject("Early", testutil.WithKickoff(domain.MustParseDate("2025-02-03")))
	p3 := testutil.NewTestProject("Done", testutil.WithProjectStatus(domain.ProjectClosed))
	for _, p := range []*domain.Project{p1, p2, p3} {
		require.NoError(t, repo.Create(ctx, p))
	}

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Early", active[0].Name, "ordered by kickoff")
	assert.Equal(t, "Late", active[1].Name)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProjectRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Original")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Name = "Renamed"
	proj.Status = domain.ProjectClosed
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Name)
	assert.Equal(t, domain.ProjectClosed, fetched.Status)

	require.NoError(t, repo.Delete(ctx, proj.ID))
	_, err = repo.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, proj.ID), domain.ErrNotFound)
}

// TestCascadeDelete_ProjectToSchedule verifies that deleting a project removes
// its phases, activities and blockers.
func TestCascadeDelete_ProjectToSchedule(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db)
	phaseRepo := NewSQLitePhaseRepo(db)
	blockerRepo := NewSQLiteBlockerRepo(db)

	proj := testutil.NewTestProject("Cascade")
	require.NoError(t, projRepo.Create(ctx, proj))
	phase := testutil.NewTestPhase(proj.ID, domain.PhaseConnect)
	require.NoError(t, phaseRepo.CreatePhase(ctx, phase))
	act := testutil.NewTestActivity(phase.ID, "C01", testutil.WithSpan("2025-06-02", "2025-06-03", 2))
	require.NoError(t, phaseRepo.CreateActivity(ctx, act))
	blocker := testutil.NewTestBlocker(proj.ID, "2025-06-03")
	require.NoError(t, blockerRepo.Create(ctx, blocker))

	require.NoError(t, projRepo.Delete(ctx, proj.ID))

	_, err := phaseRepo.GetActivity(ctx, act.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "activity should be cascade-deleted")
	_, err = blockerRepo.GetByID(ctx, blocker.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "blocker should be cascade-deleted")
}
