package progress

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/schedule"
	"github.com/alexanderramin/samplan/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) domain.Date { return domain.MustParseDate(s) }

func act(code string, status domain.ActivityStatus, start, end string) domain.Activity {
	a := domain.Activity{Code: code, Status: status, DurationDays: 1}
	if start != "" {
		a.StartDate = d(start).Ptr()
		a.EndDate = d(end).Ptr()
	} else {
		a.DurationDays = 0
	}
	return a
}

func samplePhases() []domain.Phase {
	return []domain.Phase{
		{Type: domain.PhasePrepare, Order: 1, Activities: []domain.Activity{
			act("P01", domain.ActivityPending, "2025-05-26", "2025-05-30"),
		}},
		{Type: domain.PhaseConnect, Order: 2, Activities: []domain.Activity{
			act("C01", domain.ActivityCompleted, "2025-06-02", "2025-06-04"),
			act("C02", domain.ActivityInProgress, "2025-06-05", "2025-06-10"),
			act("C03", "", "", ""),
		}},
		{Type: domain.PhaseRun, Order: 4, Activities: []domain.Activity{
			act("U01", domain.ActivityPending, "2025-06-11", "2025-06-20"),
		}},
	}
}

func TestActualProgress_ExcludesPrepare(t *testing.T) {
	phases := samplePhases()
	// 1 of 4 non-PREPARE activities completed; PREPARE is ignored.
	assert.Equal(t, 25, ActualProgress(phases))

	phases[0].Activities[0].Status = domain.ActivityCompleted
	assert.Equal(t, 25, ActualProgress(phases))
}

func TestActualProgress_Rounding(t *testing.T) {
	phases := []domain.Phase{{Type: domain.PhaseRealize, Activities: []domain.Activity{
		{Status: domain.ActivityCompleted}, {Status: domain.ActivityPending}, {Status: domain.ActivityPending},
	}}}
	assert.Equal(t, 33, ActualProgress(phases))
	phases[0].Activities[1].Status = domain.ActivityCompleted
	assert.Equal(t, 67, ActualProgress(phases))
	assert.Equal(t, 0, ActualProgress(nil))
}

func TestActualProgress_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	phases, err := schedule.Build(d("2025-06-02"), template.DefaultDurations(), nil, template.Base())
	require.NoError(t, err)

	type ref struct{ p, a int }
	var refs []ref
	for i := range phases {
		for j := range phases[i].Activities {
			refs = append(refs, ref{i, j})
		}
	}

	for trial := 0; trial < 50; trial++ {
		work := domain.ClonePhases(phases)
		rng.Shuffle(len(refs), func(i, j int) { refs[i], refs[j] = refs[j], refs[i] })
		prev := ActualProgress(work)
		assert.Equal(t, 0, prev)
		for _, r := range refs {
			work[r.p].Activities[r.a].Status = domain.ActivityCompleted
			cur := ActualProgress(work)
			assert.GreaterOrEqual(t, cur, prev, "trial %d", trial)
			prev = cur
		}
		assert.Equal(t, 100, prev)
	}
}

func TestProjectEndDate(t *testing.T) {
	assert.Equal(t, "2025-06-20", ProjectEndDate(samplePhases(), d("2025-06-02")).String())

	onlyPrepare := samplePhases()[:1]
	assert.Equal(t, "2025-06-02", ProjectEndDate(onlyPrepare, d("2025-06-02")).String())
}

func TestEstimatedProgress(t *testing.T) {
	start, end := d("2025-06-01"), d("2025-06-11")
	assert.Equal(t, 0, EstimatedProgress(start, end, d("2025-05-20")))
	assert.Equal(t, 0, EstimatedProgress(start, end, start))
	assert.Equal(t, 50, EstimatedProgress(start, end, d("2025-06-06")))
	assert.Equal(t, 100, EstimatedProgress(start, end, end))
	assert.Equal(t, 100, EstimatedProgress(start, end, d("2026-01-01")))

	// Degenerate span.
	assert.Equal(t, 100, EstimatedProgress(start, start, start))
	assert.Equal(t, 0, EstimatedProgress(start, start, d("2025-05-31")))
}

func TestDelayedActivities(t *testing.T) {
	phases := samplePhases()
	// On 2025-06-12: P01 and C02 ended before and are open; C01 is done; U01 is running.
	assert.Equal(t, 2, DelayedActivities(phases, d("2025-06-12")))
	// An activity ending today is not delayed yet.
	assert.Equal(t, 1, DelayedActivities(phases, d("2025-06-10")))
	assert.Equal(t, 0, DelayedActivities(phases, d("2025-05-01")))
}

func TestVariance_Ordering(t *testing.T) {
	policy := DefaultVariancePolicy()
	ahead := Variance(50, 60, 0, policy)
	onTrack := Variance(50, 50, 0, policy)
	behind := Variance(50, 40, 0, policy)

	assert.Greater(t, ahead.Status.Rank(), onTrack.Status.Rank())
	assert.Greater(t, onTrack.Status.Rank(), behind.Status.Rank())
	assert.Equal(t, domain.VarianceAhead, ahead.Status)
	assert.Equal(t, domain.VarianceOnTrack, onTrack.Status)
	assert.Equal(t, domain.VarianceBehind, behind.Status)
	assert.Equal(t, "On track", onTrack.Label)
	assert.Equal(t, -10, behind.Gap)
}

func TestVariance_Critical(t *testing.T) {
	policy := DefaultVariancePolicy()
	assert.Equal(t, domain.VarianceCritical, Variance(80, 40, 0, policy).Status)
	assert.Equal(t, domain.VarianceCritical, Variance(50, 50, 3, policy).Status)

	policy.CriticalDelayed = 0
	assert.Equal(t, domain.VarianceOnTrack, Variance(50, 50, 10, policy).Status)
}

func TestVariance_MonotonicInGap(t *testing.T) {
	policy := DefaultVariancePolicy()
	prev := Variance(50, 0, 0, policy).Status.Rank()
	for actual := 1; actual <= 100; actual++ {
		cur := Variance(50, actual, 0, policy).Status.Rank()
		assert.GreaterOrEqual(t, cur, prev, "actual %d", actual)
		prev = cur
	}
}

func TestVariancePolicy_Validate(t *testing.T) {
	require.NoError(t, DefaultVariancePolicy().Validate())

	bad := DefaultVariancePolicy()
	bad.CriticalGap = 2
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)

	bad = DefaultVariancePolicy()
	bad.AheadTolerance = -1
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)
}

func TestSummarize(t *testing.T) {
	s := Summarize(samplePhases(), d("2025-06-02"), d("2025-06-12"), DefaultVariancePolicy())
	assert.Equal(t, "2025-06-20", s.EndDate.String())
	assert.Equal(t, 25, s.ActualProgress)
	// 10 of 18 days elapsed.
	assert.Equal(t, 56, s.EstimatedProgress)
	assert.Equal(t, 2, s.DelayedActivities)
	assert.Equal(t, domain.VarianceCritical, s.Variance.Status)

	require.Len(t, s.Phases, 3)
	connect := s.Phases[1]
	assert.Equal(t, 3, connect.Total)
	assert.Equal(t, 1, connect.Completed)
	assert.Equal(t, 1, connect.Delayed)
	assert.Equal(t, 33, connect.Progress)
	assert.Equal(t, "2025-06-02", connect.Start.String())
	assert.Equal(t, "2025-06-10", connect.End.String())
}

func TestSummarize_PhaseSpanIgnoresActivityOrder(t *testing.T) {
	phases := []domain.Phase{
		{Type: domain.PhaseRealize, Order: 3, Activities: []domain.Activity{
			act("R01", domain.ActivityCompleted, "2025-06-09", "2025-06-20"),
			act("R02", domain.ActivityPending, "2025-06-02", "2025-06-06"),
			act("R03", "", "", ""),
		}},
	}
	s := Summarize(phases, d("2025-06-02"), d("2025-06-02"), DefaultVariancePolicy())
	require.Len(t, s.Phases, 1)
	assert.Equal(t, "2025-06-02", s.Phases[0].Start.String())
	assert.Equal(t, "2025-06-20", s.Phases[0].End.String())
}
