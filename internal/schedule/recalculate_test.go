package schedule

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/holiday"
	"github.com/alexanderramin/samplan/internal/template"
	"github.com/alexanderramin/samplan/internal/workday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDefault(t *testing.T, kickoff domain.Date, holidays holiday.Set) []domain.Phase {
	t.Helper()
	phases, err := Build(kickoff, template.DefaultDurations(), holidays, template.Base())
	require.NoError(t, err)
	return phases
}

// completePrefix marks the first n dated activities (schedule order) completed.
func completePrefix(phases []domain.Phase, n int) {
	for i := range phases {
		for j := range phases[i].Activities {
			a := &phases[i].Activities[j]
			if n == 0 {
				return
			}
			if a.IsDated() {
				a.Status = domain.ActivityCompleted
				a.Progress = 100
				n--
			}
		}
	}
}

func allDated(phases []domain.Phase) []domain.Activity {
	var out []domain.Activity
	for _, p := range phases {
		for _, a := range p.Activities {
			if a.IsDated() {
				out = append(out, a)
			}
		}
	}
	return out
}

func TestRecalculate_ShiftsPendingByWorkingDays(t *testing.T) {
	phases := buildDefault(t, d("2025-06-02"), nil)
	completePrefix(phases, 6) // all of PREPARE's four dated activities plus C01, C02

	shifted, err := Recalculate(phases, 3, nil)
	require.NoError(t, err)

	// C03 starts Fri 2025-06-13, after C01 (06-02) and C02 (06-03..06-12).
	before := findActivity(t, phases, "C03")
	after := findActivity(t, shifted, "C03")
	assert.Equal(t, "2025-06-13", before.StartDate.String())
	assert.Equal(t, "2025-06-18", after.StartDate.String())
	assert.Equal(t, 3, workday.CountWorkingDays(before.StartDate.AddDays(1), *after.StartDate, nil))
	assert.Equal(t, before.DurationDays, workday.CountWorkingDays(*after.StartDate, *after.EndDate, nil))

	for _, code := range []string{"P01", "P02", "P03", "P04", "C01", "C02"} {
		assert.Equal(t, findActivity(t, phases, code), findActivity(t, shifted, code), code)
	}
}

func TestRecalculate_DoesNotMutateInput(t *testing.T) {
	phases := buildDefault(t, d("2025-06-02"), nil)
	snapshot := domain.ClonePhases(phases)

	_, err := Recalculate(phases, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, snapshot, phases)
}

func TestRecalculate_ZeroIsCopy(t *testing.T) {
	phases := buildDefault(t, d("2025-06-02"), nil)
	out, err := Recalculate(phases, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, phases, out)
	assert.Empty(t, Shifted(phases, out))

	*out[1].Activities[0].StartDate = d("2030-01-01")
	assert.NotEqual(t, "2030-01-01", phases[1].Activities[0].StartDate.String())
}

func TestRecalculate_RejectsNegative(t *testing.T) {
	_, err := Recalculate(nil, -2, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecalculate_SkipsHolidays(t *testing.T) {
	holidays := holiday.FromProvider(holiday.PeruProvider{}, 2025)
	phases := []domain.Phase{{
		Type: domain.PhaseRealize,
		Activities: []domain.Activity{{
			Code: "R01", DurationDays: 1, Status: domain.ActivityPending,
			StartDate: d("2025-07-25").Ptr(), EndDate: d("2025-07-25").Ptr(),
		}},
	}}

	// One working day after Fri 07-25 skips the weekend and Fiestas Patrias.
	out, err := Recalculate(phases, 1, holidays)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-30", out[0].Activities[0].StartDate.String())
	assert.Equal(t, "2025-07-30", out[0].Activities[0].EndDate.String())
}

func TestRecalculate_MilestonesAndCompletedUntouched(t *testing.T) {
	phases := buildDefault(t, d("2025-06-02"), nil)
	completePrefix(phases, 100)

	out, err := Recalculate(phases, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, phases, out)
}

func TestShifted_ListsChangedCodes(t *testing.T) {
	phases := buildDefault(t, d("2025-06-02"), nil)
	completePrefix(phases, 4)

	out, err := Recalculate(phases, 2, nil)
	require.NoError(t, err)
	codes := Shifted(phases, out)
	assert.NotContains(t, codes, "P01")
	assert.Contains(t, codes, "C01")
	assert.Contains(t, codes, "U03")
	assert.NotContains(t, codes, "U04")
}

func TestRecalculate_OrderAndNoOverlapProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		kickoff := d("2024-01-01").AddDays(rng.Intn(2 * 365))
		holidays := holiday.FromProvider(holiday.PeruProvider{}, kickoff.Year()-1, kickoff.Year(), kickoff.Year()+1, kickoff.Year()+2)
		durations := domain.PhaseDurations{
			Prepare: 1 + rng.Intn(20),
			Connect: 1 + rng.Intn(30),
			Realize: 1 + rng.Intn(80),
			Run:     1 + rng.Intn(20),
		}
		phases, err := Build(kickoff, durations, holidays, template.Base())
		require.NoError(t, err)

		completed := rng.Intn(len(allDated(phases)) + 1)
		completePrefix(phases, completed)
		n := 1 + rng.Intn(25)

		out, err := Recalculate(phases, n, holidays)
		require.NoError(t, err, "trial %d", trial)

		beforeAll, afterAll := allDated(phases), allDated(out)
		require.Len(t, afterAll, len(beforeAll))

		for i := range afterAll {
			b, a := beforeAll[i], afterAll[i]
			if b.IsCompleted() {
				assert.Equal(t, b, a, "trial %d: completed %s moved", trial, b.Code)
				continue
			}
			assert.Equal(t, a.DurationDays, workday.CountWorkingDays(*a.StartDate, *a.EndDate, holidays),
				"trial %d: %s span", trial, a.Code)
			assert.True(t, a.StartDate.After(*b.StartDate), "trial %d: %s moved forward", trial, a.Code)
		}

		// Pending activities form a suffix; they stay ordered and back to back.
		for i := completed + 1; i < len(afterAll); i++ {
			prev, cur := afterAll[i-1], afterAll[i]
			assert.True(t, cur.StartDate.After(*prev.EndDate), "trial %d: %s overlaps %s", trial, cur.Code, prev.Code)
			gap := workday.CountWorkingDays(prev.EndDate.AddDays(1), cur.StartDate.AddDays(-1), holidays)
			assert.Equal(t, 0, gap, "trial %d: gap between %s and %s", trial, prev.Code, cur.Code)
		}
	}
}
