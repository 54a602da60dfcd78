package workday

import (
	"testing"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) domain.Date { return domain.MustParseDate(s) }

func TestEndDate_NoHolidays(t *testing.T) {
	// Monday 2025-06-02, five working days ends Friday.
	end, err := EndDate(d("2025-06-02"), 5, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-06", end.String())

	// Six working days crosses the weekend.
	end, err = EndDate(d("2025-06-02"), 6, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-09", end.String())
}

func TestEndDate_DurationOneIsStart(t *testing.T) {
	end, err := EndDate(d("2025-06-04"), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-04", end.String())
}

func TestEndDate_NonWorkingStartNotCounted(t *testing.T) {
	// Saturday start: counting begins Monday.
	end, err := EndDate(d("2025-06-07"), 2, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", end.String())
}

func TestEndDate_SkipsHolidays(t *testing.T) {
	holidays := holiday.FromProvider(holiday.PeruProvider{}, 2025)
	// Mon 2025-07-28 and Tue 07-29 are Fiestas Patrias.
	end, err := EndDate(d("2025-07-25"), 3, holidays)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-31", end.String()) // Fri 25, Wed 30, Thu 31
}

func TestEndDate_WeekendHolidayNotDoubleCounted(t *testing.T) {
	// 2026-08-30 (Santa Rosa) falls on a Sunday.
	set := holiday.NewSet(domain.Holiday{Date: d("2026-08-30"), Name: "Santa Rosa de Lima"})
	withHoliday, err := EndDate(d("2026-08-27"), 4, set)
	require.NoError(t, err)
	without, err := EndDate(d("2026-08-27"), 4, nil)
	require.NoError(t, err)
	assert.Equal(t, without, withHoliday)
	assert.Equal(t, "2026-09-01", withHoliday.String())
}

func TestEndDate_InvalidDuration(t *testing.T) {
	_, err := EndDate(d("2025-06-02"), 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = StartDate(d("2025-06-02"), -1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStartDate_CrossesYearBoundary(t *testing.T) {
	holidays := holiday.FromProvider(holiday.PeruProvider{}, 2024, 2025)
	// Fri 2025-01-03 back 4 working days: Jan 3, Jan 2, (Jan 1 holiday), Dec 31, Dec 30.
	start, err := StartDate(d("2025-01-03"), 4, holidays)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-30", start.String())
}

func TestStartDate_NonWorkingEnd(t *testing.T) {
	// Sunday anchor: Sunday and Saturday are skipped, Friday and Thursday counted.
	start, err := StartDate(d("2025-06-01"), 2, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-29", start.String())
}

func TestRoundTrip_EndThenStart(t *testing.T) {
	holidays := holiday.FromProvider(holiday.PeruProvider{}, 2024, 2025, 2026)
	for start := d("2025-01-01"); start.Before(d("2026-01-01")); start = start.AddDays(1) {
		if !IsWorkingDay(start, holidays) {
			continue
		}
		for n := 1; n <= 30; n += 7 {
			end, err := EndDate(start, n, holidays)
			require.NoError(t, err)
			back, err := StartDate(end, n, holidays)
			require.NoError(t, err)
			assert.Equal(t, start, back, "start %s n=%d", start, n)
		}
	}
}

func TestSpanCountsExactlyDuration(t *testing.T) {
	holidays := holiday.FromProvider(holiday.PeruProvider{}, 2025, 2026)
	for _, n := range []int{1, 2, 5, 13, 40} {
		start := d("2025-12-22")
		end, err := EndDate(start, n, holidays)
		require.NoError(t, err)
		assert.Equal(t, n, CountWorkingDays(start, end, holidays), "n=%d", n)
		assert.True(t, IsWorkingDay(end, holidays), "span ends on a working day")
	}
}

func TestNextWorkingDay(t *testing.T) {
	holidays := holiday.FromProvider(holiday.PeruProvider{}, 2025)
	assert.Equal(t, "2025-06-02", NextWorkingDay(d("2025-06-02"), holidays).String())
	assert.Equal(t, "2025-06-02", NextWorkingDay(d("2025-05-31"), holidays).String())
	assert.Equal(t, "2025-07-30", NextWorkingDay(d("2025-07-26"), holidays).String())
}

func TestAddWorkingDays(t *testing.T) {
	got, err := AddWorkingDays(d("2025-06-05"), 2, nil) // Thu + 2 = Mon
	require.NoError(t, err)
	assert.Equal(t, "2025-06-09", got.String())

	got, err = AddWorkingDays(d("2025-06-05"), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-05", got.String())

	_, err = AddWorkingDays(d("2025-06-05"), -1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCountWorkingDays_EmptyRange(t *testing.T) {
	assert.Equal(t, 0, CountWorkingDays(d("2025-06-06"), d("2025-06-02"), nil))
	assert.Equal(t, 0, CountWorkingDays(d("2025-06-07"), d("2025-06-08"), nil))
}
