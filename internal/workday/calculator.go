// Package workday walks calendar days forward and backward counting only
// working days: not Saturday, not Sunday, not a holiday.
//
// Every function takes the holiday set explicitly. Callers must load the
// holidays of every year a walk can reach (the kickoff year and one on either
// side is enough for SAM schedules); years with no data count as having no
// holidays.
package workday

import (
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/holiday"
)

// IsWorkingDay reports whether d is a weekday that is not a holiday.
func IsWorkingDay(d domain.Date, holidays holiday.Set) bool {
	return !d.IsWeekend() && !holidays.Contains(d)
}

// EndDate returns the last of n consecutive working days starting at start.
// start is counted when it is a working day; otherwise counting begins at
// the next working day.
func EndDate(start domain.Date, n int, holidays holiday.Set) (domain.Date, error) {
	if err := checkDuration(n); err != nil {
		return domain.Date{}, err
	}
	return walk(start, n, 1, holidays), nil
}

// StartDate is EndDate mirrored: the earliest of n consecutive working days
// ending at end.
func StartDate(end domain.Date, n int, holidays holiday.Set) (domain.Date, error) {
	if err := checkDuration(n); err != nil {
		return domain.Date{}, err
	}
	return walk(end, n, -1, holidays), nil
}

// NextWorkingDay returns d if it is a working day, otherwise the first
// working day after it.
func NextWorkingDay(d domain.Date, holidays holiday.Set) domain.Date {
	for !IsWorkingDay(d, holidays) {
		d = d.AddDays(1)
	}
	return d
}

// AddWorkingDays moves d forward until n working days strictly after d have
// been passed, and returns the last of them. n == 0 returns d unchanged.
func AddWorkingDays(d domain.Date, n int, holidays holiday.Set) (domain.Date, error) {
	if n < 0 {
		return domain.Date{}, domain.NewInvalidInput("days", "cannot add %d working days", n)
	}
	for n > 0 {
		d = d.AddDays(1)
		if IsWorkingDay(d, holidays) {
			n--
		}
	}
	return d, nil
}

// CountWorkingDays counts working days in [from, to]. It is 0 when to is
// before from.
func CountWorkingDays(from, to domain.Date, holidays holiday.Set) int {
	count := 0
	for d := from; !d.After(to); d = d.AddDays(1) {
		if IsWorkingDay(d, holidays) {
			count++
		}
	}
	return count
}

// walk consumes n working days from d in direction step (+1 or -1) and
// returns the date of the last one consumed.
func walk(d domain.Date, n, step int, holidays holiday.Set) domain.Date {
	consumed := 0
	for {
		if IsWorkingDay(d, holidays) {
			consumed++
			if consumed == n {
				return d
			}
		}
		d = d.AddDays(step)
	}
}

func checkDuration(n int) error {
	if n < 1 {
		return domain.NewInvalidInput("duration", "working-day duration must be at least 1 (got %d)", n)
	}
	return nil
}
