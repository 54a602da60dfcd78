// Package progress derives read-time figures from a dated schedule: actual
// and expected completion, delayed activities and the variance between them.
// Everything here is a pure function of its arguments.
package progress

import (
	"math"

	"github.com/alexanderramin/samplan/internal/domain"
)

// ActualProgress is the share of completed activities, in percent, counted
// over every phase except PREPARE. Activities count equally regardless of
// duration.
func ActualProgress(phases []domain.Phase) int {
	total, completed := 0, 0
	for _, p := range phases {
		if p.Type == domain.PhasePrepare {
			continue
		}
		for _, a := range p.Activities {
			total++
			if a.IsCompleted() {
				completed++
			}
		}
	}
	return percent(completed, total)
}

// ProjectEndDate is the latest end date outside PREPARE, or fallback when no
// such activity is dated.
func ProjectEndDate(phases []domain.Phase, fallback domain.Date) domain.Date {
	var end domain.Date
	for _, p := range phases {
		if p.Type == domain.PhasePrepare {
			continue
		}
		for _, a := range p.Activities {
			if a.EndDate != nil && (end.IsZero() || a.EndDate.After(end)) {
				end = *a.EndDate
			}
		}
	}
	if end.IsZero() {
		return fallback
	}
	return end
}

// EstimatedProgress is the share of calendar time elapsed between start and
// end on today, clamped to 0..100.
func EstimatedProgress(start, end, today domain.Date) int {
	if today.Before(start) {
		return 0
	}
	if !today.Before(end) {
		return 100
	}
	return percent(start.DaysUntil(today), start.DaysUntil(end))
}

// DelayedActivities counts activities in any phase whose end date is before
// today and that are not completed.
func DelayedActivities(phases []domain.Phase, today domain.Date) int {
	n := 0
	for _, p := range phases {
		for _, a := range p.Activities {
			if IsDelayed(a, today) {
				n++
			}
		}
	}
	return n
}

func IsDelayed(a domain.Activity, today domain.Date) bool {
	return a.EndDate != nil && a.EndDate.Before(today) && !a.IsCompleted()
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(part) / float64(whole)))
	return min(max(pct, 0), 100)
}
