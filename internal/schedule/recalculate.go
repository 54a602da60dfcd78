package schedule

import (
	"fmt"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/holiday"
	"github.com/alexanderramin/samplan/internal/workday"
)

// Recalculate pushes every dated, not yet completed activity daysToAdd
// working days later. The new start is counted from the first working day of
// the old span, and the end is recomputed from the activity's duration, so
// activities that were back to back stay back to back. Completed activities
// keep their dates. The input is not modified.
func Recalculate(phases []domain.Phase, daysToAdd int, holidays holiday.Set) ([]domain.Phase, error) {
	if daysToAdd < 0 {
		return nil, domain.NewInvalidInput("days", "cannot shift a schedule by %d working days", daysToAdd)
	}
	out := domain.ClonePhases(phases)
	if daysToAdd == 0 {
		return out, nil
	}

	for i := range out {
		for j := range out[i].Activities {
			a := &out[i].Activities[j]
			if a.IsCompleted() || !a.IsDated() || a.DurationDays <= 0 {
				continue
			}
			start, err := workday.AddWorkingDays(workday.NextWorkingDay(*a.StartDate, holidays), daysToAdd, holidays)
			if err != nil {
				return nil, err
			}
			end, err := workday.EndDate(start, a.DurationDays, holidays)
			if err != nil {
				return nil, fmt.Errorf("shifting %s: %w", a.Code, err)
			}
			a.StartDate = start.Ptr()
			a.EndDate = end.Ptr()
		}
	}
	return out, nil
}

// Shifted lists the codes whose dates differ between before and after, in
// phase order. Phases and activities are matched by position.
func Shifted(before, after []domain.Phase) []string {
	var codes []string
	for i := range before {
		if i >= len(after) {
			break
		}
		for j := range before[i].Activities {
			if j >= len(after[i].Activities) {
				break
			}
			if !SameSpan(before[i].Activities[j], after[i].Activities[j]) {
				codes = append(codes, after[i].Activities[j].Code)
			}
		}
	}
	return codes
}

// SameSpan reports whether two activities carry identical dates.
func SameSpan(a, b domain.Activity) bool {
	return sameDate(a.StartDate, b.StartDate) && sameDate(a.EndDate, b.EndDate)
}

func sameDate(a, b *domain.Date) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
