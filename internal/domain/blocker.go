package domain

import "time"

// BlockerPeriod records a blocker or pause on a project. Once resolved with a
// positive ImpactDays, pending activities are shifted by that many working
// days; Applied marks that the shift has already been made.
type BlockerPeriod struct {
	ID         string
	ProjectID  string
	Kind       BlockerKind
	Reason     string
	StartDate  Date
	EndDate    *Date
	ImpactDays *int
	Resolved   bool
	Applied    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Resolve closes the period. A nil or zero impact never shifts the schedule.
func (b *BlockerPeriod) Resolve(end Date, impactDays *int, now time.Time) error {
	if b.Resolved {
		return NewInvalidInput("blocker", "%s is already resolved", b.ID)
	}
	if end.Before(b.StartDate) {
		return NewInvalidInput("end_date", "%s is before the blocker start %s", end, b.StartDate)
	}
	if impactDays != nil && *impactDays < 0 {
		return NewInvalidInput("impact_days", "must not be negative (got %d)", *impactDays)
	}
	b.EndDate = &end
	b.ImpactDays = impactDays
	b.Resolved = true
	b.UpdatedAt = now
	return nil
}

// PendingImpact is the shift this period still owes the schedule.
func (b *BlockerPeriod) PendingImpact() int {
	if !b.Resolved || b.Applied || b.ImpactDays == nil || *b.ImpactDays <= 0 {
		return 0
	}
	return *b.ImpactDays
}

// TotalPendingImpact sums PendingImpact across periods.
func TotalPendingImpact(periods []*BlockerPeriod) int {
	total := 0
	for _, p := range periods {
		total += p.PendingImpact()
	}
	return total
}
