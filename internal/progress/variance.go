package progress

import (
	"fmt"

	"github.com/alexanderramin/samplan/internal/domain"
)

// VariancePolicy holds the cutoffs, in percentage points, used to classify a
// project against its schedule.
type VariancePolicy struct {
	// AheadTolerance is how far actual may exceed estimated and still count as
	// on track.
	AheadTolerance int `validate:"gte=0"`
	// BehindGap is the largest shortfall still considered on track.
	BehindGap int `validate:"gte=0"`
	// CriticalGap is the largest shortfall still considered merely behind.
	CriticalGap int `validate:"gtefield=BehindGap"`
	// CriticalDelayed is the number of delayed activities that makes a project
	// critical on its own. Zero disables the rule.
	CriticalDelayed int `validate:"gte=0"`
}

func DefaultVariancePolicy() VariancePolicy {
	return VariancePolicy{
		AheadTolerance:  5,
		BehindGap:       5,
		CriticalGap:     20,
		CriticalDelayed: 3,
	}
}

func (p VariancePolicy) Validate() error {
	return domain.ValidateStruct(p)
}

type VarianceResult struct {
	Status domain.VarianceStatus
	Label  string
	// Gap is actual minus estimated; positive means ahead.
	Gap int
}

var varianceLabels = map[domain.VarianceStatus]string{
	domain.VarianceAhead:    "Ahead of schedule",
	domain.VarianceOnTrack:  "On track",
	domain.VarianceBehind:   "Behind schedule",
	domain.VarianceCritical: "Critical",
}

// Variance classifies actual against estimated progress. Checks run in
// order: ahead, critical, behind, on track.
func Variance(estimated, actual, delayed int, policy VariancePolicy) VarianceResult {
	gap := actual - estimated
	var status domain.VarianceStatus
	switch {
	case gap > policy.AheadTolerance:
		status = domain.VarianceAhead
	case policy.CriticalDelayed > 0 && delayed >= policy.CriticalDelayed,
		-gap > policy.CriticalGap:
		status = domain.VarianceCritical
	case -gap > policy.BehindGap:
		status = domain.VarianceBehind
	default:
		status = domain.VarianceOnTrack
	}
	return VarianceResult{Status: status, Label: varianceLabels[status], Gap: gap}
}

func (r VarianceResult) String() string {
	return fmt.Sprintf("%s (%+d pts)", r.Label, r.Gap)
}
