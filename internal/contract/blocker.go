package contract

import "github.com/alexanderramin/samplan/internal/domain"

type OpenBlockerRequest struct {
	ProjectID string             `json:"-"`
	Kind      domain.BlockerKind `json:"kind"`
	Reason    string             `json:"reason" validate:"required,max=500"`
	StartDate domain.Date        `json:"start_date"`
}

type ResolveBlockerRequest struct {
	EndDate    domain.Date `json:"end_date"`
	ImpactDays *int        `json:"impact_days"`
}

type BlockerView struct {
	ID         string             `json:"id"`
	ProjectID  string             `json:"project_id"`
	Kind       domain.BlockerKind `json:"kind"`
	Reason     string             `json:"reason"`
	StartDate  domain.Date        `json:"start_date"`
	EndDate    *domain.Date       `json:"end_date"`
	ImpactDays *int               `json:"impact_days"`
	Resolved   bool               `json:"resolved"`
	Applied    bool               `json:"applied"`
}

func NewBlockerView(b *domain.BlockerPeriod) BlockerView {
	return BlockerView{
		ID:         b.ID,
		ProjectID:  b.ProjectID,
		Kind:       b.Kind,
		Reason:     b.Reason,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		ImpactDays: b.ImpactDays,
		Resolved:   b.Resolved,
		Applied:    b.Applied,
	}
}

// ResolveBlockerResult reports the schedule shift a resolution caused.
type ResolveBlockerResult struct {
	Blocker BlockerView `json:"blocker"`
	// AppliedDays is the working-day shift made; zero means dates are unchanged.
	AppliedDays int      `json:"applied_days"`
	Shifted     []string `json:"shifted,omitempty"`
}
