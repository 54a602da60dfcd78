package contract

import "github.com/alexanderramin/samplan/internal/domain"

// UpdateActivityRequest changes an activity's status. Status accepts the
// stored values or their English aliases.
type UpdateActivityRequest struct {
	Status   string `json:"status" validate:"required"`
	Progress *int   `json:"progress,omitempty"`
}

func NewActivityView(a *domain.Activity) ActivityView {
	return ActivityView{
		ID:                a.ID,
		Code:              a.Code,
		Name:              a.Name,
		Order:             a.Order,
		DurationDays:      a.DurationDays,
		StartDate:         a.StartDate,
		EndDate:           a.EndDate,
		Status:            a.Status,
		Progress:          a.Progress,
		ParticipationType: a.ParticipationType,
	}
}

type ImportHolidaysRequest struct {
	Year int `json:"year" validate:"required"`
}
