package domain

import "time"

type Phase struct {
	ID         string
	ProjectID  string
	Type       PhaseType
	Order      int
	Activities []Activity
}

type Activity struct {
	ID                string
	PhaseID           string
	Code              string
	Name              string
	Order             int
	DurationDays      int
	StartDate         *Date
	EndDate           *Date
	Status            ActivityStatus
	Progress          int
	ParticipationType ParticipationType
	UpdatedAt         time.Time
}

// IsMilestone reports whether the activity is a zero-duration marker.
// Milestones carry no dates.
func (a *Activity) IsMilestone() bool { return a.DurationDays == 0 }

func (a *Activity) IsCompleted() bool { return a.Status == ActivityCompleted }

// IsDated reports whether both dates are set.
func (a *Activity) IsDated() bool { return a.StartDate != nil && a.EndDate != nil }

// ValidateDates checks the duration/date pairing: dates are absent exactly
// when the duration is zero, and the span is never inverted.
func (a *Activity) ValidateDates() error {
	switch {
	case a.DurationDays < 0:
		return NewInvalidInput("duration", "activity %s has negative duration %d", a.Code, a.DurationDays)
	case a.DurationDays == 0 && (a.StartDate != nil || a.EndDate != nil):
		return NewInvalidInput("dates", "milestone %s must not carry dates", a.Code)
	case a.DurationDays > 0 && !a.IsDated():
		return NewInvalidInput("dates", "activity %s with duration %d needs both dates", a.Code, a.DurationDays)
	case a.DurationDays > 0 && a.EndDate.Before(*a.StartDate):
		return NewInvalidInput("dates", "activity %s ends %s before it starts %s", a.Code, a.EndDate, a.StartDate)
	}
	return nil
}

// SetProgress records partial progress. 100 completes the activity; anything
// lower on a completed activity reopens it.
func (a *Activity) SetProgress(pct int, now time.Time) error {
	if pct < 0 || pct > 100 {
		return NewInvalidInput("progress", "%d is outside 0-100", pct)
	}
	a.Progress = pct
	switch {
	case pct == 100:
		a.Status = ActivityCompleted
	case a.Status == ActivityCompleted:
		a.Status = ActivityInProgress
	case pct > 0 && a.Status == ActivityPending:
		a.Status = ActivityInProgress
	}
	a.UpdatedAt = now
	return nil
}

// Start moves a pending or blocked activity into progress.
func (a *Activity) Start(now time.Time) error {
	switch a.Status {
	case ActivityInProgress:
		return nil
	case ActivityPending, ActivityBlocked:
		a.Status = ActivityInProgress
		a.UpdatedAt = now
		return nil
	case ActivityCompleted:
		return NewInvalidInput("status", "cannot start activity %s: already completed (reopen it first)", a.Code)
	}
	return NewInvalidInput("status", "cannot start activity %s: unknown status %q", a.Code, a.Status)
}

// Complete marks the activity done with full progress. Idempotent.
func (a *Activity) Complete(now time.Time) error {
	if a.Status == ActivityCompleted {
		return nil
	}
	a.Status = ActivityCompleted
	a.Progress = 100
	a.UpdatedAt = now
	return nil
}

// Block flags the activity as waiting on an external impediment.
func (a *Activity) Block(now time.Time) error {
	if a.Status == ActivityCompleted {
		return NewInvalidInput("status", "cannot block activity %s: already completed", a.Code)
	}
	a.Status = ActivityBlocked
	a.UpdatedAt = now
	return nil
}

// Reopen returns a completed activity to progress, keeping it below 100%.
func (a *Activity) Reopen(now time.Time) error {
	if a.Status != ActivityCompleted {
		return NewInvalidInput("status", "cannot reopen activity %s: status is %s", a.Code, a.Status)
	}
	a.Status = ActivityInProgress
	if a.Progress >= 100 {
		a.Progress = 90
	}
	a.UpdatedAt = now
	return nil
}

// Reset puts an activity that has not been completed back to pending with
// no progress.
func (a *Activity) Reset(now time.Time) error {
	if a.Status == ActivityCompleted {
		return NewInvalidInput("status", "cannot reset activity %s: already completed (reopen it first)", a.Code)
	}
	a.Status = ActivityPending
	a.Progress = 0
	a.UpdatedAt = now
	return nil
}

// ClonePhases deep-copies phases, including activity date pointers.
func ClonePhases(phases []Phase) []Phase {
	out := make([]Phase, len(phases))
	for i, p := range phases {
		out[i] = p
		out[i].Activities = make([]Activity, len(p.Activities))
		for j, a := range p.Activities {
			if a.StartDate != nil {
				a.StartDate = a.StartDate.Ptr()
			}
			if a.EndDate != nil {
				a.EndDate = a.EndDate.Ptr()
			}
			out[i].Activities[j] = a
		}
	}
	return out
}

// ActivityTemplate is a catalog entry from which scheduled activities are
// produced. DefaultDuration 0 marks a milestone.
type ActivityTemplate struct {
	Code              string            `json:"code"`
	Name              string            `json:"name"`
	Order             int               `json:"order"`
	DefaultDuration   int               `json:"default_duration"`
	ParticipationType ParticipationType `json:"participation_type"`
}
