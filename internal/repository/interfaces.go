package repository

import (
	"context"

	"github.com/alexanderramin/samplan/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// PhaseRepo stores phases together with their activities.
type PhaseRepo interface {
	CreatePhase(ctx context.Context, p *domain.Phase) error
	CreateActivity(ctx context.Context, a *domain.Activity) error
	// ListByProject returns the project's phases in order, each with its
	// activities in order.
	ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error)
	GetActivity(ctx context.Context, id string) (*domain.Activity, error)
	// ActivityProjectID returns the project owning an activity.
	ActivityProjectID(ctx context.Context, activityID string) (string, error)
	UpdateActivity(ctx context.Context, a *domain.Activity) error
}

type HolidayRepo interface {
	// Create inserts h unless a holiday already exists on its date, and
	// reports whether a row was written.
	Create(ctx context.Context, h *domain.Holiday) (bool, error)
	ListByYears(ctx context.Context, years []int) ([]domain.Holiday, error)
	Delete(ctx context.Context, date domain.Date) error
}

type BlockerRepo interface {
	Create(ctx context.Context, b *domain.BlockerPeriod) error
	GetByID(ctx context.Context, id string) (*domain.BlockerPeriod, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.BlockerPeriod, error)
	Update(ctx context.Context, b *domain.BlockerPeriod) error
}

type AuditRepo interface {
	Create(ctx context.Context, e *domain.AuditEntry) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*domain.AuditEntry, error)
}
