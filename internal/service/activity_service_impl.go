package service

import (
	"context"
	"time"

	"github.com/alexanderramin/samplan/internal/db"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/repository"
)

type activityService struct {
	uow      db.UnitOfWork
	authz    Authorizer
	audit    AuditRecorder
	observer UseCaseObserver
}

func NewActivityService(uow db.UnitOfWork, authz Authorizer, audit AuditRecorder, observers ...UseCaseObserver) ActivityService {
	return &activityService{
		uow:      uow,
		authz:    authorizerOrAdmin(authz),
		audit:    auditOrNoop(audit),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *activityService) SetStatus(ctx context.Context, activityID string, status domain.ActivityStatus, pct *int) (*domain.Activity, error) {
	session, err := s.authz.RequireRole(ctx, "update activities", activityEditors...)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.NewInvalidInput("status", "unknown activity status %q", status)
	}
	if status == domain.ActivityCompleted && pct != nil && *pct != 100 {
		return nil, domain.NewInvalidInput("progress", "a completed activity is at 100%%, got %d", *pct)
	}

	var updated *domain.Activity
	var projectID string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)

		a, err := txPhases.GetActivity(ctx, activityID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := applyStatus(a, status, now); err != nil {
			return err
		}
		if pct != nil {
			if err := a.SetProgress(*pct, now); err != nil {
				return err
			}
		}
		if err := txPhases.UpdateActivity(ctx, a); err != nil {
			return err
		}
		projectID, err = txPhases.ActivityProjectID(ctx, a.ID)
		if err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.observer, session, "activity", updated.ID, "status", map[string]any{
		"project_id": projectID,
		"code":       updated.Code,
		"status":     updated.Status,
		"progress":   updated.Progress,
	})
	return updated, nil
}

func applyStatus(a *domain.Activity, status domain.ActivityStatus, now time.Time) error {
	switch status {
	case domain.ActivityPending:
		return a.Reset(now)
	case domain.ActivityInProgress:
		if a.IsCompleted() {
			return a.Reopen(now)
		}
		return a.Start(now)
	case domain.ActivityCompleted:
		return a.Complete(now)
	case domain.ActivityBlocked:
		return a.Block(now)
	}
	return domain.NewInvalidInput("status", "unknown activity status %q", status)
}
