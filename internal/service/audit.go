package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/repository"
	"github.com/google/uuid"
)

// AuditRecorder stores a record of a schedule-affecting operation.
type AuditRecorder interface {
	Record(ctx context.Context, actor, entityType, entityID, action string, payload any) error
}

type NoopAuditRecorder struct{}

func (NoopAuditRecorder) Record(context.Context, string, string, string, string, any) error { return nil }

type repoAuditRecorder struct {
	repo repository.AuditRepo
}

// NewAuditRecorder writes audit entries through repo with JSON payloads.
func NewAuditRecorder(repo repository.AuditRepo) AuditRecorder {
	return &repoAuditRecorder{repo: repo}
}

func (r *repoAuditRecorder) Record(ctx context.Context, actor, entityType, entityID, action string, payload any) error {
	data := []byte("{}")
	if payload != nil {
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return fmt.Errorf("encoding audit payload: %w", err)
		}
	}
	return r.repo.Create(ctx, &domain.AuditEntry{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
		Payload:    string(data),
		CreatedAt:  time.Now().UTC(),
	})
}

func auditOrNoop(a AuditRecorder) AuditRecorder {
	if a == nil {
		return NoopAuditRecorder{}
	}
	return a
}

// recordAudit runs after commit; a failure is reported to the observer and
// never fails the operation that triggered it.
func recordAudit(ctx context.Context, audit AuditRecorder, observer UseCaseObserver, session domain.Session, entityType, entityID, action string, payload any) {
	startedAt := time.Now().UTC()
	err := audit.Record(ctx, session.Actor, entityType, entityID, action, payload)
	if err == nil {
		return
	}
	observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "audit",
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   false,
		Err:       err,
		Fields: map[string]any{
			"entity_type": entityType,
			"entity_id":   entityID,
			"action":      action,
		},
	})
}
