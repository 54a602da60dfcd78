package service

import (
	"context"
	"slices"

	"github.com/alexanderramin/samplan/internal/domain"
)

// Authorizer gates schedule-affecting operations. A refusal must happen
// before any computation or write.
type Authorizer interface {
	RequireRole(ctx context.Context, operation string, allowed ...domain.Role) (domain.Session, error)
}

// StaticAuthorizer answers for a single configured session.
type StaticAuthorizer struct {
	Session domain.Session
}

func (a StaticAuthorizer) RequireRole(_ context.Context, operation string, allowed ...domain.Role) (domain.Session, error) {
	if len(allowed) == 0 || slices.Contains(allowed, a.Session.Role) {
		return a.Session, nil
	}
	return domain.Session{}, &domain.ForbiddenError{Role: a.Session.Role, Operation: operation}
}

var (
	scheduleEditors = []domain.Role{domain.RoleAdmin, domain.RoleProjectManager}
	activityEditors = []domain.Role{domain.RoleAdmin, domain.RoleProjectManager, domain.RoleConsultant}
)

func authorizerOrAdmin(a Authorizer) Authorizer {
	if a == nil {
		return StaticAuthorizer{Session: domain.Session{Actor: "system", Role: domain.RoleAdmin}}
	}
	return a
}
