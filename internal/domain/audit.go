package domain

import "time"

// Session identifies who is running an operation.
type Session struct {
	Actor string
	Role  Role
}

type AuditEntry struct {
	ID         string
	EntityType string
	EntityID   string
	Action     string
	Actor      string
	Payload    string // JSON
	CreatedAt  time.Time
}
