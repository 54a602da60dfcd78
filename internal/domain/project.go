package domain

import (
	"regexp"
	"strings"
	"time"
)

// Short IDs read like client codes: ACME01, MINSA2025.
var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// Project is a SAM engagement anchored on its kickoff date.
type Project struct {
	ID          string
	ShortID     string
	Name        string
	Client      string
	KickoffDate Date
	Status      ProjectStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject returns an active project with a normalized short ID. It does
// not validate; call ValidateShortID before storing it.
func NewProject(id, shortID, name, client string, kickoff Date, now time.Time) *Project {
	return &Project{
		ID:          id,
		ShortID:     strings.ToUpper(strings.TrimSpace(shortID)),
		Name:        strings.TrimSpace(name),
		Client:      strings.TrimSpace(client),
		KickoffDate: kickoff,
		Status:      ProjectActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Project) ValidateShortID() error {
	switch {
	case p.ShortID == "":
		return NewInvalidInput("short_id", "is required")
	case !shortIDPattern.MatchString(p.ShortID):
		return NewInvalidInput("short_id", "%q must be 3-6 uppercase letters followed by 2-4 digits (e.g. ACME01)", p.ShortID)
	}
	return nil
}

func (p *Project) IsClosed() bool { return p.Status == ProjectClosed }

// Close marks the project closed and reports whether anything changed.
func (p *Project) Close(now time.Time) bool {
	if p.IsClosed() {
		return false
	}
	p.Status = ProjectClosed
	p.UpdatedAt = now
	return true
}

// DisplayID is the short ID, or the first eight characters of ID for rows
// stored without one.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	return p.ID[:min(len(p.ID), 8)]
}
