package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithKickoff(d domain.Date) ProjectOption {
	return func(p *domain.Project) {
		p.KickoffDate = d
	}
}

func WithClient(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Client = c
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:          uuid.New().String(),
		ShortID:     defaultShortID(name),
		Name:        name,
		Client:      "Test Client",
		KickoffDate: domain.MustParseDate("2025-06-02"),
		Status:      domain.ProjectActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestPhase(projectID string, pt domain.PhaseType) *domain.Phase {
	return &domain.Phase{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Type:      pt,
		Order:     pt.Order(),
	}
}

// Activity options
type ActivityOption func(*domain.Activity)

// WithSpan dates the activity; duration is taken from the option's days.
func WithSpan(start, end string, days int) ActivityOption {
	return func(a *domain.Activity) {
		a.StartDate = domain.MustParseDate(start).Ptr()
		a.EndDate = domain.MustParseDate(end).Ptr()
		a.DurationDays = days
	}
}

func WithActivityStatus(s domain.ActivityStatus) ActivityOption {
	return func(a *domain.Activity) {
		a.Status = s
		if s == domain.ActivityCompleted {
			a.Progress = 100
		}
	}
}

func WithOrder(i int) ActivityOption {
	return func(a *domain.Activity) {
		a.Order = i
	}
}

// NewTestActivity returns a milestone unless WithSpan is given.
func NewTestActivity(phaseID, code string, opts ...ActivityOption) *domain.Activity {
	a := &domain.Activity{
		ID:                uuid.New().String(),
		PhaseID:           phaseID,
		Code:              code,
		Name:              "Activity " + code,
		Order:             1,
		Status:            domain.ActivityPending,
		ParticipationType: domain.ParticipationJoint,
		UpdatedAt:         time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func NewTestHoliday(date, name string) *domain.Holiday {
	return &domain.Holiday{
		Date:      domain.MustParseDate(date),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Blocker options
type BlockerOption func(*domain.BlockerPeriod)

func WithBlockerKind(k domain.BlockerKind) BlockerOption {
	return func(b *domain.BlockerPeriod) {
		b.Kind = k
	}
}

// WithResolution marks the period resolved on end with the given impact.
func WithResolution(end string, impact int) BlockerOption {
	return func(b *domain.BlockerPeriod) {
		b.EndDate = domain.MustParseDate(end).Ptr()
		b.ImpactDays = &impact
		b.Resolved = true
	}
}

func NewTestBlocker(projectID, start string, opts ...BlockerOption) *domain.BlockerPeriod {
	now := time.Now().UTC().Truncate(time.Second)
	b := &domain.BlockerPeriod{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Kind:      domain.BlockerKindBlocker,
		Reason:    "waiting on client",
		StartDate: domain.MustParseDate(start),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}
