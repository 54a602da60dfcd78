package domain

import (
	"fmt"
	"strings"
)

type PhaseType string

const (
	PhasePrepare PhaseType = "PREPARE"
	PhaseConnect PhaseType = "CONNECT"
	PhaseRealize PhaseType = "REALIZE"
	PhaseRun     PhaseType = "RUN"
)

// PhaseTypes lists the SAM phases in methodology order.
var PhaseTypes = []PhaseType{PhasePrepare, PhaseConnect, PhaseRealize, PhaseRun}

// Order is the phase position within a project. PREPARE is always first even
// though its dates fall before kickoff.
func (p PhaseType) Order() int {
	switch p {
	case PhasePrepare:
		return 1
	case PhaseConnect:
		return 2
	case PhaseRealize:
		return 3
	case PhaseRun:
		return 4
	}
	return 0
}

func (p PhaseType) Valid() bool { return p.Order() > 0 }

// ParsePhaseType accepts any casing.
func ParsePhaseType(s string) (PhaseType, error) {
	p := PhaseType(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", NewInvalidInput("phase", "unknown phase %q", s)
	}
	return p, nil
}

type ActivityStatus string

const (
	ActivityPending    ActivityStatus = "PENDIENTE"
	ActivityInProgress ActivityStatus = "EN_PROGRESO"
	ActivityCompleted  ActivityStatus = "COMPLETADO"
	ActivityBlocked    ActivityStatus = "BLOQUEADO"
)

func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityPending, ActivityInProgress, ActivityCompleted, ActivityBlocked:
		return true
	}
	return false
}

// ParseActivityStatus accepts the stored value or a short English alias.
func ParseActivityStatus(s string) (ActivityStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pendiente", "pending", "todo":
		return ActivityPending, nil
	case "en_progreso", "in_progress", "started":
		return ActivityInProgress, nil
	case "completado", "completed", "done":
		return ActivityCompleted, nil
	case "bloqueado", "blocked":
		return ActivityBlocked, nil
	}
	return "", NewInvalidInput("status", "unknown activity status %q", s)
}

type ParticipationType string

const (
	ParticipationConsultant ParticipationType = "CONSULTANT"
	ParticipationClient     ParticipationType = "CLIENT"
	ParticipationJoint      ParticipationType = "JOINT"
)

func (p ParticipationType) Valid() bool {
	switch p {
	case ParticipationConsultant, ParticipationClient, ParticipationJoint:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectActive ProjectStatus = "active"
	ProjectClosed ProjectStatus = "closed"
)

type BlockerKind string

const (
	BlockerKindBlocker BlockerKind = "BLOCKER"
	BlockerKindPause   BlockerKind = "PAUSE"
)

func (k BlockerKind) Valid() bool {
	return k == BlockerKindBlocker || k == BlockerKindPause
}

func ParseBlockerKind(s string) (BlockerKind, error) {
	k := BlockerKind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", NewInvalidInput("kind", "unknown blocker kind %q (use BLOCKER or PAUSE)", s)
	}
	return k, nil
}

type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleProjectManager Role = "PROJECT_MANAGER"
	RoleConsultant     Role = "CONSULTANT"
	RoleClient         Role = "CLIENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleConsultant, RoleClient:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// VarianceStatus classifies actual progress against the schedule.
type VarianceStatus string

const (
	VarianceAhead    VarianceStatus = "ahead"
	VarianceOnTrack  VarianceStatus = "on_track"
	VarianceBehind   VarianceStatus = "behind"
	VarianceCritical VarianceStatus = "critical"
)

// Rank orders statuses from best (highest) to worst.
func (v VarianceStatus) Rank() int {
	switch v {
	case VarianceAhead:
		return 4
	case VarianceOnTrack:
		return 3
	case VarianceBehind:
		return 2
	case VarianceCritical:
		return 1
	}
	return 0
}
