package domain

import (
	"context"
	"errors"

	memberdomain "github.com/wardworks/roster/internal/member/domain"
)

type GetWeekRequest struct {
	// WeekKey may be any ISO date; it is snapped onto its Sunday.
	// Empty means the week of the upcoming service.
	WeekKey string
}

type GetRangeRequest struct {
	From string
	To   string
}

type CandidatesRequest struct {
	WeekKey string
	Role    string
}

type AssignRequest struct {
	WeekKey  string
	Role     string
	MemberID string
}

type UnassignRequest struct {
	WeekKey string
	Role    string
	// AssignmentID may be given instead of the (WeekKey, Role) pair.
	AssignmentID string
}

type Service interface {
	GetWeek(ctx context.Context, req GetWeekRequest) (WeekSchedule, error)
	GetRange(ctx context.Context, req GetRangeRequest) ([]WeekSchedule, error)
	Candidates(ctx context.Context, req CandidatesRequest) ([]memberdomain.Member, error)
	Assign(ctx context.Context, req AssignRequest) (WeekSchedule, error)
	// Unassign is idempotent: clearing an already empty slot succeeds.
	Unassign(ctx context.Context, req UnassignRequest) (WeekSchedule, error)
}

var (
	ErrInvalidReference = errors.New("invalid_reference")
	ErrRoleNotFound     = errors.New("role_not_found")
	ErrInvalidID        = errors.New("invalid_id")
)
