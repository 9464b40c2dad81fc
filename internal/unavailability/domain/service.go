package domain

import (
	"context"
	"errors"
)

type SetRequest struct {
	MemberID string
	WeekKey  string
	// Unavailable true marks the week, false clears the mark. Both
	// directions are idempotent.
	Unavailable bool
}

type Service interface {
	// Map returns every member's unavailable weeks, ascending per
	// member. Members with no marked weeks are absent.
	Map(ctx context.Context) (map[string][]string, error)
	// MembersForWeek returns the ids of members marked unavailable
	// for the given week.
	MembersForWeek(ctx context.Context, weekKey string) ([]string, error)
	// Set flips one (member, week) mark and returns the refreshed
	// map.
	Set(ctx context.Context, req SetRequest) (map[string][]string, error)
}

var ErrInvalidID = errors.New("invalid_id")
