package domain

import (
	"context"
	"errors"
)

type CreateMemberRequest struct {
	Name string
	Tier string
}

type UpdateMemberRequest struct {
	ID   string
	Name *string
	Tier *string
}

type Service interface {
	List(ctx context.Context) ([]Member, error)
	GetByID(ctx context.Context, id string) (Member, error)
	Create(ctx context.Context, req CreateMemberRequest) (Member, error)
	Update(ctx context.Context, req UpdateMemberRequest) (Member, error)
	// Delete removes the member without touching historical
	// assignments; slots referencing the id project as unassigned.
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidTier = errors.New("invalid_tier")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
