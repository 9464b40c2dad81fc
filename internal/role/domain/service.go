package domain

import (
	"context"
	"errors"
)

type RoleInput struct {
	Name       string
	Privileged bool
}

type ReplaceRolesRequest struct {
	Roles []RoleInput
}

type Service interface {
	// List returns the registry in display order, seeding and
	// persisting the configured defaults when none are stored yet.
	List(ctx context.Context) ([]Role, error)
	Replace(ctx context.Context, req ReplaceRolesRequest) ([]Role, error)
}

var (
	ErrMissingRoles    = errors.New("missing_roles")
	ErrInvalidRoleName = errors.New("invalid_role_name")
	ErrDuplicateRole   = errors.New("duplicate_role")
)
