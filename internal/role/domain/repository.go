package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB) ([]Role, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Role, error)
	// ReplaceAll swaps the whole registry in one transaction.
	ReplaceAll(ctx context.Context, db *gorm.DB, roles []Role) error
}
