package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListByWeek(ctx context.Context, db *gorm.DB, weekKey string) ([]Assignment, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Assignment, error)
	ListByWeeks(ctx context.Context, db *gorm.DB, weekKeys []string) ([]Assignment, error)
	// Upsert writes the slot, overwriting the member link when the
	// (week, role) pair already exists.
	Upsert(ctx context.Context, db *gorm.DB, assignment *Assignment) error
	// Delete clears the slot and reports whether a row existed.
	Delete(ctx context.Context, db *gorm.DB, weekKey, role string) (bool, error)
}
