package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *Unavailability) error
	// Delete removes the (member, week) row and reports whether it
	// existed.
	Delete(ctx context.Context, db *gorm.DB, memberID snowflake.ID, weekKey string) (bool, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]Unavailability, error)
	ListByMember(ctx context.Context, db *gorm.DB, memberID snowflake.ID) ([]Unavailability, error)
	ListByWeek(ctx context.Context, db *gorm.DB, weekKey string) ([]Unavailability, error)
}
