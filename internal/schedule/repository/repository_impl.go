package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wardworks/roster/internal/schedule/domain"
)

type repository struct{}

func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) ListByWeek(ctx context.Context, db *gorm.DB, weekKey string) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	err := db.WithContext(ctx).
		Where("week_key = ?", weekKey).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Assignment, error) {
	var assignment domain.Assignment
	err := db.WithContext(ctx).First(&assignment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *repository) ListByWeeks(ctx context.Context, db *gorm.DB, weekKeys []string) ([]domain.Assignment, error) {
	if len(weekKeys) == 0 {
		return nil, nil
	}
	var assignments []domain.Assignment
	err := db.WithContext(ctx).
		Where("week_key IN ?", weekKeys).
		Order("week_key asc").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *repository) Upsert(ctx context.Context, db *gorm.DB, assignment *domain.Assignment) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "week_key"}, {Name: "role"}},
			DoUpdates: clause.AssignmentColumns([]string{"member_id", "updated_at"}),
		}).
		Create(assignment).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, weekKey, role string) (bool, error) {
	res := db.WithContext(ctx).
		Where("week_key = ? AND role = ?", weekKey, role).
		Delete(&domain.Assignment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
