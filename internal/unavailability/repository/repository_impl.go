package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/wardworks/roster/internal/unavailability/domain"
)

type repository struct{}

func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, record *domain.Unavailability) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, memberID snowflake.ID, weekKey string) (bool, error) {
	res := db.WithContext(ctx).
		Where("member_id = ? AND week_key = ?", memberID, weekKey).
		Delete(&domain.Unavailability{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListAll(ctx context.Context, db *gorm.DB) ([]domain.Unavailability, error) {
	var records []domain.Unavailability
	err := db.WithContext(ctx).
		Order("member_id asc, week_key asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) ListByMember(ctx context.Context, db *gorm.DB, memberID snowflake.ID) ([]domain.Unavailability, error) {
	var records []domain.Unavailability
	err := db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("week_key asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) ListByWeek(ctx context.Context, db *gorm.DB, weekKey string) ([]domain.Unavailability, error) {
	var records []domain.Unavailability
	err := db.WithContext(ctx).
		Where("week_key = ?", weekKey).
		Order("member_id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
