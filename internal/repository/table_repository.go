package repository

import (
	"context"
	"time"

	"cafemenu-backend/internal/models"

	"gorm.io/gorm"
)

type gormTableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &gormTableRepository{db: db}
}

func (r *gormTableRepository) ListByRecency(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	err := r.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&tables).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return tables, nil
}

func (r *gormTableRepository) GetByID(ctx context.Context, id uint) (*models.Table, error) {
	var t models.Table
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &t, nil
}

func (r *gormTableRepository) Create(ctx context.Context, t *models.Table) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return wrapErr(err)
	}
	return nil
}

func (r *gormTableRepository) IncrementScans(ctx context.Context, publicID string, at time.Time) (*models.Table, error) {
	// Artış tek UPDATE içinde veritabanı tarafında yapılır; iki eşzamanlı
	// tarama aynı taban değeri okuyup birbirini ezemez.
	res := r.db.WithContext(ctx).Model(&models.Table{}).
		Where("public_id = ?", publicID).
		UpdateColumns(map[string]any{
			"scans":     gorm.Expr("scans + 1"),
			"last_scan": at,
		})
	if res.Error != nil {
		return nil, wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var t models.Table
	if err := r.db.WithContext(ctx).First(&t, "public_id = ?", publicID).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &t, nil
}

func (r *gormTableRepository) ResetScans(ctx context.Context, id uint) (*models.Table, error) {
	res := r.db.WithContext(ctx).Model(&models.Table{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"scans":     0,
			"last_scan": nil,
		})
	if res.Error != nil {
		return nil, wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var t models.Table
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &t, nil
}

func (r *gormTableRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Table{}, "id = ?", id)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
