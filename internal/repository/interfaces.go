// Package repository, products ve tables koleksiyonlarına erişimi arayüzlerin
// arkasına alır. Servis katmanı yalnızca bu arayüzleri görür; GORM
// implementasyonları bu paketin içinde kalır.
package repository

import (
	"context"
	"time"

	"cafemenu-backend/internal/models"
)

type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Save(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type TableRepository interface {
	ListByRecency(ctx context.Context) ([]models.Table, error)
	GetByID(ctx context.Context, id uint) (*models.Table, error)
	Create(ctx context.Context, t *models.Table) error

	// IncrementScans scans sayacını veritabanı tarafında tek bir UPDATE ile
	// artırır (scans = scans + 1) ve last_scan'i günceller. Eşzamanlı
	// taramalarda okuma-yazma yarışı yaşanmaz; kayıt yoksa ErrNotFound.
	IncrementScans(ctx context.Context, publicID string, at time.Time) (*models.Table, error)

	// ResetScans sayacı 0'a, last_scan'i null'a çeker.
	ResetScans(ctx context.Context, id uint) (*models.Table, error)

	Delete(ctx context.Context, id uint) error
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, u *models.User) error
}
