// Package tables masa/QR oturumlarını yönetir: oluşturma, tarama sayacı,
// sıfırlama ve menü linki türetme.
package tables

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"cafemenu-backend/internal/models"
	"cafemenu-backend/internal/repository"

	"github.com/google/uuid"
)

const maxNameLength = 30

// ErrInvalidName: masa adı boş veya 30 karakterden uzun.
var ErrInvalidName = errors.New("masa adı boş olamaz ve 30 karakteri geçemez")

type Service struct {
	repo  repository.TableRepository
	links *LinkBuilder
	now   func() time.Time
}

func NewService(repo repository.TableRepository, links *LinkBuilder) *Service {
	return &Service{repo: repo, links: links, now: time.Now}
}

func (s *Service) Links() *LinkBuilder {
	return s.links
}

func (s *Service) Create(ctx context.Context, name string) (*models.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return nil, ErrInvalidName
	}

	t := &models.Table{
		PublicID: uuid.NewString(),
		Name:     name,
		Scans:    0,
		LastScan: nil,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// RecordScan müşteri menü linkini açtığında çağrılır. Artış mağaza
// tarafında atomiktir; eşzamanlı taramalar kaybolmaz.
func (s *Service) RecordScan(ctx context.Context, publicID string) (*models.Table, error) {
	return s.repo.IncrementScans(ctx, publicID, s.now())
}

func (s *Service) ResetScans(ctx context.Context, id uint) (*models.Table, error) {
	return s.repo.ResetScans(ctx, id)
}

// ListOrderedByRecency en yeni masa önce; eşitlikte id'ye göre
// deterministik sıra.
func (s *Service) ListOrderedByRecency(ctx context.Context) ([]models.Table, error) {
	return s.repo.ListByRecency(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Table, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
