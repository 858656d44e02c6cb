// Package catalog ürün kataloğunun doğrulama ve fiyat kurallarını uygular.
// Handler'lar HTTP çevirisi yapar, kurallar burada yaşar.
package catalog

import (
	"context"
	"net/url"
	"strings"

	"cafemenu-backend/internal/models"
	"cafemenu-backend/internal/price"
	"cafemenu-backend/internal/repository"
)

// ValidationError: girdinin şekli bozuk (isim/fiyat/kategori).
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErr(msg string) error { return &ValidationError{msg: msg} }

type Service struct {
	repo repository.ProductRepository
}

func NewService(repo repository.ProductRepository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name        string
	Description string
	Price       string
	Category    string
	ImageURL    string
}

// Patch: nil alanlar dokunulmadan bırakılır. ImageURL'de boş string görseli
// kaldırır (detach).
type Patch struct {
	Name        *string
	Description *string
	Price       *string
	Category    *string
	ImageURL    *string
}

// List kategoriye göre filtrelenmiş ürünleri döndürür. CategoryAll veya boş
// kategori tüm listeyi verir. Bilinmeyen kategorili eski kayıtlar yalnızca
// tam liste içinde görünür; filtre saf bir eşitlik süzgecidir.
func (s *Service) List(ctx context.Context, category string) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" || category == CategoryAll {
		return products, nil
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create doğrulama geçmeden mağazaya hiçbir yazma yapmaz.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErr("Ürün adı boş olamaz")
	}

	v, err := price.Parse(in.Price)
	if err != nil {
		return nil, validationErr("Geçersiz fiyat")
	}

	if !ValidCategory(in.Category) {
		return nil, validationErr("Geçersiz kategori")
	}

	if in.ImageURL != "" && !absoluteURL(in.ImageURL) {
		return nil, validationErr("Görsel adresi geçerli bir URL olmalı")
	}

	p := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       v.Format(),
		Category:    in.Category,
		ImageURL:    in.ImageURL,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update yalnızca patch'te bulunan alanları değiştirir; fiyat aynı
// parse/format döngüsünden geçer, saklanan metinde sonek asla ikilenmez.
func (s *Service) Update(ctx context.Context, id uint, patch Patch) (*models.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, validationErr("Ürün adı boş olamaz")
		}
		p.Name = name
	}

	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}

	if patch.Price != nil {
		v, err := price.Parse(*patch.Price)
		if err != nil {
			return nil, validationErr("Geçersiz fiyat")
		}
		p.Price = v.Format()
	}

	if patch.Category != nil {
		if !ValidCategory(*patch.Category) {
			return nil, validationErr("Geçersiz kategori")
		}
		p.Category = *patch.Category
	}

	if patch.ImageURL != nil {
		if *patch.ImageURL != "" && !absoluteURL(*patch.ImageURL) {
			return nil, validationErr("Görsel adresi geçerli bir URL olmalı")
		}
		p.ImageURL = *patch.ImageURL
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete idempotent DEĞİLDİR: olmayan id ikinci silmede ErrNotFound döndürür.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// AttachImage yüklenmiş görselin URL'ini ürünle ilişkilendirir.
func (s *Service) AttachImage(ctx context.Context, id uint, imageURL string) (*models.Product, error) {
	if !absoluteURL(imageURL) {
		return nil, validationErr("Görsel adresi geçerli bir URL olmalı")
	}
	return s.Update(ctx, id, Patch{ImageURL: &imageURL})
}

// DetachImage görsel ilişkisini kaldırır; istemci placeholder gösterir.
func (s *Service) DetachImage(ctx context.Context, id uint) (*models.Product, error) {
	empty := ""
	return s.Update(ctx, id, Patch{ImageURL: &empty})
}

func absoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
