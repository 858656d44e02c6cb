// Package menu QR kodun açtığı, auth gerektirmeyen müşteri menüsünü sunar.
package menu

import (
	"errors"
	"log"

	"cafemenu-backend/internal/catalog"
	"cafemenu-backend/internal/repository"
	"cafemenu-backend/internal/tables"

	"github.com/gofiber/fiber/v2"
)

type MenuResponse struct {
	Categories []string                  `json:"categories"`
	Products   []catalog.ProductResponse `json:"products"`
}

// GET /api/menu?table=<publicID>&category=<c>
// table parametresi geçerliyse tarama kaydedilir. Geçersiz/bayat bir QR
// menüyü engellemez: müşteri her koşulda menüyü görmeli, tarama sessizce
// atlanır.
func MenuHandler(catalogSvc *catalog.Service, tablesSvc *tables.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tableID := c.Query("table"); tableID != "" {
			if _, err := tablesSvc.RecordScan(c.UserContext(), tableID); err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					log.Printf("[WARN] Tarama kaydedilemedi: %v", err)
				}
			}
		}

		products, err := catalogSvc.List(c.UserContext(), c.Query("category"))
		if err != nil {
			if errors.Is(err, repository.ErrUnavailable) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "Menü şu anda yüklenemiyor")
			}
			return err
		}

		res := MenuResponse{
			Categories: catalog.Categories,
			Products:   make([]catalog.ProductResponse, 0, len(products)),
		}
		for i := range products {
			p := &products[i]
			res.Products = append(res.Products, catalog.ProductResponse{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				Category:    p.Category,
				ImageURL:    p.ImageURL,
				CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		return c.JSON(res)
	}
}
