package catalog

import (
	"errors"
	"fmt"
	"strconv"

	"cafemenu-backend/internal/audit"
	"cafemenu-backend/internal/auth"
	"cafemenu-backend/internal/models"
	"cafemenu-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"` // "45₺" — UI soneki kendisi ayırır
	Category    string `json:"category"`
	ImageURL    string `json:"image_url,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
}

func toResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// httpError servis hatalarını fiber hatalarına çevirir; taksonomi dışına
// düşen her şey olduğu gibi yukarı gider (merkezi handler 500 döndürür).
func httpError(err error, notFoundMsg string) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, repository.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, notFoundMsg)
	case errors.Is(err, repository.ErrUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, "Veritabanına ulaşılamıyor")
	}
	return err
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
	}
	return uint(id), nil
}

func actor(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	email, _ := c.Locals(auth.CtxEmailKey).(string)
	return userID, email
}

// GET /api/products?category=İçecekler
func ListProductsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := svc.List(c.UserContext(), c.Query("category"))
		if err != nil {
			return httpError(err, "Ürün bulunamadı")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, toResponse(&products[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/products
func CreateProductHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		p, err := svc.Create(c.UserContext(), CreateInput{
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			Category:    body.Category,
			ImageURL:    body.ImageURL,
		})
		if err != nil {
			return httpError(err, "Ürün bulunamadı")
		}

		userID, email := actor(c)
		audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserEmail:   email,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Ürün oluşturuldu: %s", p.Name),
			After:       p,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(p))
	}
}

// PUT /api/products/:id
func UpdateProductHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		before, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return httpError(err, "Ürün bulunamadı")
		}

		p, err := svc.Update(c.UserContext(), id, Patch{
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			Category:    body.Category,
			ImageURL:    body.ImageURL,
		})
		if err != nil {
			return httpError(err, "Ürün bulunamadı")
		}

		userID, email := actor(c)
		audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserEmail:   email,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Ürün güncellendi: %s", p.Name),
			Before:      before,
			After:       p,
		})

		return c.JSON(toResponse(p))
	}
}

// DELETE /api/products/:id
// İdempotent değildir: ikinci silme 404 döndürür, yutulmaz.
func DeleteProductHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		before, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return httpError(err, "Ürün bulunamadı")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			return httpError(err, "Ürün bulunamadı")
		}

		userID, email := actor(c)
		audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserEmail:   email,
			EntityType:  "product",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Ürün silindi: %s", before.Name),
			Before:      before,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
