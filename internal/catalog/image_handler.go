package catalog

import (
	"errors"
	"fmt"

	"cafemenu-backend/internal/audit"
	"cafemenu-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AttachImageRequest struct {
	ImageURL string `json:"image_url"`
}

// POST /api/products/:id/image
// Multipart "image" alanındaki dosyayı Cloudinary'ye yükler ve dönen URL'i
// ürünle ilişkilendirir.
func UploadProductImageHandler(svc *Service, cdn *CloudinaryClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		// Ürün yoksa upload'a hiç başlama
		if _, err := svc.Get(c.UserContext(), id); err != nil {
			return httpError(err, "Ürün bulunamadı")
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "image alanında bir dosya gönderilmeli")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya açılamadı")
		}
		defer file.Close()

		result, err := cdn.Upload(fileHeader.Filename, file)
		if err != nil {
			if errors.Is(err, ErrUploadFailed) {
				return fiber.NewError(fiber.StatusBadGateway, "Görsel yüklenemedi")
			}
			return err
		}

		p, err := svc.AttachImage(c.UserContext(), id, result.SecureURL)
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
			Description: fmt.Sprintf("Ürün görseli yüklendi: %s", p.Name),
			After:       p,
		})

		return c.JSON(fiber.Map{
			"product":   toResponse(p),
			"public_id": result.PublicID,
		})
	}
}

// PUT /api/products/:id/image
// Zaten yüklenmiş bir görselin URL'ini ilişkilendirir (upload'suz attach).
func AttachProductImageHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var body AttachImageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		p, err := svc.AttachImage(c.UserContext(), id, body.ImageURL)
		if err != nil {
			return httpError(err, "Ürün bulunamadı")
		}

		return c.JSON(toResponse(p))
	}
}

// DELETE /api/products/:id/image
func DetachProductImageHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		p, err := svc.DetachImage(c.UserContext(), id)
		if err != nil {
			return httpError(err, "Ürün bulunamadı")
		}

		return c.JSON(toResponse(p))
	}
}
