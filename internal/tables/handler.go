package tables

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

type TableResponse struct {
	ID        uint    `json:"id"`
	PublicID  string  `json:"public_id"`
	Name      string  `json:"name"`
	Scans     int64   `json:"scans"`
	LastScan  *string `json:"last_scan"`
	CreatedAt string  `json:"created_at"`
	MenuLink  string  `json:"menu_link"`
	QRImage   string  `json:"qr_image_url"`
}

type CreateTableRequest struct {
	Name string `json:"name"`
}

func toResponse(t *models.Table, links *LinkBuilder) TableResponse {
	var lastScan *string
	if t.LastScan != nil {
		s := t.LastScan.Format("2006-01-02T15:04:05Z07:00")
		lastScan = &s
	}
	return TableResponse{
		ID:        t.ID,
		PublicID:  t.PublicID,
		Name:      t.Name,
		Scans:     t.Scans,
		LastScan:  lastScan,
		CreatedAt: t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		MenuLink:  links.MenuLink(t.PublicID),
		QRImage:   links.QRImageURL(t.PublicID),
	}
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidName):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Masa bulunamadı")
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

// GET /api/tables
func ListTablesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tbls, err := svc.ListOrderedByRecency(c.UserContext())
		if err != nil {
			return httpError(err)
		}

		res := make([]TableResponse, 0, len(tbls))
		for i := range tbls {
			res = append(res, toResponse(&tbls[i], svc.Links()))
		}
		return c.JSON(res)
	}
}

// POST /api/tables
func CreateTableHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		t, err := svc.Create(c.UserContext(), body.Name)
		if err != nil {
			return httpError(err)
		}

		userID, email := actor(c)
		audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserEmail:   email,
			EntityType:  "table",
			EntityID:    t.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Masa oluşturuldu: %s", t.Name),
			After:       t,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(t, svc.Links()))
	}
}

// GET /api/tables/:id/qr
func TableQRHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		t, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return httpError(err)
		}

		return c.JSON(fiber.Map{
			"table_id":     t.ID,
			"name":         t.Name,
			"menu_link":    svc.Links().MenuLink(t.PublicID),
			"qr_image_url": svc.Links().QRImageURL(t.PublicID),
		})
	}
}

// POST /api/tables/:id/reset-scans
func ResetScansHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		t, err := svc.ResetScans(c.UserContext(), id)
		if err != nil {
			return httpError(err)
		}

		userID, email := actor(c)
		audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserEmail:   email,
			EntityType:  "table",
			EntityID:    t.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Tarama sayacı sıfırlandı: %s", t.Name),
			After:       t,
		})

		return c.JSON(toResponse(t, svc.Links()))
	}
}

// DELETE /api/tables/:id
func DeleteTableHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		before, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return httpError(err)
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			return httpError(err)
		}

		userID, email := actor(c)
		audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserEmail:   email,
			EntityType:  "table",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Masa silindi: %s", before.Name),
			Before:      before,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
