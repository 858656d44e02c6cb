package auth

import (
	"context"
	"errors"
	"strings"

	"cafemenu-backend/internal/config"
	"cafemenu-backend/internal/models"
	"cafemenu-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("email veya şifre hatalı")

type RegisterAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register-admin
// İlk kurulum için admin hesabı oluşturur; ikinci bir admin'e izin verilmez.
func RegisterAdminHandler(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, email ve şifre zorunlu")
		}

		count, err := users.Count(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Veritabanına ulaşılamıyor")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Zaten bir admin var")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
		}

		if err := users.Create(c.UserContext(), &user); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		})
	}
}

// POST /api/auth/login
// Kilit kontrolü kimlik doğrulamadan ÖNCE yapılır: kilitli bir kimlik için
// şifre hiç kontrol edilmez.
func LoginHandler(cfg *config.Config, users repository.UserRepository, lockouts LockoutStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email ve şifre zorunlu")
		}

		if retryAfter, blocked := lockouts.Blocked(body.Email); blocked {
			lockErr := &LockedOutError{RetryAfter: retryAfter}
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":               lockErr.Error(),
				"retry_after_seconds": int(retryAfter.Seconds() + 0.5),
			})
		}

		// Kimlik doğrulama asla süresiz bekleyemez: mağaza sorgusuna üst
		// sınır konur, aşılırsa 503 döner (kilit sayacı artmaz)
		loginCtx, cancel := context.WithTimeout(c.UserContext(), cfg.AuthTimeout)
		defer cancel()

		user, err := users.GetByEmail(loginCtx, body.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "Veritabanına ulaşılamıyor")
			}
			lockouts.Failure(body.Email)
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			lockouts.Failure(body.Email)
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		lockouts.Reset(body.Email)

		token, err := GenerateToken(cfg.JWTSecret, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
			},
		})
	}
}

// POST /api/auth/logout
// Token'ın jti'si süresi dolana kadar iptal listesine alınır; tekrarlanan
// logout çağrıları da başarılıdır.
func LogoutHandler(revoker *Revoker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(CtxClaimsKey).(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		if claims.ExpiresAt != nil {
			revoker.Revoke(claims.ID, claims.ExpiresAt.Time)
		}

		return c.JSON(fiber.Map{"message": "Çıkış yapıldı"})
	}
}

// GET /api/auth/me
func MeHandler(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		emailVal := c.Locals(CtxEmailKey)
		email, ok := emailVal.(string)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Kimlik bilgisi alınamadı")
		}

		user, err := users.GetByEmail(c.UserContext(), email)
		if err != nil {
			// Token geçerli ama kullanıcı silinmişse locals ile yetinilir
			return c.JSON(fiber.Map{
				"user_id": c.Locals(CtxUserIDKey),
				"email":   email,
			})
		}

		return c.JSON(fiber.Map{
			"user_id": user.ID,
			"name":    user.Name,
			"email":   user.Email,
		})
	}
}
