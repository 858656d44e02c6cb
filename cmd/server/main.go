package main

import (
	"log"
	"strings"

	"cafemenu-backend/internal/audit"
	"cafemenu-backend/internal/auth"
	"cafemenu-backend/internal/catalog"
	"cafemenu-backend/internal/config"
	"cafemenu-backend/internal/database"
	"cafemenu-backend/internal/menu"
	"cafemenu-backend/internal/repository"
	"cafemenu-backend/internal/tables"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	database.InitRedis(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Bağımlılıklar
	productRepo := repository.NewProductRepository(database.DB)
	tableRepo := repository.NewTableRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)

	catalogSvc := catalog.NewService(productRepo)
	tablesSvc := tables.NewService(tableRepo, tables.NewLinkBuilder(cfg))
	cdn := catalog.NewCloudinaryClient(cfg)

	var lockouts auth.LockoutStore
	if database.RedisClient != nil {
		lockouts = auth.NewRedisLockout(database.RedisClient, cfg.MaxLoginAttempts, cfg.BlockDuration)
	} else {
		lockouts = auth.NewMemoryLockout(cfg.MaxLoginAttempts, cfg.BlockDuration)
	}
	revoker := auth.NewRevoker()

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(userRepo))
	api.Post("/auth/login", auth.LoginHandler(cfg, userRepo, lockouts))

	// Public menü (QR deep-link hedefi, tarama burada kaydedilir)
	api.Get("/menu", menu.MenuHandler(catalogSvc, tablesSvc))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg, revoker))

	protected.Get("/auth/me", auth.MeHandler(userRepo))
	protected.Post("/auth/logout", auth.LogoutHandler(revoker))

	// Ürün yönetimi
	protected.Get("/products", catalog.ListProductsHandler(catalogSvc))
	protected.Post("/products", catalog.CreateProductHandler(catalogSvc))
	protected.Put("/products/:id", catalog.UpdateProductHandler(catalogSvc))
	protected.Delete("/products/:id", catalog.DeleteProductHandler(catalogSvc))

	// Ürün görselleri
	protected.Post("/products/:id/image", catalog.UploadProductImageHandler(catalogSvc, cdn))
	protected.Put("/products/:id/image", catalog.AttachProductImageHandler(catalogSvc))
	protected.Delete("/products/:id/image", catalog.DetachProductImageHandler(catalogSvc))

	// Masa / QR yönetimi
	protected.Get("/tables", tables.ListTablesHandler(tablesSvc))
	protected.Post("/tables", tables.CreateTableHandler(tablesSvc))
	protected.Get("/tables/:id/qr", tables.TableQRHandler(tablesSvc))
	protected.Post("/tables/:id/reset-scans", tables.ResetScansHandler(tablesSvc))
	protected.Delete("/tables/:id", tables.DeleteTableHandler(tablesSvc))

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
