package api

import (
	"log"

	"github.com/SajiloSewa/registry_service/config"
	"github.com/SajiloSewa/registry_service/infra/queue"
	"github.com/SajiloSewa/registry_service/internal/api/rest/handlers"
	"github.com/SajiloSewa/registry_service/internal/api/rest/middleware"
	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/SajiloSewa/registry_service/internal/helper"
	"github.com/SajiloSewa/registry_service/internal/metrics"
	"github.com/SajiloSewa/registry_service/internal/repository"
	"github.com/SajiloSewa/registry_service/internal/services"
	"github.com/SajiloSewa/registry_service/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- Metrics ----------
	metrics.Init()
	app.Use(metrics.Middleware())

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20240315

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.BirthRecord{},
		&domain.DeathRecord{},
		&domain.Document{},
		&domain.AuditLog{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	seedData(db, authHelper)

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	birthRepo := repository.NewBirthRepository(db)
	deathRepo := repository.NewDeathRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	authSvc := services.NewAuthService(userRepo, authHelper)
	certSvc := services.NewCertificateService(birthRepo, deathRepo, cfg.BaseURL)
	appSvc := services.NewApplicationService(birthRepo, deathRepo, userRepo, docRepo, auditRepo, kafkaProducer)
	reviewSvc := services.NewReviewService(birthRepo, deathRepo, userRepo, auditRepo, certSvc, kafkaProducer)

	// ---------- Handlers ----------
	authMw := middleware.AuthMiddleware(authHelper)

	authPub := app.Group("/api/auth")
	authPriv := app.Group("/api/auth", authMw)
	handlers.NewAuthHandler(authSvc, authHelper).SetupRoutes(authPub, authPriv)

	apps := app.Group("/api/applications", authMw)
	handlers.NewApplicationHandler(appSvc, certSvc, authHelper).SetupRoutes(apps)
	handlers.NewUploadHandler(appSvc, up, authHelper).SetupRoutes(apps)

	admin := app.Group("/api/admin", authMw, middleware.AdminOnly(authSvc))
	handlers.NewAdminHandler(reviewSvc, authHelper).SetupRoutes(admin)

	handlers.NewCertificateHandler(certSvc).SetupRoutes(app)

	// ---------- Health + Metrics ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
