package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fakestore/internal/config"
	"fakestore/internal/database"
	"fakestore/internal/handlers"
	"fakestore/internal/logger"
	"fakestore/internal/metrics"
	"fakestore/internal/middleware"
	"fakestore/internal/repositories"
	"fakestore/internal/services"
)

// Deps are the process-wide collaborators the HTTP app is built from.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Logger  *zap.Logger
	Fake    services.FakeGenerator
	Events  services.EventPublisher // may be nil
	Metrics *metrics.HTTPMetrics    // may be nil
}

// App bundles the Fiber app with the services behind it.
type App struct {
	*fiber.App
	Auth     *services.AuthService
	Tenants  *services.TenantService
	Seeder   *services.SeedService
	Products *services.ProductService
	Users    *services.UserService
}

// New wires repositories, services and handlers into a Fiber app.
func New(d Deps) *App {
	cfg, log := d.Config, d.Logger

	// --- Repositories ---
	tenantRepo := repositories.NewGORMTenantRepository(d.DB)
	userRepo := repositories.NewGORMUserRepository(d.DB)
	productRepo := repositories.NewGORMProductRepository(d.DB)

	// --- Services ---
	var observer services.SeedObserver
	if d.Metrics != nil {
		observer = d.Metrics
	}
	authService := services.NewAuthService(tenantRepo, userRepo, cfg, log, d.Events)
	tenantService := services.NewTenantService(tenantRepo, d.Fake, cfg.BcryptCost, log, d.Events)
	seedService := services.NewSeedService(tenantRepo, productRepo, userRepo, d.Fake, cfg.BcryptCost, log, d.Events, observer)
	productService := services.NewProductService(productRepo, seedService, log, d.Events)
	userService := services.NewUserService(userRepo, seedService, cfg.BcryptCost, log, d.Events)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if d.Metrics != nil {
		// Outside the logger, which renders errors, so the final status is counted.
		app.Use(d.Metrics.Middleware())
		app.Get("/metrics", d.Metrics.Handler())
	}
	app.Use(logger.Middleware(log))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "API is working"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.Ping(d.DB); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": err.Error(),
				"time":     time.Now().Format(time.RFC3339),
			})
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"database": "connected",
			"time":     time.Now().Format(time.RFC3339),
		})
	})

	requireAPIKey := middleware.RequireAPIKey(authService)
	authRequired := middleware.AuthRequired(authService)

	handlers.NewTenantHandler(tenantService).RegisterRoutes(app, requireAPIKey)
	handlers.NewAuthHandler(authService).RegisterRoutes(app, requireAPIKey)
	handlers.NewProductHandler(productService).RegisterRoutes(app, requireAPIKey, authRequired)
	handlers.NewUserHandler(userService).RegisterRoutes(app, authRequired)

	return &App{
		App:      app,
		Auth:     authService,
		Tenants:  tenantService,
		Seeder:   seedService,
		Products: productService,
		Users:    userService,
	}
}
