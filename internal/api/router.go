package api

import (
	"billed/docs"
	"billed/internal/api/handlers"
	"billed/pkg/auth"
	"billed/pkg/config"
	"billed/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	billHandler *handlers.BillHandler,
	jwtManager *auth.JWTManager,
	cfg *config.Config,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())
	app.Use(middleware.Metrics())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	appLogger.Info("Serving uploads",
		zap.String("path", cfg.Storage.UploadDir),
		zap.String("prefix", cfg.Storage.PublicPath),
	)
	app.Static(cfg.Storage.PublicPath, cfg.Storage.UploadDir)

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	bills := protected.Group("/bills")
	bills.Get("", billHandler.ListBills)
	bills.Post("", billHandler.CreateBill)
	bills.Get("/proof", billHandler.ShowProof)
	bills.Put("/:id", billHandler.UpdateBill)

	return app
}
