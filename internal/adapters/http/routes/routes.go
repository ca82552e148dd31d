package routes

import (
	"autopro-rental/internal/adapters/http/handlers"
	"autopro-rental/internal/adapters/http/middleware"
	"autopro-rental/internal/adapters/persistence/repositories"
	"autopro-rental/internal/config"
	"autopro-rental/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	carRepo := repositories.NewCarRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo, resetRepo, cfg)
	userService := services.NewUserService(userRepo, sessionRepo)
	carService := services.NewCarService(carRepo)
	bookingService := services.NewBookingService(bookingRepo, carRepo)
	analyticsService := services.NewAnalyticsService(bookingRepo, carRepo, userRepo)
	settingsService := services.NewSettingsService(settingsRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	carHandler := handlers.NewCarHandler(carService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Public storefront routes
	setupStorefrontRoutes(apiV1, carHandler, bookingHandler, settingsHandler)

	// Back-office routes (manager and admin)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.ManagerOrAdmin(cfg))
	setupBackOfficeRoutes(adminRoutes, carHandler, bookingHandler, analyticsHandler)

	// Admin-only back-office routes
	setupAdminRoutes(adminRoutes, userHandler, settingsHandler, cfg)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)
	router.Get("/session", middleware.NoCacheHeaders(), handler.Session)
	router.Post("/password-reset", middleware.StrictRateLimiter(), handler.RequestPasswordReset)
	router.Post("/password-reset/confirm", middleware.StrictRateLimiter(), handler.ConfirmPasswordReset)

	// Protected routes; /me is per-user cacheable, session listing never is
	router.Get("/me", middleware.AuthMiddleware(cfg), middleware.ProfileCache(), handler.Me)
	router.Get("/sessions", middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders(), handler.Sessions)
	router.Put("/profile", middleware.AuthMiddleware(cfg), handler.UpdateProfile)
	router.Put("/password", middleware.AuthMiddleware(cfg), handler.ChangePassword)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupStorefrontRoutes configures the public storefront routes
func setupStorefrontRoutes(
	router fiber.Router,
	carHandler *handlers.CarHandler,
	bookingHandler *handlers.BookingHandler,
	settingsHandler *handlers.SettingsHandler,
) {
	// Catalog is cacheable; bookings are not
	router.Get("/cars", middleware.CatalogCache(), carHandler.Catalog)
	router.Get("/cars/:id", middleware.CatalogCache(), carHandler.GetByID)
	router.Post("/bookings", bookingHandler.Create)
	router.Get("/settings", middleware.CatalogCache(), settingsHandler.Get)
}

// setupBackOfficeRoutes configures routes shared by managers and admins
func setupBackOfficeRoutes(
	router fiber.Router,
	carHandler *handlers.CarHandler,
	bookingHandler *handlers.BookingHandler,
	analyticsHandler *handlers.AnalyticsHandler,
) {
	// Fleet management
	router.Get("/cars", carHandler.List)
	router.Post("/cars", carHandler.Create)
	router.Put("/cars/:id", carHandler.Update)
	router.Patch("/cars/:id/availability", carHandler.SetAvailability)
	router.Delete("/cars/:id", carHandler.Delete)

	// Booking management
	router.Get("/bookings", bookingHandler.List)
	router.Get("/bookings/:id", bookingHandler.GetByID)
	router.Patch("/bookings/:id/status", bookingHandler.UpdateStatus)

	// Analytics
	router.Get("/analytics", analyticsHandler.Dashboard)
}

// setupAdminRoutes configures admin-only routes
func setupAdminRoutes(
	router fiber.Router,
	userHandler *handlers.UserHandler,
	settingsHandler *handlers.SettingsHandler,
	cfg *config.Config,
) {
	// User management
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AdminOnly(cfg))
	userRoutes.Get("/", userHandler.List)
	userRoutes.Get("/stats", userHandler.Stats)
	userRoutes.Get("/:id", userHandler.GetByID)
	userRoutes.Post("/", userHandler.Create)
	userRoutes.Put("/:id", userHandler.Update)
	userRoutes.Delete("/:id", userHandler.Delete)

	// Settings
	router.Put("/settings", middleware.AdminOnly(cfg), settingsHandler.Update)
}
