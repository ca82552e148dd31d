package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"autopro-rental/internal/adapters/http/middleware"
	"autopro-rental/internal/adapters/http/routes"
	"autopro-rental/internal/adapters/persistence/models"
	"autopro-rental/internal/adapters/persistence/repositories"
	"autopro-rental/internal/config"
	"autopro-rental/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "autopro-rental/docs" // Swagger docs
)

// @title AutoPro Rental API
// @version 1.0
// @description Car rental storefront and back-office API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@autopro-rental.ru

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.autopro-rental.ru
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed default accounts, demo fleet and settings
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Start hourly cleanup of expired sessions and reset tokens
	cleanupService := services.NewCleanupService(
		repositories.NewSessionRepository(db),
		repositories.NewPasswordResetRepository(db),
	)
	if err := cleanupService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cleanup job: %v", err)
	}
	defer cleanupService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AutoPro Rental API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
