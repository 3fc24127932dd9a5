package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"lawdesk-erp/internal/adapters/http/middleware"
	"lawdesk-erp/internal/adapters/http/routes"
	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/adapters/persistence/repositories"
	"lawdesk-erp/internal/config"
	"lawdesk-erp/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title LawDesk ERP API
// @version 1.0
// @description Attendance and reward ledger service for the office ERP
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Run migrations
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}
	log.Println("✅ Database migrated successfully")

	// Seed baseline data
	if err := config.Seed(db, cfg); err != nil {
		log.Fatalf("❌ Failed to seed database: %v", err)
	}

	// Start the attendance reminder scheduler
	autoService := services.NewAttendanceAutoService(
		cfg.Attendance.ReminderSchedule,
		repositories.NewAttendanceRepository(db),
		repositories.NewUserRepository(db),
		services.NewNotificationService(),
	)
	if err := autoService.Start(); err != nil {
		log.Fatalf("❌ Failed to start attendance reminder: %v", err)
	}

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName:      "LawDesk ERP",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Register middleware and routes
	middleware.Setup(app, cfg)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		autoService.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 Server starting on port %s [%s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
