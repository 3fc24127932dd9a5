package routes

import (
	"lawdesk-erp/internal/adapters/http/handlers"
	"lawdesk-erp/internal/adapters/http/middleware"
	"lawdesk-erp/internal/adapters/persistence/repositories"
	"lawdesk-erp/internal/config"
	"lawdesk-erp/internal/core/services"

	_ "lawdesk-erp/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto the app
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// ============================================================
	// Repositories
	// ============================================================
	userRepo := repositories.NewUserRepository(db)
	refreshRepo := repositories.NewRefreshTokenRepository(db)
	networkRepo := repositories.NewOfficeNetworkRepository(db)
	settingRepo := repositories.NewOfficeSettingRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	requestRepo := repositories.NewAttendanceRequestRepository(db)
	rewardRepo := repositories.NewRewardRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// ============================================================
	// Services
	// ============================================================
	notifier := services.NewNotificationService()
	authService := services.NewAuthService(userRepo, refreshRepo, cfg.JWT)
	userService := services.NewUserService(userRepo, refreshRepo)
	networkService := services.NewOfficeNetworkService(networkRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, networkRepo, userRepo, notifier)
	requestService := services.NewAttendanceRequestService(requestRepo, notifier)
	rewardService := services.NewRewardService(rewardRepo)
	performanceService := services.NewPerformanceService(taskRepo, userRepo, cfg.Performance)
	qrService := services.NewQRService(settingRepo, cfg.BaseURL)
	dashboardService := services.NewDashboardService(attendanceRepo, requestRepo, rewardRepo, performanceService)

	// ============================================================
	// Handlers
	// ============================================================
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	networkHandler := handlers.NewOfficeNetworkHandler(networkService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, qrService)
	requestHandler := handlers.NewAttendanceRequestHandler(requestService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	performanceHandler := handlers.NewPerformanceHandler(performanceService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// ============================================================
	// Routes
	// ============================================================
	app.Get("/health", healthHandler.Check)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	// Auth (public)
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", middleware.AuthRateLimiter(), authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// Auth (authenticated)
	authed := api.Group("", middleware.AuthMiddleware())
	authed.Get("/auth/me", authHandler.Me)
	authed.Post("/auth/logout-all", authHandler.LogoutAll)
	authed.Post("/auth/register", middleware.AdminOnly(), authHandler.Register)

	// Profile (self)
	authed.Put("/users/me", userHandler.UpdateMe)
	authed.Put("/users/me/password", userHandler.ChangePassword)

	// Attendance (employee)
	attendance := authed.Group("/attendance")
	attendance.Post("/check-in", middleware.StrictRateLimiter(), attendanceHandler.CheckIn)
	attendance.Post("/check-out", middleware.StrictRateLimiter(), attendanceHandler.CheckOut)
	attendance.Get("/today", attendanceHandler.Today)
	attendance.Get("/history", attendanceHandler.History)
	attendance.Get("/qr-code", attendanceHandler.QRCode)

	// Attendance correction requests (employee)
	authed.Post("/attendance-requests", requestHandler.Submit)
	authed.Get("/attendance-requests/mine", requestHandler.ListMine)

	// Reward funds (read: all employees)
	authed.Get("/rewards", rewardHandler.List)
	authed.Get("/rewards/stats/me", rewardHandler.Stats)
	authed.Get("/rewards/:id", rewardHandler.Get)
	authed.Get("/rewards/:id/ledger", rewardHandler.Ledger)

	// Performance (self)
	authed.Get("/performance/me", performanceHandler.Me)

	// ============================================================
	// Admin routes
	// ============================================================
	admin := authed.Group("/admin", middleware.AdminOnly())

	admin.Get("/dashboard", dashboardHandler.Overview)

	// Employee directory
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.Get)
	admin.Put("/users/:id", userHandler.Update)
	admin.Put("/users/:id/role", userHandler.SetRole)
	admin.Put("/users/:id/active", userHandler.SetActive)

	// Office networks
	admin.Post("/office-networks", networkHandler.Create)
	admin.Get("/office-networks", networkHandler.List)
	admin.Get("/office-networks/:id", networkHandler.Get)
	admin.Put("/office-networks/:id", networkHandler.Update)
	admin.Delete("/office-networks/:id", networkHandler.Delete)

	// QR access token
	admin.Post("/qr-code/rotate", attendanceHandler.RotateQRCode)

	// Attendance administration
	admin.Get("/attendance", attendanceHandler.ListByDate)
	admin.Delete("/attendance", attendanceHandler.BulkDelete)
	admin.Get("/attendance-requests", requestHandler.List)
	admin.Put("/attendance-requests/:id/accept", requestHandler.Accept)
	admin.Put("/attendance-requests/:id/reject", requestHandler.Reject)

	// Reward funds (write)
	admin.Post("/rewards", rewardHandler.Create)
	admin.Post("/rewards/deduct", rewardHandler.Deduct)
	admin.Put("/rewards/:id", rewardHandler.Update)
	admin.Delete("/rewards/:id", rewardHandler.Delete)

	// Performance administration
	admin.Get("/performance", performanceHandler.Leaderboard)
	admin.Get("/performance/:id", performanceHandler.Employee)
}
