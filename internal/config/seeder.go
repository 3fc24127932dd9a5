package config

import (
	"errors"
	"log"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seed populates the baseline rows the application needs on first boot.
// Every seeder is idempotent: rerunning against a seeded database changes
// nothing.
func Seed(db *gorm.DB, cfg *Config) error {
	if err := seedAdminUser(db); err != nil {
		return err
	}
	if err := seedOfficeNetworks(db); err != nil {
		return err
	}
	if err := seedOfficeSetting(db); err != nil {
		return err
	}
	if cfg.IsDev() {
		if err := seedDemoTasks(db); err != nil {
			return err
		}
	}
	return nil
}

// seedAdminUser creates the initial administrator account
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(getEnv("SEED_ADMIN_PASSWORD", "changeme1234"))
	if err != nil {
		return err
	}

	admin := &models.User{
		EmpNo:      "EMP0001",
		Username:   "admin",
		Email:      getEnv("SEED_ADMIN_EMAIL", "admin@lawdesk.local"),
		Password:   hashed,
		FullName:   "System Administrator",
		Department: "Management",
		Role:       models.RoleAdmin,
		IsActive:   true,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("✅ Seeded admin user (username: admin)")
	return nil
}

// seedOfficeNetworks installs the initial allow-list entry when configured
func seedOfficeNetworks(db *gorm.DB) error {
	entry := getEnv("SEED_OFFICE_NETWORK", "")
	if entry == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.OfficeNetwork{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	network := &models.OfficeNetwork{
		OfficeName: getEnv("SEED_OFFICE_NAME", "Head Office"),
		IPAddress:  entry,
		Status:     models.NetworkEnabled,
	}

	if err := db.Create(network).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded office network %s (%s)", network.OfficeName, network.IPAddress)
	return nil
}

// seedOfficeSetting creates the QR access token row
func seedOfficeSetting(db *gorm.DB) error {
	var setting models.OfficeSetting
	err := db.First(&setting).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	setting = models.OfficeSetting{
		AccessToken: uuid.NewString(),
		RotatedAt:   time.Now(),
	}

	if err := db.Create(&setting).Error; err != nil {
		return err
	}

	log.Println("✅ Seeded office QR access token")
	return nil
}

// seedDemoTasks creates sample tasks so the performance endpoints return
// something meaningful in development
func seedDemoTasks(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Task{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var admin models.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		return err
	}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	twoDaysAgo := now.AddDate(0, 0, -2)

	tasks := []models.Task{
		{
			Title:       "Prepare contract review for Meridian case",
			Priority:    "HIGH",
			Status:      models.TaskCompleted,
			EmployeeID:  admin.ID,
			StartDate:   weekAgo,
			DueDate:     yesterday,
			CompletedAt: &twoDaysAgo,
		},
		{
			Title:      "File quarterly compliance report",
			Priority:   "MEDIUM",
			Status:     models.TaskInProgress,
			EmployeeID: admin.ID,
			StartDate:  weekAgo,
			DueDate:    tomorrow,
		},
		{
			Title:      "Archive closed case documents",
			Priority:   "LOW",
			Status:     models.TaskPending,
			EmployeeID: admin.ID,
			StartDate:  now,
			DueDate:    now.AddDate(0, 0, 14),
		},
	}

	if err := db.Create(&tasks).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d demo tasks", len(tasks))
	return nil
}
