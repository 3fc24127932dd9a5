package repositories

import (
	"context"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// officeNetworkRepository implements OfficeNetworkRepository interface
type officeNetworkRepository struct {
	db *gorm.DB
}

// NewOfficeNetworkRepository creates a new office network repository
func NewOfficeNetworkRepository(db *gorm.DB) OfficeNetworkRepository {
	return &officeNetworkRepository{db: db}
}

// Create creates a new allow-list entry
func (r *officeNetworkRepository) Create(ctx context.Context, network *models.OfficeNetwork) error {
	return r.db.WithContext(ctx).Create(network).Error
}

// GetByID gets an allow-list entry by ID
func (r *officeNetworkRepository) GetByID(ctx context.Context, id uint) (*models.OfficeNetwork, error) {
	var network models.OfficeNetwork
	err := r.db.WithContext(ctx).First(&network, id).Error
	if err != nil {
		return nil, err
	}
	return &network, nil
}

// Update updates an allow-list entry
func (r *officeNetworkRepository) Update(ctx context.Context, network *models.OfficeNetwork) error {
	return r.db.WithContext(ctx).Save(network).Error
}

// Delete hard deletes an allow-list entry
func (r *officeNetworkRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.OfficeNetwork{}, id).Error
}

// List returns all allow-list entries
func (r *officeNetworkRepository) List(ctx context.Context) ([]models.OfficeNetwork, error) {
	var networks []models.OfficeNetwork
	err := r.db.WithContext(ctx).Order("id ASC").Find(&networks).Error
	return networks, err
}

// ListEnabled returns only ENABLED entries (the attendance gate read path)
func (r *officeNetworkRepository) ListEnabled(ctx context.Context) ([]models.OfficeNetwork, error) {
	var networks []models.OfficeNetwork
	err := r.db.WithContext(ctx).
		Where("status = ?", models.NetworkEnabled).
		Order("id ASC").
		Find(&networks).Error
	return networks, err
}

// officeSettingRepository implements OfficeSettingRepository interface
type officeSettingRepository struct {
	db *gorm.DB
}

// NewOfficeSettingRepository creates a new office setting repository
func NewOfficeSettingRepository(db *gorm.DB) OfficeSettingRepository {
	return &officeSettingRepository{db: db}
}

// Get returns the single settings row
func (r *officeSettingRepository) Get(ctx context.Context) (*models.OfficeSetting, error) {
	var setting models.OfficeSetting
	err := r.db.WithContext(ctx).Order("id ASC").First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Create inserts the settings row
func (r *officeSettingRepository) Create(ctx context.Context, setting *models.OfficeSetting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

// UpdateToken rotates the QR access token
func (r *officeSettingRepository) UpdateToken(ctx context.Context, id uint, token string, rotatedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.OfficeSetting{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"access_token": token,
			"rotated_at":   rotatedAt,
		}).Error
}
