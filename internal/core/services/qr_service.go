package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"log"
	"time"

	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/adapters/persistence/repositories"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QRAccess is the payload rendered on the office check-in poster
type QRAccess struct {
	QRCode        string    `json:"qr_code"`
	AttendanceURL string    `json:"attendance_url"`
	RotatedAt     time.Time `json:"rotated_at"`
}

// QRService issues the stable office QR code. The token is persisted in
// office_settings and stays valid until an admin rotates it, so reprinting
// the poster is never required for normal operation.
type QRService struct {
	settingRepo repositories.OfficeSettingRepository
	baseURL     string
}

// NewQRService creates a new QR service
func NewQRService(settingRepo repositories.OfficeSettingRepository, baseURL string) *QRService {
	return &QRService{
		settingRepo: settingRepo,
		baseURL:     baseURL,
	}
}

// GetAccess returns the current QR code and attendance URL, creating the
// token row on first use
func (s *QRService) GetAccess(ctx context.Context) (*QRAccess, error) {
	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		setting = &models.OfficeSetting{
			AccessToken: uuid.NewString(),
			RotatedAt:   time.Now(),
		}
		if err := s.settingRepo.Create(ctx, setting); err != nil {
			return nil, err
		}
	}

	return s.buildAccess(setting)
}

// Rotate replaces the access token and returns the new QR code. Old
// posters stop working immediately.
func (s *QRService) Rotate(ctx context.Context) (*QRAccess, error) {
	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return s.GetAccess(ctx)
	}

	now := time.Now()
	token := uuid.NewString()
	if err := s.settingRepo.UpdateToken(ctx, setting.ID, token, now); err != nil {
		return nil, err
	}

	setting.AccessToken = token
	setting.RotatedAt = now

	log.Printf("✅ Office QR access token rotated")
	return s.buildAccess(setting)
}

func (s *QRService) buildAccess(setting *models.OfficeSetting) (*QRAccess, error) {
	attendanceURL := fmt.Sprintf("%s/attendance?token=%s", s.baseURL, setting.AccessToken)

	code, err := qr.Encode(attendanceURL, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}
	code, err = barcode.Scale(code, 256, 256)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, err
	}

	return &QRAccess{
		QRCode:        "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		AttendanceURL: attendanceURL,
		RotatedAt:     setting.RotatedAt,
	}, nil
}
