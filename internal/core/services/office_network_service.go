package services

import (
	"context"
	"errors"
	"log"
	"net/netip"
	"strings"

	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Office network errors
var (
	ErrNetworkNotFound      = errors.New("office network not found")
	ErrInvalidNetworkEntry  = errors.New("invalid IP address or CIDR range")
	ErrInvalidNetworkStatus = errors.New("invalid network status")
)

// NetworkInput is the payload for creating or updating an allow-list entry
type NetworkInput struct {
	OfficeName string `json:"office_name" validate:"required"`
	IPAddress  string `json:"ip_address" validate:"required"`
	Status     string `json:"status"`
}

// OfficeNetworkService manages the office IP allow-list
type OfficeNetworkService struct {
	networkRepo repositories.OfficeNetworkRepository
}

// NewOfficeNetworkService creates a new office network service
func NewOfficeNetworkService(networkRepo repositories.OfficeNetworkRepository) *OfficeNetworkService {
	return &OfficeNetworkService{networkRepo: networkRepo}
}

// validateEntry rejects entries the attendance gate could never match.
// A typo here would silently lock the office out of check-in.
func validateEntry(entry string) error {
	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, "/") {
		if _, err := netip.ParsePrefix(entry); err != nil {
			return ErrInvalidNetworkEntry
		}
		return nil
	}
	if _, err := netip.ParseAddr(entry); err != nil {
		return ErrInvalidNetworkEntry
	}
	return nil
}

func validateStatus(status string) error {
	if status != models.NetworkEnabled && status != models.NetworkDisabled {
		return ErrInvalidNetworkStatus
	}
	return nil
}

// Create adds an allow-list entry
func (s *OfficeNetworkService) Create(ctx context.Context, in NetworkInput) (*models.OfficeNetwork, error) {
	if err := validateEntry(in.IPAddress); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.NetworkEnabled
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	network := &models.OfficeNetwork{
		OfficeName: in.OfficeName,
		IPAddress:  strings.TrimSpace(in.IPAddress),
		Status:     status,
	}

	if err := s.networkRepo.Create(ctx, network); err != nil {
		return nil, err
	}

	log.Printf("✅ Office network '%s' (%s) added [%s]", network.OfficeName, network.IPAddress, network.Status)
	return network, nil
}

// Get returns a single entry
func (s *OfficeNetworkService) Get(ctx context.Context, id uint) (*models.OfficeNetwork, error) {
	network, err := s.networkRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNetworkNotFound
		}
		return nil, err
	}
	return network, nil
}

// List returns every allow-list entry
func (s *OfficeNetworkService) List(ctx context.Context) ([]models.OfficeNetwork, error) {
	return s.networkRepo.List(ctx)
}

// Update rewrites an entry
func (s *OfficeNetworkService) Update(ctx context.Context, id uint, in NetworkInput) (*models.OfficeNetwork, error) {
	network, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateEntry(in.IPAddress); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = network.Status
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	network.OfficeName = in.OfficeName
	network.IPAddress = strings.TrimSpace(in.IPAddress)
	network.Status = status

	if err := s.networkRepo.Update(ctx, network); err != nil {
		return nil, err
	}

	log.Printf("✅ Office network %d updated", id)
	return network, nil
}

// Delete removes an entry from the allow-list
func (s *OfficeNetworkService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.networkRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("✅ Office network %d deleted", id)
	return nil
}
