package services

import (
	"context"
	"errors"
	"log"

	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/adapters/persistence/repositories"
	"lawdesk-erp/internal/core/domain"
	"lawdesk-erp/internal/pkg/pagination"
	"lawdesk-erp/internal/pkg/password"

	"gorm.io/gorm"
)

// User directory errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrCannotDeactivateSelf = errors.New("cannot deactivate your own account")
)

// UpdateProfileInput carries profile edits. Nil fields are left untouched.
type UpdateProfileInput struct {
	FullName   *string `json:"full_name"`
	Department *string `json:"department"`
	Email      *string `json:"email"`
}

// UserService handles the employee directory
type UserService struct {
	userRepo    repositories.UserRepository
	refreshRepo repositories.RefreshTokenRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	refreshRepo repositories.RefreshTokenRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
	}
}

// List returns the employee directory, paginated
func (s *UserService) List(ctx context.Context, p *pagination.Params) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, total, nil
}

// Get returns a single employee profile
func (s *UserService) Get(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *UserService) getUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update edits profile fields
func (s *UserService) Update(ctx context.Context, id uint, in UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = *in.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Department != nil {
		user.Department = *in.Department
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// ChangePassword verifies the current password, replaces it and revokes
// every open session of the user
func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(currentPassword, user.Password) {
		return domain.ErrInvalidCredentials
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.refreshRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ Password changed for user %d", userID)
	return nil
}

// SetRole switches an employee between EMPLOYEE and ADMIN
func (s *UserService) SetRole(ctx context.Context, id uint, role string) (*models.UserResponse, error) {
	if role != models.RoleEmployee && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Role of user %d set to %s", id, role)
	return user.ToResponse(), nil
}

// SetActive activates or deactivates an account. Deactivation also revokes
// every open session; admins cannot deactivate themselves.
func (s *UserService) SetActive(ctx context.Context, id uint, active bool, actorID uint) (*models.UserResponse, error) {
	if !active && id == actorID {
		return nil, ErrCannotDeactivateSelf
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if !active {
		if err := s.refreshRepo.RevokeAllByUserID(ctx, id); err != nil {
			return nil, err
		}
		log.Printf("✅ User %d deactivated", id)
	} else {
		log.Printf("✅ User %d activated", id)
	}

	return user.ToResponse(), nil
}
