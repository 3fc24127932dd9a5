package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"

	"lawdesk-erp/internal/adapters/persistence/models"
	"lawdesk-erp/internal/adapters/persistence/repositories"
	"lawdesk-erp/internal/config"
	"lawdesk-erp/internal/core/domain"
	"lawdesk-erp/internal/pkg/jwt"
	"lawdesk-erp/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserInactive        = errors.New("user account is deactivated")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already registered")
	ErrEmpNoTaken          = errors.New("employee number already registered")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// TokenPair carries a freshly issued access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // access token lifetime in seconds
}

// RegisterInput is the payload for onboarding a new employee
type RegisterInput struct {
	EmpNo      string `json:"emp_no" validate:"required"`
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FullName   string `json:"full_name" validate:"required"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// AuthService handles login, token issuance and refresh rotation
type AuthService struct {
	userRepo    repositories.UserRepository
	refreshRepo repositories.RefreshTokenRepository
	jwtConfig   config.JWTConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshRepo repositories.RefreshTokenRepository,
	jwtConfig config.JWTConfig,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		jwtConfig:   jwtConfig,
	}
}

// hashToken stores only a digest of the refresh token id; a leaked
// database dump cannot be replayed as a session.
func hashToken(tokenID string) string {
	sum := sha256.Sum256([]byte(tokenID))
	return hex.EncodeToString(sum[:])
}

// Register onboards a new employee (admin only, enforced at the route)
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = models.RoleEmployee
	}
	if role != models.RoleEmployee && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	if taken, err := s.userRepo.ExistsByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.userRepo.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}
	if taken, err := s.userRepo.ExistsByEmpNo(ctx, in.EmpNo); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmpNoTaken
	}

	hashed, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		EmpNo:      in.EmpNo,
		Username:   in.Username,
		Email:      in.Email,
		Password:   hashed,
		FullName:   in.FullName,
		Department: in.Department,
		Role:       role,
		IsActive:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Username, user.EmpNo)
	return user.ToResponse(), nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, username, plainPassword string) (*TokenPair, *models.UserResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !user.IsActive {
		return nil, nil, ErrUserInactive
	}

	if !password.Verify(plainPassword, user.Password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)
	return pair, user.ToResponse(), nil
}

// issueTokens mints an access token and a stored, rotatable refresh token
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID, user.EmpNo, user.Username, user.Role,
		s.jwtConfig.Secret, s.jwtConfig.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.NewString()
	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID, tokenID,
		s.jwtConfig.RefreshSecret, s.jwtConfig.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	stored := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(tokenID),
		ExpiresAt: jwt.GetExpiryTime(s.jwtConfig.RefreshTokenDays),
	}
	if err := s.refreshRepo.Create(ctx, stored); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwtConfig.AccessTokenMins * 60,
	}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued. A revoked or expired token is rejected outright.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.jwtConfig.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.refreshRepo.GetByTokenHash(ctx, hashToken(claims.TokenID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if stored.IsRevoked() || stored.IsExpired() {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := s.refreshRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token. An already invalid token is
// treated as logged out.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.jwtConfig.RefreshSecret)
	if err != nil {
		return nil
	}

	stored, err := s.refreshRepo.GetByTokenHash(ctx, hashToken(claims.TokenID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return s.refreshRepo.Revoke(ctx, stored.ID)
}

// LogoutAll revokes every refresh token of the user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.refreshRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}
	log.Printf("✅ All sessions revoked for user %d", userID)
	return nil
}

// Me returns the current user's profile
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}
