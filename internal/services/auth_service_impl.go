package services

import (
	"fmt"

	"github.com/glowdesk/crm-api/internal/auth"
	apperrors "github.com/glowdesk/crm-api/internal/errors"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/repository"
	"github.com/glowdesk/crm-api/pkg/config"
)

// authServiceImpl implements AuthService
type authServiceImpl struct {
	repos      *repository.Repositories
	jwtService *auth.JWTService
	cfg        *config.Config
}

// newAuthService creates a new auth service implementation
func newAuthService(repos *repository.Repositories, cfg *config.Config) AuthService {
	return &authServiceImpl{
		repos:      repos,
		jwtService: auth.NewJWTService(cfg.JWTSecret),
		cfg:        cfg,
	}
}

// Login authenticates a user and returns access and refresh tokens
func (s *authServiceImpl) Login(email, password string) (*LoginResponse, error) {
	user, err := s.repos.User.GetByEmail(email)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	return s.issueTokens(user)
}

// Register creates a new user account
func (s *authServiceImpl) Register(req *models.CreateUserRequest) (*models.User, error) {
	if existing, err := s.repos.User.GetByEmail(req.Email); err == nil && existing != nil {
		return nil, apperrors.Conflict(fmt.Sprintf("user with email %s already exists", req.Email), nil)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleUser:
	default:
		return nil, apperrors.ValidationError(fmt.Sprintf("invalid role: %s", role), nil)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError("failed to hash password", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         string(role),
	}

	if err := s.repos.User.Create(user); err != nil {
		return nil, apperrors.DatabaseError("failed to create user", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// ValidateToken validates a JWT token and returns the user
func (s *authServiceImpl) ValidateToken(token string) (*models.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token", err)
	}

	user, err := s.repos.User.GetByID(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("user no longer exists", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// RefreshToken exchanges a valid refresh token for a fresh token pair
func (s *authServiceImpl) RefreshToken(token string) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token", err)
	}

	user, err := s.repos.User.GetByID(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("user no longer exists", err)
	}

	return s.issueTokens(user)
}

func (s *authServiceImpl) issueTokens(user *models.User) (*LoginResponse, error) {
	claims := auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	token, expiresAt, err := s.jwtService.GenerateToken(claims)
	if err != nil {
		return nil, apperrors.InternalError("failed to generate token", err)
	}

	refreshToken, _, err := s.jwtService.GenerateRefreshToken(claims)
	if err != nil {
		return nil, apperrors.InternalError("failed to generate refresh token", err)
	}

	return &LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User: models.User{
			ID:        user.ID,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
		ExpiresAt: expiresAt,
	}, nil
}
