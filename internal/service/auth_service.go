package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"billed/internal/dto"
	"billed/internal/models"
	"billed/internal/repository"
	"billed/pkg/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// UserStorage is the persistence the auth service needs.
type UserStorage interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthService struct {
	userRepo   UserStorage
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(userRepo UserStorage, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register opens an Employee account. Admin accounts are provisioned by the
// back office through Provision.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return s.Provision(ctx, req, models.UserTypeEmployee)
}

func (s *AuthService) Provision(ctx context.Context, req *dto.RegisterRequest, userType models.UserType) (*dto.AuthResponse, error) {
	if userType != models.UserTypeEmployee && userType != models.UserTypeAdmin {
		return nil, fmt.Errorf("unknown user type %q", userType)
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)
	if existing, _ := s.userRepo.GetByEmail(ctx, email); existing != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Type:      userType,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()), zap.String("type", string(user.Type)))
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.String(), string(user.Type), user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User: dto.UserResponse{
			ID:    user.ID.String(),
			Type:  string(user.Type),
			Email: user.Email,
		},
	}, nil
}
