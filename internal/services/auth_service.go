package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/config"
	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"github.com/fairwaydraw/draw-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// ErrInvalidCredentials is returned for any login failure so callers cannot
// probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthServiceImpl handles operator authentication for the admin surface
type AuthServiceImpl struct {
	operatorRepo repositories.OperatorRepository
	cfg          *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(operatorRepo repositories.OperatorRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		operatorRepo: operatorRepo,
		cfg:          cfg,
	}
}

// Login verifies an operator's credentials and issues a JWT
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	operator, err := s.operatorRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: fetching operator: %v", ErrUpstreamUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Second * time.Duration(s.cfg.JWT.ExpiresIn))
	token, err := utils.GenerateJWT(operator.ID.Hex(), operator.Role, expiresAt, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("Operator logged in", "operatorId", operator.ID.Hex())
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// Register creates a new operator account with a bcrypt-hashed password
func (s *AuthServiceImpl) Register(ctx context.Context, operator *models.Operator, password string) (*models.Operator, error) {
	if _, err := s.operatorRepo.FindByEmail(ctx, operator.Email); err == nil {
		return nil, errors.New("an operator with this email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: checking operator email: %v", ErrUpstreamUnavailable, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	operator.Password = string(hashed)
	if operator.Role == "" {
		operator.Role = "admin"
	}

	if err := s.operatorRepo.Create(ctx, operator); err != nil {
		return nil, fmt.Errorf("%w: creating operator: %v", ErrUpstreamUnavailable, err)
	}

	operator.Password = ""
	slog.Info("Operator registered", "operatorId", operator.ID.Hex(), "role", operator.Role)
	return operator, nil
}
