package services

import (
	"context"
	"testing"

	"github.com/fairwaydraw/draw-backend/internal/config"
	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	operators := newFakeOperatorRepo()
	cfg := testConfig()
	service := NewAuthService(operators, cfg)

	registered, err := service.Register(context.Background(), &models.Operator{
		Name:  "Ops",
		Email: "ops@example.com",
	}, "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin", registered.Role)
	assert.Empty(t, registered.Password, "hash must not leak in the response")

	resp, err := service.Login(context.Background(), &models.LoginRequest{
		Email:    "ops@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := utils.ValidateJWT(resp.Token, cfg)
	require.NoError(t, err)
	assert.Equal(t, registered.ID.Hex(), claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	operators := newFakeOperatorRepo()
	service := NewAuthService(operators, testConfig())

	_, err := service.Register(context.Background(), &models.Operator{Email: "ops@example.com"}, "right")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &models.LoginRequest{
		Email:    "ops@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownOperator(t *testing.T) {
	service := NewAuthService(newFakeOperatorRepo(), testConfig())

	_, err := service.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := NewAuthService(newFakeOperatorRepo(), testConfig())

	_, err := service.Register(context.Background(), &models.Operator{Email: "ops@example.com"}, "pass")
	require.NoError(t, err)

	_, err = service.Register(context.Background(), &models.Operator{Email: "ops@example.com"}, "pass")
	assert.Error(t, err)
}
