package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// periodLayout is the cycle label format, e.g. "2026-08".
const periodLayout = "2006-01"

// GenerateJWT issues a signed token for an operator
func GenerateJWT(operatorID, role string, expiresAt time.Time, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub":  operatorID,
		"role": role,
		"exp":  expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateJWT parses and validates a token, returning its claims
func ValidateJWT(tokenString string, cfg *config.Config) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// PeriodLabel returns the cycle label for the month containing t
func PeriodLabel(t time.Time) string {
	return t.Format(periodLayout)
}

// NextPeriodLabel returns the label of the month after the given one
func NextPeriodLabel(label string) (string, error) {
	t, err := time.Parse(periodLayout, label)
	if err != nil {
		return "", fmt.Errorf("invalid period label %q: %w", label, err)
	}
	return t.AddDate(0, 1, 0).Format(periodLayout), nil
}

// MaskEmail masks an email address for logging (e.g. "al***@example.com")
func MaskEmail(email string) string {
	for i, r := range email {
		if r == '@' {
			if i <= 2 {
				return "***" + email[i:]
			}
			return email[:2] + "***" + email[i:]
		}
	}
	return "***"
}
