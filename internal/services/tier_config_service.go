package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairwaydraw/draw-backend/internal/draw"
	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure TierConfigServiceImpl implements TierConfigService
var _ TierConfigService = (*TierConfigServiceImpl)(nil)

// TierConfigServiceImpl manages the admin-mutable prize pool settings.
// Edits never touch cycles that already snapshotted their values.
type TierConfigServiceImpl struct {
	tierConfigRepo repositories.TierConfigRepository
}

// NewTierConfigService creates a new TierConfigServiceImpl
func NewTierConfigService(tierConfigRepo repositories.TierConfigRepository) *TierConfigServiceImpl {
	return &TierConfigServiceImpl{tierConfigRepo: tierConfigRepo}
}

// GetConfig returns the current configuration, defaults before one is saved
func (s *TierConfigServiceImpl) GetConfig(ctx context.Context) (*models.TierConfig, error) {
	config, err := s.tierConfigRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.DefaultTierConfig(), nil
		}
		return nil, fmt.Errorf("%w: fetching tier configuration: %v", ErrUpstreamUnavailable, err)
	}
	return config, nil
}

// UpdateConfig validates and saves the configuration
func (s *TierConfigServiceImpl) UpdateConfig(ctx context.Context, config *models.TierConfig, operator string) (*models.TierConfig, error) {
	if config.Tier5Percent+config.Tier4Percent+config.Tier3Percent != 100 {
		return nil, fmt.Errorf("%w: got %d/%d/%d", draw.ErrBadTierSplit,
			config.Tier5Percent, config.Tier4Percent, config.Tier3Percent)
	}
	if config.ContributionCents < 0 || config.JackpotCapCents < 0 {
		return nil, errors.New("contribution and jackpot cap must be non-negative")
	}

	config.UpdatedBy = operator
	if err := s.tierConfigRepo.Upsert(ctx, config); err != nil {
		return nil, fmt.Errorf("%w: saving tier configuration: %v", ErrUpstreamUnavailable, err)
	}

	slog.Info("Tier configuration updated",
		"operator", operator,
		"contributionCents", config.ContributionCents,
		"split", fmt.Sprintf("%d/%d/%d", config.Tier5Percent, config.Tier4Percent, config.Tier3Percent),
		"jackpotCapCents", config.JackpotCapCents,
		"version", config.Version)
	return config, nil
}
