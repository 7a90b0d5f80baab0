package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// tierConfigKey identifies the single configuration document.
const tierConfigKey = "tier_config"

// TierConfigRepository implements the repositories.TierConfigRepository interface
type TierConfigRepository struct {
	collection *mongo.Collection
}

// NewTierConfigRepository creates a new TierConfigRepository
func NewTierConfigRepository(db *mongo.Database) repositories.TierConfigRepository {
	return &TierConfigRepository{
		collection: db.Collection("system_config"),
	}
}

// Get returns the current prize pool configuration
func (r *TierConfigRepository) Get(ctx context.Context) (*models.TierConfig, error) {
	var config models.TierConfig
	err := r.collection.FindOne(ctx, bson.M{"key": tierConfigKey}).Decode(&config)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &config, nil
}

// Upsert saves the configuration, bumping its version so cycles can record
// exactly which revision they computed with.
func (r *TierConfigRepository) Upsert(ctx context.Context, config *models.TierConfig) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"contributionCents": config.ContributionCents,
			"tier5Percent":      config.Tier5Percent,
			"tier4Percent":      config.Tier4Percent,
			"tier3Percent":      config.Tier3Percent,
			"jackpotCapCents":   config.JackpotCapCents,
			"updatedBy":         config.UpdatedBy,
			"updatedAt":         now,
		},
		"$inc":         bson.M{"version": int64(1)},
		"$setOnInsert": bson.M{"key": tierConfigKey, "createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	return r.collection.FindOneAndUpdate(ctx, bson.M{"key": tierConfigKey}, update, opts).Decode(config)
}
