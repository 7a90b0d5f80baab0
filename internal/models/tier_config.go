package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TierConfig holds the admin-mutable prize pool settings. It is versioned so
// each cycle can snapshot exactly what it computed with; edits never
// retroactively alter a computed cycle.
type TierConfig struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ContributionCents int64              `bson:"contributionCents" json:"contributionCents"` // per eligible subscriber
	Tier5Percent      int                `bson:"tier5Percent" json:"tier5Percent"`
	Tier4Percent      int                `bson:"tier4Percent" json:"tier4Percent"`
	Tier3Percent      int                `bson:"tier3Percent" json:"tier3Percent"`
	JackpotCapCents   int64              `bson:"jackpotCapCents" json:"jackpotCapCents"`
	Version           int64              `bson:"version" json:"version"`
	UpdatedBy         string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultTierConfig returns the configuration used before an admin has saved
// one: £10 contribution, 40/35/25 split and a £10,000 jackpot cap.
func DefaultTierConfig() *TierConfig {
	return &TierConfig{
		ContributionCents: 1000,
		Tier5Percent:      40,
		Tier4Percent:      35,
		Tier3Percent:      25,
		JackpotCapCents:   1000000,
	}
}

// Snapshot freezes the values a run used into a cycle-embedded copy.
func (t *TierConfig) Snapshot() TierConfigSnapshot {
	return TierConfigSnapshot{
		ContributionCents: t.ContributionCents,
		Tier5Percent:      t.Tier5Percent,
		Tier4Percent:      t.Tier4Percent,
		Tier3Percent:      t.Tier3Percent,
		JackpotCapCents:   t.JackpotCapCents,
		ConfigVersion:     t.Version,
	}
}
