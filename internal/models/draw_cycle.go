package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CycleState represents the lifecycle state of a draw cycle
type CycleState string

const (
	CycleStateOpen      CycleState = "OPEN"
	CycleStateCompleted CycleState = "COMPLETED"
	CycleStatePublished CycleState = "PUBLISHED"
)

// ErrInvalidTransition is returned when a lifecycle transition is not permitted
// from the current state. The record is left untouched.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// ValueOrigin tags how a winning value was selected, for display purposes.
type ValueOrigin string

const (
	OriginRare   ValueOrigin = "RARE"
	OriginCommon ValueOrigin = "COMMON"
)

// CombinationValue is one value of a cycle's winning combination.
type CombinationValue struct {
	Value  int         `bson:"value" json:"value"`
	Origin ValueOrigin `bson:"origin" json:"origin"`
}

// TierResult holds the computed figures for one match tier of a cycle.
type TierResult struct {
	PoolCents      int64 `bson:"poolCents" json:"poolCents"`
	WinnerCount    int   `bson:"winnerCount" json:"winnerCount"`
	PerWinnerCents int64 `bson:"perWinnerCents" json:"perWinnerCents"`
}

// TierConfigSnapshot freezes the configuration values a run used, so later
// configuration edits cannot alter a computed cycle.
type TierConfigSnapshot struct {
	ContributionCents int64 `bson:"contributionCents" json:"contributionCents"`
	Tier5Percent      int   `bson:"tier5Percent" json:"tier5Percent"`
	Tier4Percent      int   `bson:"tier4Percent" json:"tier4Percent"`
	Tier3Percent      int   `bson:"tier3Percent" json:"tier3Percent"`
	JackpotCapCents   int64 `bson:"jackpotCapCents" json:"jackpotCapCents"`
	ConfigVersion     int64 `bson:"configVersion" json:"configVersion"`
}

// DrawCycle represents one monthly draw period.
//
// Version is incremented on every write through the repository's
// version-checked update, giving run/publish single-writer semantics.
type DrawCycle struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Label            string             `bson:"label" json:"label"` // e.g. "2026-08"
	State            CycleState         `bson:"state" json:"state"`
	Version          int64              `bson:"version" json:"version"`
	RangeMin         int                `bson:"rangeMin" json:"rangeMin"`
	RangeMax         int                `bson:"rangeMax" json:"rangeMax"`
	Combination      []CombinationValue `bson:"combination,omitempty" json:"combination,omitempty"`
	SubmitterCount   int                `bson:"submitterCount" json:"submitterCount"`
	EligibleCount    int                `bson:"eligibleCount" json:"eligibleCount"`
	BasePoolCents    int64              `bson:"basePoolCents" json:"basePoolCents"`
	Tier5            TierResult         `bson:"tier5" json:"tier5"`
	Tier4            TierResult         `bson:"tier4" json:"tier4"`
	Tier3            TierResult         `bson:"tier3" json:"tier3"`
	RolloverInCents  int64              `bson:"rolloverInCents" json:"rolloverInCents"`
	RolloverOutCents int64              `bson:"rolloverOutCents" json:"rolloverOutCents"`
	ConfigSnapshot   TierConfigSnapshot `bson:"configSnapshot,omitempty" json:"configSnapshot,omitempty"`
	WinningRunID     string             `bson:"winningRunId,omitempty" json:"winningRunId,omitempty"`
	CompletedAt      time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	PublishedAt      time.Time          `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CanSimulate reports whether a preview may be computed against this cycle.
func (c *DrawCycle) CanSimulate() bool {
	return c.State == CycleStateOpen
}

// CanRun reports whether a persisted run may execute against this cycle.
// Re-running before publish is permitted and replaces the prior results.
func (c *DrawCycle) CanRun() bool {
	return c.State == CycleStateOpen || c.State == CycleStateCompleted
}

// MarkCompleted transitions the cycle to COMPLETED after a run. Allowed from
// OPEN and, for a re-run, from COMPLETED.
func (c *DrawCycle) MarkCompleted(now time.Time) error {
	if !c.CanRun() {
		return fmt.Errorf("%w: cannot run cycle %s in state %s", ErrInvalidTransition, c.Label, c.State)
	}
	c.State = CycleStateCompleted
	c.CompletedAt = now
	return nil
}

// MarkPublished transitions the cycle to its terminal PUBLISHED state.
// Publishing an already-published cycle fails without mutating anything.
func (c *DrawCycle) MarkPublished(now time.Time) error {
	switch c.State {
	case CycleStateCompleted:
		c.State = CycleStatePublished
		c.PublishedAt = now
		return nil
	case CycleStatePublished:
		return fmt.Errorf("%w: cycle %s is already published", ErrInvalidTransition, c.Label)
	default:
		return fmt.Errorf("%w: cannot publish cycle %s in state %s", ErrInvalidTransition, c.Label, c.State)
	}
}
