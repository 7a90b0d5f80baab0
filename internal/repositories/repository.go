package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned when a version-checked write loses the
	// race: another action mutated the record since it was read. Callers
	// retry or abort; the stale write is never applied.
	ErrVersionConflict = errors.New("record was modified by a concurrent action")
)

// MemberRepository defines the interface for member data operations
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	CountEligible(ctx context.Context) (int64, error)
	Update(ctx context.Context, member *models.Member) error
}

// ScoreEntryRepository defines the interface for score entry data operations
type ScoreEntryRepository interface {
	// Create inserts the entry and marks any live entry of the same member
	// and value as superseded, so duplicate values never persist together.
	Create(ctx context.Context, entry *models.ScoreEntry) error
	// FindCurrentBefore returns all entries not superseded as of the cutoff,
	// entered before it, newest first.
	FindCurrentBefore(ctx context.Context, cutoff time.Time) ([]*models.ScoreEntry, error)
	FindCurrentByMember(ctx context.Context, memberID primitive.ObjectID) ([]*models.ScoreEntry, error)
}

// DrawCycleRepository defines the interface for draw cycle data operations
type DrawCycleRepository interface {
	Create(ctx context.Context, cycle *models.DrawCycle) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DrawCycle, error)
	FindByLabel(ctx context.Context, label string) (*models.DrawCycle, error)
	FindLatest(ctx context.Context) (*models.DrawCycle, error)
	FindOpen(ctx context.Context) (*models.DrawCycle, error)
	FindAll(ctx context.Context) ([]*models.DrawCycle, error)
	// UpdateWithVersion applies the cycle document only if the stored version
	// still equals expectedVersion, incrementing it on success. A lost race
	// returns ErrVersionConflict and writes nothing.
	UpdateWithVersion(ctx context.Context, cycle *models.DrawCycle, expectedVersion int64) error
	// CreateOpenIfAbsent inserts an OPEN cycle keyed on its unique label.
	// Racing calls for the same label yield the one stored cycle.
	CreateOpenIfAbsent(ctx context.Context, cycle *models.DrawCycle) (*models.DrawCycle, error)
}

// WinningEntryRepository defines the interface for winning entry operations
type WinningEntryRepository interface {
	CreateMany(ctx context.Context, entries []*models.WinningEntry) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.WinningEntry, error)
	FindByCycleAndRun(ctx context.Context, cycleID primitive.ObjectID, runID string) ([]*models.WinningEntry, error)
	// DeleteStaleRuns removes entries for the cycle whose run is not keepRunID,
	// discarding results of superseded unpublished runs.
	DeleteStaleRuns(ctx context.Context, cycleID primitive.ObjectID, keepRunID string) error
	DeleteByRun(ctx context.Context, cycleID primitive.ObjectID, runID string) error
	Update(ctx context.Context, entry *models.WinningEntry) error
}

// TierConfigRepository defines the interface for prize pool configuration
type TierConfigRepository interface {
	// Get returns the single current configuration, or ErrNotFound before
	// an admin has saved one.
	Get(ctx context.Context) (*models.TierConfig, error)
	// Upsert saves the configuration, bumping its version.
	Upsert(ctx context.Context, config *models.TierConfig) error
}

// CharityRepository defines the interface for charity directory reads
type CharityRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Charity, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Charity, error)
	FindAll(ctx context.Context) ([]*models.Charity, error)
}

// OperatorRepository defines the interface for operator account operations
type OperatorRepository interface {
	Create(ctx context.Context, operator *models.Operator) error
	FindByEmail(ctx context.Context, email string) (*models.Operator, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Operator, error)
}
