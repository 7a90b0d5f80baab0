package services

import (
	"context"
	"errors"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUpstreamUnavailable wraps collaborator failures (data store, account
// management) so the operator can distinguish "your data is wrong" from
// "the system could not be reached".
var ErrUpstreamUnavailable = errors.New("upstream collaborator unavailable")

// DrawService defines the interface for draw engine operations
type DrawService interface {
	// Simulate previews a draw under an experimental value range. Read-only:
	// nothing is persisted and the cycle state does not change.
	Simulate(ctx context.Context, rangeMin, rangeMax int) (*models.DrawPreview, error)

	// Run executes the draw pipeline and persists the outcome, transitioning
	// the cycle to COMPLETED. Re-running before publish replaces the prior
	// combination, figures and winning entries. With no cycle ID the current
	// cycle is used, auto-created on cold start.
	Run(ctx context.Context, cycleID *primitive.ObjectID, rangeMin, rangeMax int) (*models.DrawCycle, error)

	// Publish makes a completed cycle's figures authoritative and opens the
	// next cycle. One-way; publishing twice fails without side effects.
	Publish(ctx context.Context, cycleID primitive.ObjectID) (*models.DrawCycle, error)

	GetCycleByID(ctx context.Context, cycleID primitive.ObjectID) (*models.DrawCycle, error)
	GetCurrentCycle(ctx context.Context) (*models.DrawCycle, error)
	GetCycles(ctx context.Context) ([]*models.DrawCycle, error)
}

// WinnerService defines the interface for the verification/payout ledger and
// the winners export.
type WinnerService interface {
	GetWinnersByCycleID(ctx context.Context, cycleID primitive.ObjectID) ([]*models.WinningEntry, error)
	VerifyWinner(ctx context.Context, entryID primitive.ObjectID, operator string) (*models.WinningEntry, error)
	MarkPaid(ctx context.Context, entryID primitive.ObjectID, operator, reference string) (*models.WinningEntry, error)
	ExportWinnersCSV(ctx context.Context, cycleID primitive.ObjectID) ([]byte, error)
	ExportWinnersXLSX(ctx context.Context, cycleID primitive.ObjectID) ([]byte, error)
}

// ScoreService defines the interface for score entry operations
type ScoreService interface {
	SubmitScore(ctx context.Context, memberID primitive.ObjectID, value int, source string) (*models.ScoreEntry, error)
	GetCurrentScores(ctx context.Context, memberID primitive.ObjectID) ([]*models.ScoreEntry, error)
}

// TierConfigService defines the interface for prize pool configuration
type TierConfigService interface {
	GetConfig(ctx context.Context) (*models.TierConfig, error)
	UpdateConfig(ctx context.Context, config *models.TierConfig, operator string) (*models.TierConfig, error)
}

// AuthService defines the interface for operator authentication
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, operator *models.Operator, password string) (*models.Operator, error)
}
