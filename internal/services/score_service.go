package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ScoreServiceImpl implements ScoreService
var _ ScoreService = (*ScoreServiceImpl)(nil)

// ScoreServiceImpl handles score entry submission. Range and cardinality
// validation happens at the entry surface upstream; the service's job is the
// supersede rule and provenance.
type ScoreServiceImpl struct {
	scoreRepo  repositories.ScoreEntryRepository
	memberRepo repositories.MemberRepository
}

// NewScoreService creates a new ScoreServiceImpl
func NewScoreService(scoreRepo repositories.ScoreEntryRepository, memberRepo repositories.MemberRepository) *ScoreServiceImpl {
	return &ScoreServiceImpl{
		scoreRepo:  scoreRepo,
		memberRepo: memberRepo,
	}
}

// SubmitScore records one score value for a member. A live entry sharing the
// value is superseded, never mutated.
func (s *ScoreServiceImpl) SubmitScore(ctx context.Context, memberID primitive.ObjectID, value int, source string) (*models.ScoreEntry, error) {
	if _, err := s.memberRepo.FindByID(ctx, memberID); err != nil {
		return nil, err
	}

	entry := &models.ScoreEntry{
		MemberID:  memberID,
		Value:     value,
		Source:    source,
		EnteredAt: time.Now(),
	}
	if err := s.scoreRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: saving score entry: %v", ErrUpstreamUnavailable, err)
	}

	slog.Info("Score submitted", "memberId", memberID.Hex(), "value", value, "source", source)
	return entry, nil
}

// GetCurrentScores returns a member's live score entries, newest first
func (s *ScoreServiceImpl) GetCurrentScores(ctx context.Context, memberID primitive.ObjectID) ([]*models.ScoreEntry, error) {
	return s.scoreRepo.FindCurrentByMember(ctx, memberID)
}
