package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/draw"
	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScorePool is the aggregator's output: the full statistics multiset across
// every submitter, and the deduplicated per-member sets for members eligible
// to win. Values outside the cycle's range appear in neither.
type ScorePool struct {
	AllValues      []int
	EligibleSets   map[primitive.ObjectID][]int
	SubmitterCount int
}

// ScoreAggregator collects the frozen score sets for a cycle as of a cutoff.
// Read-only; it owns no writes.
type ScoreAggregator struct {
	scoreRepo  repositories.ScoreEntryRepository
	memberRepo repositories.MemberRepository
}

// NewScoreAggregator creates a new ScoreAggregator
func NewScoreAggregator(scoreRepo repositories.ScoreEntryRepository, memberRepo repositories.MemberRepository) *ScoreAggregator {
	return &ScoreAggregator{
		scoreRepo:  scoreRepo,
		memberRepo: memberRepo,
	}
}

// Aggregate builds the score pool for the given cutoff and value range.
// Every submitter's values feed the statistics multiset; only members in
// good standing get a set in EligibleSets. Returns draw.ErrNoScores when
// nobody submitted before the cutoff, so callers can tell "nobody played"
// apart from a draw with zero winners.
func (a *ScoreAggregator) Aggregate(ctx context.Context, cutoff time.Time, rangeMin, rangeMax int) (*ScorePool, error) {
	entries, err := a.scoreRepo.FindCurrentBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching score entries: %v", ErrUpstreamUnavailable, err)
	}
	if len(entries) == 0 {
		return nil, draw.ErrNoScores
	}

	// Newest-first ordering from the repository: per member, keep the most
	// recent entries up to the fixed set size, one per distinct value.
	perMember := make(map[primitive.ObjectID][]int)
	for _, entry := range entries {
		set := perMember[entry.MemberID]
		if len(set) >= draw.CombinationSize {
			continue
		}
		if containsValue(set, entry.Value) {
			continue
		}
		perMember[entry.MemberID] = append(set, entry.Value)
	}

	memberIDs := make([]primitive.ObjectID, 0, len(perMember))
	for id := range perMember {
		memberIDs = append(memberIDs, id)
	}
	members, err := a.memberRepo.FindByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching members: %v", ErrUpstreamUnavailable, err)
	}

	pool := &ScorePool{
		EligibleSets:   make(map[primitive.ObjectID][]int),
		SubmitterCount: len(perMember),
	}
	for id, set := range perMember {
		inRange := make([]int, 0, len(set))
		for _, v := range set {
			if v >= rangeMin && v <= rangeMax {
				inRange = append(inRange, v)
			}
		}
		sort.Ints(inRange)
		pool.AllValues = append(pool.AllValues, inRange...)

		member, ok := members[id]
		if !ok || !member.IsEligible() {
			continue
		}
		if len(inRange) > 0 {
			pool.EligibleSets[id] = inRange
		}
	}
	sort.Ints(pool.AllValues)

	return pool, nil
}

// EvaluateMatches classifies every eligible member's set against the winning
// combination, returning the qualifying (member, tier) pairs and the per-tier
// counts. Classification order is immaterial; results are keyed by member.
func EvaluateMatches(pool *ScorePool, combination []models.CombinationValue) (map[primitive.ObjectID]int, draw.TierCounts) {
	tiers := make(map[primitive.ObjectID]int)
	var counts draw.TierCounts
	for memberID, set := range pool.EligibleSets {
		switch draw.MatchTier(set, combination) {
		case draw.Tier5:
			tiers[memberID] = draw.Tier5
			counts.Tier5++
		case draw.Tier4:
			tiers[memberID] = draw.Tier4
			counts.Tier4++
		case draw.Tier3:
			tiers[memberID] = draw.Tier3
			counts.Tier3++
		}
	}
	return tiers, counts
}

func containsValue(values []int, v int) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
