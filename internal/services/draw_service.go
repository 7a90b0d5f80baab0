package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/draw"
	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"github.com/fairwaydraw/draw-backend/internal/utils"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl drives the monthly draw engine: simulate, run and publish.
type DrawServiceImpl struct {
	cycleRepo      repositories.DrawCycleRepository
	entryRepo      repositories.WinningEntryRepository
	memberRepo     repositories.MemberRepository
	tierConfigRepo repositories.TierConfigRepository
	aggregator     *ScoreAggregator

	defaultRangeMin int
	defaultRangeMax int
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(
	cycleRepo repositories.DrawCycleRepository,
	entryRepo repositories.WinningEntryRepository,
	memberRepo repositories.MemberRepository,
	tierConfigRepo repositories.TierConfigRepository,
	aggregator *ScoreAggregator,
	defaultRangeMin, defaultRangeMax int,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		cycleRepo:       cycleRepo,
		entryRepo:       entryRepo,
		memberRepo:      memberRepo,
		tierConfigRepo:  tierConfigRepo,
		aggregator:      aggregator,
		defaultRangeMin: defaultRangeMin,
		defaultRangeMax: defaultRangeMax,
	}
}

// runComputation is the shared simulate/run pipeline output.
type runComputation struct {
	pool          *ScorePool
	combination   []models.CombinationValue
	memberTiers   map[primitive.ObjectID]int
	eligibleCount int64
	config        *models.TierConfig
	allocation    *draw.Allocation
}

// compute executes the read-only pipeline: aggregate -> derive combination ->
// evaluate matches -> allocate. Simulate and run share this path, which is
// what makes their outputs identical for identical inputs.
func (s *DrawServiceImpl) compute(ctx context.Context, cycle *models.DrawCycle, rangeMin, rangeMax int) (*runComputation, error) {
	config, err := s.currentTierConfig(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := s.aggregator.Aggregate(ctx, time.Now(), rangeMin, rangeMax)
	if err != nil {
		return nil, err
	}

	combination, err := draw.DeriveCombination(pool.AllValues, rangeMin, rangeMax)
	if err != nil {
		return nil, err
	}

	memberTiers, counts := EvaluateMatches(pool, combination)

	eligibleCount, err := s.memberRepo.CountEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: counting eligible subscribers: %v", ErrUpstreamUnavailable, err)
	}

	allocation, err := draw.Allocate(draw.AllocationInput{
		EligibleCount:     int(eligibleCount),
		ContributionCents: config.ContributionCents,
		Tier5Percent:      config.Tier5Percent,
		Tier4Percent:      config.Tier4Percent,
		Tier3Percent:      config.Tier3Percent,
		RolloverInCents:   cycle.RolloverInCents,
		JackpotCapCents:   config.JackpotCapCents,
		Winners:           counts,
	})
	if err != nil {
		return nil, err
	}

	return &runComputation{
		pool:          pool,
		combination:   combination,
		memberTiers:   memberTiers,
		eligibleCount: eligibleCount,
		config:        config,
		allocation:    allocation,
	}, nil
}

// Simulate previews a draw under an experimental range. Available only while
// the current cycle is OPEN; persists nothing.
func (s *DrawServiceImpl) Simulate(ctx context.Context, rangeMin, rangeMax int) (*models.DrawPreview, error) {
	cycle, err := s.peekCurrentCycle(ctx)
	if err != nil {
		return nil, err
	}
	if !cycle.CanSimulate() {
		return nil, fmt.Errorf("%w: cannot simulate cycle %s in state %s",
			models.ErrInvalidTransition, cycle.Label, cycle.State)
	}

	comp, err := s.compute(ctx, cycle, rangeMin, rangeMax)
	if err != nil {
		return nil, err
	}

	slog.Info("Draw simulated",
		"cycle", cycle.Label,
		"rangeMin", rangeMin,
		"rangeMax", rangeMax,
		"submitters", comp.pool.SubmitterCount,
		"projectedRolloverOut", comp.allocation.RolloverOutCents)

	alloc := comp.allocation
	return &models.DrawPreview{
		CycleLabel:                cycle.Label,
		RangeMin:                  rangeMin,
		RangeMax:                  rangeMax,
		Combination:               comp.combination,
		SubmitterCount:            comp.pool.SubmitterCount,
		EligibleCount:             int(comp.eligibleCount),
		BasePoolCents:             alloc.BasePoolCents,
		RolloverInCents:           alloc.RolloverInCents,
		Tier5:                     previewTier(alloc.Tier5),
		Tier4:                     previewTier(alloc.Tier4),
		Tier3:                     previewTier(alloc.Tier3),
		ProjectedRolloverOutCents: alloc.RolloverOutCents,
	}, nil
}

// Run executes the draw and persists the outcome. Available from OPEN and,
// as a recomputation, from COMPLETED; the prior unpublished winning-entry
// set is replaced, never appended to.
func (s *DrawServiceImpl) Run(ctx context.Context, cycleID *primitive.ObjectID, rangeMin, rangeMax int) (*models.DrawCycle, error) {
	var cycle *models.DrawCycle
	var err error
	if cycleID != nil {
		cycle, err = s.cycleRepo.FindByID(ctx, *cycleID)
	} else {
		cycle, err = s.ensureCurrentCycle(ctx)
	}
	if err != nil {
		return nil, err
	}
	if !cycle.CanRun() {
		return nil, fmt.Errorf("%w: cannot run cycle %s in state %s",
			models.ErrInvalidTransition, cycle.Label, cycle.State)
	}
	expectedVersion := cycle.Version

	comp, err := s.compute(ctx, cycle, rangeMin, rangeMax)
	if err != nil {
		return nil, err
	}

	// Winning entries are written under a fresh run ID before the cycle
	// update claims them; a lost version race discards them again, so a
	// half-finished run never becomes visible.
	runID := uuid.NewString()
	entries, err := s.buildWinningEntries(ctx, cycle.ID, runID, comp)
	if err != nil {
		return nil, err
	}
	if err := s.entryRepo.CreateMany(ctx, entries); err != nil {
		return nil, fmt.Errorf("%w: writing winning entries: %v", ErrUpstreamUnavailable, err)
	}

	now := time.Now()
	if err := cycle.MarkCompleted(now); err != nil {
		_ = s.entryRepo.DeleteByRun(ctx, cycle.ID, runID)
		return nil, err
	}
	alloc := comp.allocation
	cycle.RangeMin = rangeMin
	cycle.RangeMax = rangeMax
	cycle.Combination = comp.combination
	cycle.SubmitterCount = comp.pool.SubmitterCount
	cycle.EligibleCount = int(comp.eligibleCount)
	cycle.BasePoolCents = alloc.BasePoolCents
	cycle.Tier5 = tierResult(alloc.Tier5)
	cycle.Tier4 = tierResult(alloc.Tier4)
	cycle.Tier3 = tierResult(alloc.Tier3)
	cycle.RolloverOutCents = alloc.RolloverOutCents
	cycle.ConfigSnapshot = comp.config.Snapshot()
	cycle.WinningRunID = runID

	if err := s.cycleRepo.UpdateWithVersion(ctx, cycle, expectedVersion); err != nil {
		if delErr := s.entryRepo.DeleteByRun(ctx, cycle.ID, runID); delErr != nil {
			slog.Error("Failed to discard winning entries after lost run race",
				"error", delErr, "cycle", cycle.Label, "runId", runID)
		}
		return nil, err
	}

	// Results of any superseded run are now unreachable; prune them.
	if err := s.entryRepo.DeleteStaleRuns(ctx, cycle.ID, runID); err != nil {
		slog.Warn("Failed to prune stale winning entries", "error", err, "cycle", cycle.Label)
	}

	slog.Info("Draw run completed",
		"cycle", cycle.Label,
		"runId", runID,
		"combination", draw.CombinationValues(comp.combination),
		"winners", len(entries),
		"basePool", alloc.BasePoolCents,
		"rolloverOut", alloc.RolloverOutCents)

	return cycle, nil
}

// Publish makes a completed cycle authoritative and opens the next one.
func (s *DrawServiceImpl) Publish(ctx context.Context, cycleID primitive.ObjectID) (*models.DrawCycle, error) {
	cycle, err := s.cycleRepo.FindByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	expectedVersion := cycle.Version

	now := time.Now()
	if err := cycle.MarkPublished(now); err != nil {
		return nil, err
	}
	if err := s.cycleRepo.UpdateWithVersion(ctx, cycle, expectedVersion); err != nil {
		return nil, err
	}

	// Opening the next cycle is keyed on its unique label, so a concurrent
	// duplicate publish cannot create two open cycles.
	nextLabel, err := utils.NextPeriodLabel(cycle.Label)
	if err != nil {
		nextLabel = utils.PeriodLabel(now)
	}
	next := &models.DrawCycle{
		Label:           nextLabel,
		RangeMin:        cycle.RangeMin,
		RangeMax:        cycle.RangeMax,
		RolloverInCents: cycle.RolloverOutCents,
	}
	if _, err := s.cycleRepo.CreateOpenIfAbsent(ctx, next); err != nil {
		return nil, fmt.Errorf("%w: opening next cycle: %v", ErrUpstreamUnavailable, err)
	}

	slog.Info("Cycle published",
		"cycle", cycle.Label,
		"nextCycle", nextLabel,
		"rolloverOut", cycle.RolloverOutCents)

	return cycle, nil
}

// GetCycleByID retrieves a cycle by its ID
func (s *DrawServiceImpl) GetCycleByID(ctx context.Context, cycleID primitive.ObjectID) (*models.DrawCycle, error) {
	return s.cycleRepo.FindByID(ctx, cycleID)
}

// GetCurrentCycle retrieves the cycle a draw action would target
func (s *DrawServiceImpl) GetCurrentCycle(ctx context.Context) (*models.DrawCycle, error) {
	return s.peekCurrentCycle(ctx)
}

// GetCycles retrieves all cycles, newest first
func (s *DrawServiceImpl) GetCycles(ctx context.Context) ([]*models.DrawCycle, error) {
	return s.cycleRepo.FindAll(ctx)
}

// --- Helpers ---

// peekCurrentCycle resolves the cycle a draw action would target without
// writing anything. On cold start it returns an unsaved OPEN cycle for the
// current period.
func (s *DrawServiceImpl) peekCurrentCycle(ctx context.Context) (*models.DrawCycle, error) {
	open, err := s.cycleRepo.FindOpen(ctx)
	if err == nil {
		return open, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: fetching open cycle: %v", ErrUpstreamUnavailable, err)
	}

	latest, err := s.cycleRepo.FindLatest(ctx)
	if err == nil && latest.State != models.CycleStatePublished {
		return latest, nil
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: fetching latest cycle: %v", ErrUpstreamUnavailable, err)
	}

	cycle := &models.DrawCycle{
		Label:    utils.PeriodLabel(time.Now()),
		State:    models.CycleStateOpen,
		RangeMin: s.defaultRangeMin,
		RangeMax: s.defaultRangeMax,
	}
	if latest != nil {
		cycle.RolloverInCents = latest.RolloverOutCents
	}
	return cycle, nil
}

// ensureCurrentCycle resolves the current cycle, persisting the auto-created
// one on cold start so run can proceed without a provisioning step.
func (s *DrawServiceImpl) ensureCurrentCycle(ctx context.Context) (*models.DrawCycle, error) {
	cycle, err := s.peekCurrentCycle(ctx)
	if err != nil {
		return nil, err
	}
	if !cycle.ID.IsZero() {
		return cycle, nil
	}
	stored, err := s.cycleRepo.CreateOpenIfAbsent(ctx, cycle)
	if err != nil {
		return nil, fmt.Errorf("%w: creating open cycle: %v", ErrUpstreamUnavailable, err)
	}
	slog.Info("Auto-created open cycle", "cycle", stored.Label)
	return stored, nil
}

// currentTierConfig reads the admin configuration, falling back to defaults
// before one has been saved.
func (s *DrawServiceImpl) currentTierConfig(ctx context.Context) (*models.TierConfig, error) {
	config, err := s.tierConfigRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.DefaultTierConfig(), nil
		}
		return nil, fmt.Errorf("%w: fetching tier configuration: %v", ErrUpstreamUnavailable, err)
	}
	return config, nil
}

// buildWinningEntries derives the per-winner ledger records for one run,
// copying each member's standing charity election at run time.
func (s *DrawServiceImpl) buildWinningEntries(ctx context.Context, cycleID primitive.ObjectID, runID string, comp *runComputation) ([]*models.WinningEntry, error) {
	winnerIDs := make([]primitive.ObjectID, 0, len(comp.memberTiers))
	for id := range comp.memberTiers {
		winnerIDs = append(winnerIDs, id)
	}
	members, err := s.memberRepo.FindByIDs(ctx, winnerIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching winning members: %v", ErrUpstreamUnavailable, err)
	}

	entries := make([]*models.WinningEntry, 0, len(comp.memberTiers))
	for memberID, tier := range comp.memberTiers {
		var gross int64
		switch tier {
		case draw.Tier5:
			gross = comp.allocation.Tier5.PerWinnerCents
		case draw.Tier4:
			gross = comp.allocation.Tier4.PerWinnerCents
		case draw.Tier3:
			gross = comp.allocation.Tier3.PerWinnerCents
		}

		donationPercent := 0
		if member, ok := members[memberID]; ok {
			donationPercent = member.DonationPercent
		}
		donation, net := draw.SplitDonation(gross, donationPercent)

		entries = append(entries, &models.WinningEntry{
			CycleID:         cycleID,
			RunID:           runID,
			MemberID:        memberID,
			Tier:            tier,
			GrossCents:      gross,
			DonationPercent: donationPercent,
			DonationCents:   donation,
			NetCents:        net,
			Status:          models.EntryStatusPending,
		})
	}
	return entries, nil
}

func previewTier(t draw.TierAllocation) models.TierPreview {
	return models.TierPreview{
		PoolCents:      t.PoolCents,
		WinnerCount:    t.WinnerCount,
		PerWinnerCents: t.PerWinnerCents,
	}
}

func tierResult(t draw.TierAllocation) models.TierResult {
	return models.TierResult{
		PoolCents:      t.PoolCents,
		WinnerCount:    t.WinnerCount,
		PerWinnerCents: t.PerWinnerCents,
	}
}
