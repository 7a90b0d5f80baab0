package services

import (
	"context"
	"sort"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the persistence semantics the
// services rely on: ErrNotFound on misses, version-checked cycle updates,
// label-keyed open-cycle upserts and supersede-on-duplicate score writes.

type fakeMemberRepo struct {
	members map[primitive.ObjectID]*models.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[primitive.ObjectID]*models.Member)}
}

func (r *fakeMemberRepo) Create(ctx context.Context, member *models.Member) error {
	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
	}
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return member, nil
}

func (r *fakeMemberRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Member, error) {
	found := make(map[primitive.ObjectID]*models.Member)
	for _, id := range ids {
		if member, ok := r.members[id]; ok {
			found[id] = member
		}
	}
	return found, nil
}

func (r *fakeMemberRepo) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	for _, member := range r.members {
		if member.Email == email {
			return member, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeMemberRepo) CountEligible(ctx context.Context) (int64, error) {
	var count int64
	for _, member := range r.members {
		if member.IsEligible() {
			count++
		}
	}
	return count, nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, member *models.Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.members[member.ID] = member
	return nil
}

type fakeScoreRepo struct {
	entries []*models.ScoreEntry
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{}
}

func (r *fakeScoreRepo) Create(ctx context.Context, entry *models.ScoreEntry) error {
	for _, existing := range r.entries {
		if existing.MemberID == entry.MemberID && existing.Value == entry.Value && !existing.Superseded() {
			existing.SupersededAt = entry.EnteredAt
		}
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeScoreRepo) FindCurrentBefore(ctx context.Context, cutoff time.Time) ([]*models.ScoreEntry, error) {
	var current []*models.ScoreEntry
	for _, entry := range r.entries {
		if !entry.EnteredAt.Before(cutoff) {
			continue
		}
		if entry.Superseded() && entry.SupersededAt.Before(cutoff) {
			continue
		}
		current = append(current, entry)
	}
	sort.Slice(current, func(i, j int) bool {
		return current[i].EnteredAt.After(current[j].EnteredAt)
	})
	return current, nil
}

func (r *fakeScoreRepo) FindCurrentByMember(ctx context.Context, memberID primitive.ObjectID) ([]*models.ScoreEntry, error) {
	var current []*models.ScoreEntry
	for _, entry := range r.entries {
		if entry.MemberID == memberID && !entry.Superseded() {
			current = append(current, entry)
		}
	}
	sort.Slice(current, func(i, j int) bool {
		return current[i].EnteredAt.After(current[j].EnteredAt)
	})
	return current, nil
}

type fakeCycleRepo struct {
	cycles map[primitive.ObjectID]*models.DrawCycle

	// beforeVersionedUpdate, when set, runs just before the version check so
	// tests can interleave a competing write.
	beforeVersionedUpdate func()
}

func newFakeCycleRepo() *fakeCycleRepo {
	return &fakeCycleRepo{cycles: make(map[primitive.ObjectID]*models.DrawCycle)}
}

func (r *fakeCycleRepo) Create(ctx context.Context, cycle *models.DrawCycle) error {
	if cycle.ID.IsZero() {
		cycle.ID = primitive.NewObjectID()
	}
	cycle.CreatedAt = time.Now()
	cycle.UpdatedAt = time.Now()
	stored := *cycle
	r.cycles[cycle.ID] = &stored
	return nil
}

func (r *fakeCycleRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DrawCycle, error) {
	stored, ok := r.cycles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cycle := *stored
	return &cycle, nil
}

func (r *fakeCycleRepo) FindByLabel(ctx context.Context, label string) (*models.DrawCycle, error) {
	for _, stored := range r.cycles {
		if stored.Label == label {
			cycle := *stored
			return &cycle, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCycleRepo) FindLatest(ctx context.Context) (*models.DrawCycle, error) {
	all, _ := r.FindAll(ctx)
	if len(all) == 0 {
		return nil, repositories.ErrNotFound
	}
	return all[0], nil
}

func (r *fakeCycleRepo) FindOpen(ctx context.Context) (*models.DrawCycle, error) {
	for _, stored := range r.cycles {
		if stored.State == models.CycleStateOpen {
			cycle := *stored
			return &cycle, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCycleRepo) FindAll(ctx context.Context) ([]*models.DrawCycle, error) {
	all := make([]*models.DrawCycle, 0, len(r.cycles))
	for _, stored := range r.cycles {
		cycle := *stored
		all = append(all, &cycle)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Label > all[j].Label })
	return all, nil
}

func (r *fakeCycleRepo) UpdateWithVersion(ctx context.Context, cycle *models.DrawCycle, expectedVersion int64) error {
	if r.beforeVersionedUpdate != nil {
		hook := r.beforeVersionedUpdate
		r.beforeVersionedUpdate = nil
		hook()
	}
	stored, ok := r.cycles[cycle.ID]
	if !ok || stored.Version != expectedVersion {
		return repositories.ErrVersionConflict
	}
	cycle.UpdatedAt = time.Now()
	cycle.Version = expectedVersion + 1
	replaced := *cycle
	r.cycles[cycle.ID] = &replaced
	return nil
}

func (r *fakeCycleRepo) CreateOpenIfAbsent(ctx context.Context, cycle *models.DrawCycle) (*models.DrawCycle, error) {
	if existing, err := r.FindByLabel(ctx, cycle.Label); err == nil {
		return existing, nil
	}
	stored := &models.DrawCycle{
		ID:              primitive.NewObjectID(),
		Label:           cycle.Label,
		State:           models.CycleStateOpen,
		RangeMin:        cycle.RangeMin,
		RangeMax:        cycle.RangeMax,
		RolloverInCents: cycle.RolloverInCents,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	r.cycles[stored.ID] = stored
	result := *stored
	return &result, nil
}

type fakeEntryRepo struct {
	entries []*models.WinningEntry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{}
}

func (r *fakeEntryRepo) CreateMany(ctx context.Context, entries []*models.WinningEntry) error {
	for _, entry := range entries {
		if entry.ID.IsZero() {
			entry.ID = primitive.NewObjectID()
		}
		entry.CreatedAt = time.Now()
		entry.UpdatedAt = time.Now()
		r.entries = append(r.entries, entry)
	}
	return nil
}

func (r *fakeEntryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WinningEntry, error) {
	for _, entry := range r.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeEntryRepo) FindByCycleAndRun(ctx context.Context, cycleID primitive.ObjectID, runID string) ([]*models.WinningEntry, error) {
	var found []*models.WinningEntry
	for _, entry := range r.entries {
		if entry.CycleID == cycleID && entry.RunID == runID {
			found = append(found, entry)
		}
	}
	return found, nil
}

func (r *fakeEntryRepo) DeleteStaleRuns(ctx context.Context, cycleID primitive.ObjectID, keepRunID string) error {
	var kept []*models.WinningEntry
	for _, entry := range r.entries {
		if entry.CycleID == cycleID && entry.RunID != keepRunID {
			continue
		}
		kept = append(kept, entry)
	}
	r.entries = kept
	return nil
}

func (r *fakeEntryRepo) DeleteByRun(ctx context.Context, cycleID primitive.ObjectID, runID string) error {
	var kept []*models.WinningEntry
	for _, entry := range r.entries {
		if entry.CycleID == cycleID && entry.RunID == runID {
			continue
		}
		kept = append(kept, entry)
	}
	r.entries = kept
	return nil
}

func (r *fakeEntryRepo) Update(ctx context.Context, entry *models.WinningEntry) error {
	for i, existing := range r.entries {
		if existing.ID == entry.ID {
			entry.UpdatedAt = time.Now()
			r.entries[i] = entry
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeTierConfigRepo struct {
	config *models.TierConfig
}

func newFakeTierConfigRepo() *fakeTierConfigRepo {
	return &fakeTierConfigRepo{}
}

func (r *fakeTierConfigRepo) Get(ctx context.Context) (*models.TierConfig, error) {
	if r.config == nil {
		return nil, repositories.ErrNotFound
	}
	config := *r.config
	return &config, nil
}

func (r *fakeTierConfigRepo) Upsert(ctx context.Context, config *models.TierConfig) error {
	config.Version++
	config.UpdatedAt = time.Now()
	stored := *config
	r.config = &stored
	return nil
}

type fakeCharityRepo struct {
	charities map[primitive.ObjectID]*models.Charity
}

func newFakeCharityRepo() *fakeCharityRepo {
	return &fakeCharityRepo{charities: make(map[primitive.ObjectID]*models.Charity)}
}

func (r *fakeCharityRepo) add(name string) *models.Charity {
	charity := &models.Charity{ID: primitive.NewObjectID(), Name: name}
	r.charities[charity.ID] = charity
	return charity
}

func (r *fakeCharityRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Charity, error) {
	charity, ok := r.charities[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return charity, nil
}

func (r *fakeCharityRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Charity, error) {
	found := make(map[primitive.ObjectID]*models.Charity)
	for _, id := range ids {
		if charity, ok := r.charities[id]; ok {
			found[id] = charity
		}
	}
	return found, nil
}

func (r *fakeCharityRepo) FindAll(ctx context.Context) ([]*models.Charity, error) {
	all := make([]*models.Charity, 0, len(r.charities))
	for _, charity := range r.charities {
		all = append(all, charity)
	}
	return all, nil
}

type fakeOperatorRepo struct {
	operators map[primitive.ObjectID]*models.Operator
}

func newFakeOperatorRepo() *fakeOperatorRepo {
	return &fakeOperatorRepo{operators: make(map[primitive.ObjectID]*models.Operator)}
}

func (r *fakeOperatorRepo) Create(ctx context.Context, operator *models.Operator) error {
	if operator.ID.IsZero() {
		operator.ID = primitive.NewObjectID()
	}
	stored := *operator
	r.operators[operator.ID] = &stored
	return nil
}

func (r *fakeOperatorRepo) FindByEmail(ctx context.Context, email string) (*models.Operator, error) {
	for _, operator := range r.operators {
		if operator.Email == email {
			stored := *operator
			return &stored, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeOperatorRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Operator, error) {
	operator, ok := r.operators[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	stored := *operator
	return &stored, nil
}
