package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DrawCycleRepository implements the repositories.DrawCycleRepository interface
type DrawCycleRepository struct {
	collection *mongo.Collection
}

// NewDrawCycleRepository creates a new DrawCycleRepository
func NewDrawCycleRepository(db *mongo.Database) repositories.DrawCycleRepository {
	return &DrawCycleRepository{
		collection: db.Collection("draw_cycles"),
	}
}

// Create creates a new draw cycle
func (r *DrawCycleRepository) Create(ctx context.Context, cycle *models.DrawCycle) error {
	cycle.CreatedAt = time.Now()
	cycle.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, cycle)
	if err != nil {
		return err
	}
	cycle.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a cycle by ID
func (r *DrawCycleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DrawCycle, error) {
	var cycle models.DrawCycle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cycle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &cycle, nil
}

// FindByLabel finds a cycle by its period label
func (r *DrawCycleRepository) FindByLabel(ctx context.Context, label string) (*models.DrawCycle, error) {
	var cycle models.DrawCycle
	err := r.collection.FindOne(ctx, bson.M{"label": label}).Decode(&cycle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &cycle, nil
}

// FindLatest finds the most recently created cycle
func (r *DrawCycleRepository) FindLatest(ctx context.Context) (*models.DrawCycle, error) {
	opts := options.FindOne().SetSort(bson.M{"label": -1})
	var cycle models.DrawCycle
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&cycle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &cycle, nil
}

// FindOpen finds the single cycle currently accepting entries
func (r *DrawCycleRepository) FindOpen(ctx context.Context) (*models.DrawCycle, error) {
	var cycle models.DrawCycle
	err := r.collection.FindOne(ctx, bson.M{"state": models.CycleStateOpen}).Decode(&cycle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &cycle, nil
}

// FindAll returns all cycles, newest period first
func (r *DrawCycleRepository) FindAll(ctx context.Context) ([]*models.DrawCycle, error) {
	opts := options.Find().SetSort(bson.M{"label": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cycles []*models.DrawCycle
	if err := cursor.All(ctx, &cycles); err != nil {
		return nil, err
	}
	if cycles == nil {
		cycles = []*models.DrawCycle{}
	}
	return cycles, nil
}

// UpdateWithVersion applies the cycle only if its stored version is still
// expectedVersion. The single-writer discipline for run/publish rests on
// this check: a concurrent action bumps the version and the stale write
// matches nothing.
func (r *DrawCycleRepository) UpdateWithVersion(ctx context.Context, cycle *models.DrawCycle, expectedVersion int64) error {
	cycle.UpdatedAt = time.Now()
	cycle.Version = expectedVersion + 1

	filter := bson.M{"_id": cycle.ID, "version": expectedVersion}
	res, err := r.collection.ReplaceOne(ctx, filter, cycle)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrVersionConflict
	}
	return nil
}

// CreateOpenIfAbsent inserts an OPEN cycle keyed on its unique label. A
// concurrent insert for the same label is absorbed: the stored cycle is
// returned either way, so a racing duplicate publish cannot open two cycles.
func (r *DrawCycleRepository) CreateOpenIfAbsent(ctx context.Context, cycle *models.DrawCycle) (*models.DrawCycle, error) {
	now := time.Now()
	filter := bson.M{"label": cycle.Label}
	update := bson.M{
		"$setOnInsert": bson.M{
			"label":           cycle.Label,
			"state":           models.CycleStateOpen,
			"version":         int64(0),
			"rangeMin":        cycle.RangeMin,
			"rangeMax":        cycle.RangeMax,
			"rolloverInCents": cycle.RolloverInCents,
			"createdAt":       now,
			"updatedAt":       now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.DrawCycle
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}
