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

// WinningEntryRepository implements the repositories.WinningEntryRepository interface
type WinningEntryRepository struct {
	collection *mongo.Collection
}

// NewWinningEntryRepository creates a new WinningEntryRepository
func NewWinningEntryRepository(db *mongo.Database) repositories.WinningEntryRepository {
	return &WinningEntryRepository{
		collection: db.Collection("winning_entries"),
	}
}

// CreateMany inserts all winning entries of one run
func (r *WinningEntryRepository) CreateMany(ctx context.Context, entries []*models.WinningEntry) error {
	if len(entries) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		entry.CreatedAt = now
		entry.UpdatedAt = now
		docs[i] = entry
	}
	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, id := range res.InsertedIDs {
		entries[i].ID = id.(primitive.ObjectID)
	}
	return nil
}

// FindByID finds a winning entry by ID
func (r *WinningEntryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WinningEntry, error) {
	var entry models.WinningEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByCycleAndRun returns the entries a given run produced for a cycle,
// highest tier first then by member for stable export ordering.
func (r *WinningEntryRepository) FindByCycleAndRun(ctx context.Context, cycleID primitive.ObjectID, runID string) ([]*models.WinningEntry, error) {
	filter := bson.M{"cycleId": cycleID, "runId": runID}
	opts := options.Find().SetSort(bson.D{{Key: "tier", Value: -1}, {Key: "memberId", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.WinningEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.WinningEntry{}
	}
	return entries, nil
}

// DeleteStaleRuns discards entries from superseded unpublished runs
func (r *WinningEntryRepository) DeleteStaleRuns(ctx context.Context, cycleID primitive.ObjectID, keepRunID string) error {
	filter := bson.M{"cycleId": cycleID, "runId": bson.M{"$ne": keepRunID}}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}

// DeleteByRun removes the entries a single run produced
func (r *WinningEntryRepository) DeleteByRun(ctx context.Context, cycleID primitive.ObjectID, runID string) error {
	filter := bson.M{"cycleId": cycleID, "runId": runID}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}

// Update updates a winning entry
func (r *WinningEntryRepository) Update(ctx context.Context, entry *models.WinningEntry) error {
	entry.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry)
	return err
}
