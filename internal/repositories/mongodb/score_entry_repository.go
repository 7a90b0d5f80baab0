package mongodb

import (
	"context"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScoreEntryRepository implements the repositories.ScoreEntryRepository interface
type ScoreEntryRepository struct {
	collection *mongo.Collection
}

// NewScoreEntryRepository creates a new ScoreEntryRepository
func NewScoreEntryRepository(db *mongo.Database) repositories.ScoreEntryRepository {
	return &ScoreEntryRepository{
		collection: db.Collection("score_entries"),
	}
}

// Create inserts the entry and supersedes any live entry sharing its member
// and value. Entries are never mutated in place beyond the supersede stamp.
func (r *ScoreEntryRepository) Create(ctx context.Context, entry *models.ScoreEntry) error {
	now := time.Now()

	supersedeFilter := bson.M{
		"memberId":     entry.MemberID,
		"value":        entry.Value,
		"supersededAt": bson.M{"$exists": false},
	}
	_, err := r.collection.UpdateMany(ctx, supersedeFilter, bson.M{"$set": bson.M{"supersededAt": now}})
	if err != nil {
		return err
	}

	entry.CreatedAt = now
	if entry.EnteredAt.IsZero() {
		entry.EnteredAt = now
	}
	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	entry.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindCurrentBefore returns all live entries entered before the cutoff,
// newest first, across all members.
func (r *ScoreEntryRepository) FindCurrentBefore(ctx context.Context, cutoff time.Time) ([]*models.ScoreEntry, error) {
	filter := bson.M{
		"enteredAt": bson.M{"$lt": cutoff},
		"$or": []bson.M{
			{"supersededAt": bson.M{"$exists": false}},
			{"supersededAt": bson.M{"$gte": cutoff}},
		},
	}
	opts := options.Find().SetSort(bson.M{"enteredAt": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.ScoreEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.ScoreEntry{}
	}
	return entries, nil
}

// FindCurrentByMember returns a member's live entries, newest first
func (r *ScoreEntryRepository) FindCurrentByMember(ctx context.Context, memberID primitive.ObjectID) ([]*models.ScoreEntry, error) {
	filter := bson.M{
		"memberId":     memberID,
		"supersededAt": bson.M{"$exists": false},
	}
	opts := options.Find().SetSort(bson.M{"enteredAt": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.ScoreEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.ScoreEntry{}
	}
	return entries, nil
}
