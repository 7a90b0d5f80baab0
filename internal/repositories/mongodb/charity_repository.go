package mongodb

import (
	"context"
	"errors"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CharityRepository implements the repositories.CharityRepository interface
type CharityRepository struct {
	collection *mongo.Collection
}

// NewCharityRepository creates a new CharityRepository
func NewCharityRepository(db *mongo.Database) repositories.CharityRepository {
	return &CharityRepository{
		collection: db.Collection("charities"),
	}
}

// FindByID finds a charity by ID
func (r *CharityRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Charity, error) {
	var charity models.Charity
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&charity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &charity, nil
}

// FindByIDs finds charities by their IDs and returns them keyed by ID
func (r *CharityRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Charity, error) {
	charities := make(map[primitive.ObjectID]*models.Charity, len(ids))
	if len(ids) == 0 {
		return charities, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var charity models.Charity
		if err := cursor.Decode(&charity); err != nil {
			return nil, err
		}
		c := charity
		charities[c.ID] = &c
	}
	return charities, cursor.Err()
}

// FindAll returns the whole charity directory, alphabetical
func (r *CharityRepository) FindAll(ctx context.Context) ([]*models.Charity, error) {
	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var charities []*models.Charity
	if err := cursor.All(ctx, &charities); err != nil {
		return nil, err
	}
	if charities == nil {
		charities = []*models.Charity{}
	}
	return charities, nil
}
