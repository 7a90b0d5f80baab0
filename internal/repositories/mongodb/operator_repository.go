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
)

// OperatorRepository implements the repositories.OperatorRepository interface
type OperatorRepository struct {
	collection *mongo.Collection
}

// NewOperatorRepository creates a new OperatorRepository
func NewOperatorRepository(db *mongo.Database) repositories.OperatorRepository {
	return &OperatorRepository{
		collection: db.Collection("operators"),
	}
}

// Create creates a new operator account
func (r *OperatorRepository) Create(ctx context.Context, operator *models.Operator) error {
	operator.CreatedAt = time.Now()
	operator.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, operator)
	if err != nil {
		return err
	}
	operator.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByEmail finds an operator by email
func (r *OperatorRepository) FindByEmail(ctx context.Context, email string) (*models.Operator, error) {
	var operator models.Operator
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&operator)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &operator, nil
}

// FindByID finds an operator by ID
func (r *OperatorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Operator, error) {
	var operator models.Operator
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&operator)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &operator, nil
}
