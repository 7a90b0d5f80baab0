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

// MemberRepository implements the repositories.MemberRepository interface
type MemberRepository struct {
	collection *mongo.Collection
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *mongo.Database) repositories.MemberRepository {
	return &MemberRepository{
		collection: db.Collection("members"),
	}
}

// Create creates a new member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		return err
	}
	member.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a member by ID
func (r *MemberRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	var member models.Member
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// FindByIDs finds members by their IDs and returns them keyed by ID
func (r *MemberRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Member, error) {
	members := make(map[primitive.ObjectID]*models.Member, len(ids))
	if len(ids) == 0 {
		return members, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var member models.Member
		if err := cursor.Decode(&member); err != nil {
			return nil, err
		}
		m := member
		members[m.ID] = &m
	}
	return members, cursor.Err()
}

// FindByEmail finds a member by email
func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// CountEligible counts members in good standing: active and holding a paid
// or trialing subscription. This count funds the prize pool.
func (r *MemberRepository) CountEligible(ctx context.Context) (int64, error) {
	filter := bson.M{
		"status": models.MemberStatusActive,
		"subscription": bson.M{
			"$in": []models.SubscriptionStatus{models.SubscriptionPaid, models.SubscriptionTrialing},
		},
	}
	return r.collection.CountDocuments(ctx, filter)
}

// Update updates a member
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": member.ID}, member)
	return err
}
