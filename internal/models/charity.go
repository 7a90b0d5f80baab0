package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Charity is an entry in the charity directory members may elect to support
type Charity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Number    string             `bson:"number,omitempty" json:"number,omitempty"` // registered charity number
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
