package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScoreEntry is one submitted score value belonging to a member. Entries are
// never mutated: a later submission sharing a value supersedes the earlier
// one, and a cycle freezes whatever is current at its cutoff.
type ScoreEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	MemberID     primitive.ObjectID `bson:"memberId" json:"memberId"`
	Value        int                `bson:"value" json:"value"`
	Source       string             `bson:"source,omitempty" json:"source,omitempty"` // optional provenance label
	EnteredAt    time.Time          `bson:"enteredAt" json:"enteredAt"`
	SupersededAt time.Time          `bson:"supersededAt,omitempty" json:"supersededAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Superseded reports whether a later entry has replaced this one.
func (e *ScoreEntry) Superseded() bool {
	return !e.SupersededAt.IsZero()
}
