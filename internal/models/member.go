package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberStatus represents a member account's standing
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "ACTIVE"
	MemberStatusSuspended MemberStatus = "SUSPENDED"
)

// SubscriptionStatus mirrors the billing collaborator's view of a member
type SubscriptionStatus string

const (
	SubscriptionPaid     SubscriptionStatus = "PAID"
	SubscriptionTrialing SubscriptionStatus = "TRIALING"
	SubscriptionLapsed   SubscriptionStatus = "LAPSED"
)

// Member represents a club member who submits scores and may win prizes
type Member struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName       string             `bson:"firstName" json:"firstName"`
	LastName        string             `bson:"lastName" json:"lastName"`
	Email           string             `bson:"email" json:"email"`
	Status          MemberStatus       `bson:"status" json:"status"`
	Subscription    SubscriptionStatus `bson:"subscription" json:"subscription"`
	CharityID       primitive.ObjectID `bson:"charityId,omitempty" json:"charityId,omitempty"`
	DonationPercent int                `bson:"donationPercent" json:"donationPercent"` // standing election, 0-100
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsEligible reports whether the member counts toward the prize pool and may
// win: active, non-suspended, holding a current paid or trialing subscription.
func (m *Member) IsEligible() bool {
	if m.Status != MemberStatusActive {
		return false
	}
	return m.Subscription == SubscriptionPaid || m.Subscription == SubscriptionTrialing
}

// FullName returns the member's display name for exports
func (m *Member) FullName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
