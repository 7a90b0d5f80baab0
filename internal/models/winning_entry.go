package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntryStatus represents the verification/payout state of a winning entry
type EntryStatus string

const (
	EntryStatusPending  EntryStatus = "PENDING"
	EntryStatusVerified EntryStatus = "VERIFIED"
	EntryStatusPaid     EntryStatus = "PAID"
)

// ManualPaymentReference is recorded when the operator supplies no reference.
const ManualPaymentReference = "MANUAL PAYMENT"

// WinningEntry is one member's qualifying result in one cycle, tracked
// through verification and payout. Entries are created when a run completes
// and are replaced wholesale if the cycle is re-run before publication;
// RunID ties each entry to the run that produced it.
type WinningEntry struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CycleID          primitive.ObjectID `bson:"cycleId" json:"cycleId"`
	RunID            string             `bson:"runId" json:"runId"`
	MemberID         primitive.ObjectID `bson:"memberId" json:"memberId"`
	Tier             int                `bson:"tier" json:"tier"` // 3, 4 or 5
	GrossCents       int64              `bson:"grossCents" json:"grossCents"`
	DonationPercent  int                `bson:"donationPercent" json:"donationPercent"`
	DonationCents    int64              `bson:"donationCents" json:"donationCents"`
	NetCents         int64              `bson:"netCents" json:"netCents"`
	Status           EntryStatus        `bson:"status" json:"status"`
	VerifiedBy       string             `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	VerifiedAt       time.Time          `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	PaidBy           string             `bson:"paidBy,omitempty" json:"paidBy,omitempty"`
	PaidAt           time.Time          `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	PaymentReference string             `bson:"paymentReference,omitempty" json:"paymentReference,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Verify advances the entry from PENDING to VERIFIED. Any other starting
// state is rejected.
func (w *WinningEntry) Verify(operator string, now time.Time) error {
	if w.Status != EntryStatusPending {
		return fmt.Errorf("%w: cannot verify entry in status %s", ErrInvalidTransition, w.Status)
	}
	w.Status = EntryStatusVerified
	w.VerifiedBy = operator
	w.VerifiedAt = now
	return nil
}

// MarkPaid advances the entry to its terminal PAID state. Verification may be
// skipped: PENDING -> PAID is permitted. An empty reference is recorded as
// ManualPaymentReference.
func (w *WinningEntry) MarkPaid(operator, reference string, now time.Time) error {
	if w.Status == EntryStatusPaid {
		return fmt.Errorf("%w: entry is already paid", ErrInvalidTransition)
	}
	if reference == "" {
		reference = ManualPaymentReference
	}
	w.Status = EntryStatusPaid
	w.PaidBy = operator
	w.PaidAt = now
	w.PaymentReference = reference
	return nil
}
