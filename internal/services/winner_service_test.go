package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/draw"
	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type winnerFixture struct {
	t         *testing.T
	members   *fakeMemberRepo
	cycles    *fakeCycleRepo
	entries   *fakeEntryRepo
	charities *fakeCharityRepo
	service   *WinnerServiceImpl
}

func newWinnerFixture(t *testing.T) *winnerFixture {
	f := &winnerFixture{
		t:         t,
		members:   newFakeMemberRepo(),
		cycles:    newFakeCycleRepo(),
		entries:   newFakeEntryRepo(),
		charities: newFakeCharityRepo(),
	}
	f.service = NewWinnerService(f.entries, f.cycles, f.members, f.charities)
	return f
}

// seedWinner stores a completed cycle with one winning entry for a member who
// donates half to a charity.
func (f *winnerFixture) seedWinner() (*models.DrawCycle, *models.WinningEntry) {
	charity := f.charities.add("Greenside Trust")
	member := &models.Member{
		FirstName:       "Pat",
		LastName:        "Links",
		Email:           "pat@example.com",
		Status:          models.MemberStatusActive,
		Subscription:    models.SubscriptionPaid,
		CharityID:       charity.ID,
		DonationPercent: 50,
	}
	require.NoError(f.t, f.members.Create(context.Background(), member))

	cycle := &models.DrawCycle{
		Label:        "2026-08",
		State:        models.CycleStateCompleted,
		WinningRunID: "run-1",
	}
	require.NoError(f.t, f.cycles.Create(context.Background(), cycle))

	entry := &models.WinningEntry{
		CycleID:         cycle.ID,
		RunID:           "run-1",
		MemberID:        member.ID,
		Tier:            draw.Tier5,
		GrossCents:      200000,
		DonationPercent: 50,
		DonationCents:   100000,
		NetCents:        100000,
		Status:          models.EntryStatusPending,
	}
	require.NoError(f.t, f.entries.CreateMany(context.Background(), []*models.WinningEntry{entry}))
	return cycle, entry
}

func TestGetWinnersBeforeAnyRun(t *testing.T) {
	f := newWinnerFixture(t)
	cycle := &models.DrawCycle{Label: "2026-08", State: models.CycleStateOpen}
	require.NoError(t, f.cycles.Create(context.Background(), cycle))

	winners, err := f.service.GetWinnersByCycleID(context.Background(), cycle.ID)
	require.NoError(t, err)
	assert.Empty(t, winners)
}

func TestGetWinnersIgnoresStaleRuns(t *testing.T) {
	f := newWinnerFixture(t)
	cycle, _ := f.seedWinner()

	stale := &models.WinningEntry{
		CycleID:  cycle.ID,
		RunID:    "run-0",
		MemberID: primitive.NewObjectID(),
		Tier:     draw.Tier3,
		Status:   models.EntryStatusPending,
	}
	require.NoError(t, f.entries.CreateMany(context.Background(), []*models.WinningEntry{stale}))

	winners, err := f.service.GetWinnersByCycleID(context.Background(), cycle.ID)
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, "run-1", winners[0].RunID)
}

func TestVerifyThenPayWinner(t *testing.T) {
	f := newWinnerFixture(t)
	_, entry := f.seedWinner()

	verified, err := f.service.VerifyWinner(context.Background(), entry.ID, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.EntryStatusVerified, verified.Status)
	assert.Equal(t, "ops@example.com", verified.VerifiedBy)

	paid, err := f.service.MarkPaid(context.Background(), entry.ID, "ops@example.com", "BANK-42")
	require.NoError(t, err)
	assert.Equal(t, models.EntryStatusPaid, paid.Status)
	assert.Equal(t, "BANK-42", paid.PaymentReference)

	// The stored entry reflects the transitions.
	stored, err := f.entries.FindByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntryStatusPaid, stored.Status)
}

func TestPayWithoutReferenceRecordsManualPayment(t *testing.T) {
	f := newWinnerFixture(t)
	_, entry := f.seedWinner()

	paid, err := f.service.MarkPaid(context.Background(), entry.ID, "ops@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, models.ManualPaymentReference, paid.PaymentReference)
}

func TestDoublePayRejected(t *testing.T) {
	f := newWinnerFixture(t)
	_, entry := f.seedWinner()

	_, err := f.service.MarkPaid(context.Background(), entry.ID, "ops@example.com", "BANK-1")
	require.NoError(t, err)

	_, err = f.service.MarkPaid(context.Background(), entry.ID, "ops@example.com", "BANK-2")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	stored, err := f.entries.FindByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "BANK-1", stored.PaymentReference)
}

func TestExportWinnersCSV(t *testing.T) {
	f := newWinnerFixture(t)
	cycle, _ := f.seedWinner()

	data, err := f.service.ExportWinnersCSV(context.Background(), cycle.ID)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, []string{
		"Pat Links", "pat@example.com", "5", "2000.00",
		"Greenside Trust", "1000.00", "1000.00", "PENDING", "",
	}, records[1])
}

func TestExportWinnersXLSX(t *testing.T) {
	f := newWinnerFixture(t)
	cycle, _ := f.seedWinner()

	data, err := f.service.ExportWinnersXLSX(context.Background(), cycle.ID)
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	sheet := book.GetSheetName(0)
	header, err := book.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Member Name", header)

	name, err := book.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Pat Links", name)

	gross, err := book.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "2000.00", gross)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00", formatCents(0))
	assert.Equal(t, "0.07", formatCents(7))
	assert.Equal(t, "123.45", formatCents(12345))
	assert.Equal(t, "-2.50", formatCents(-250))
}

func TestVerifyTimestamps(t *testing.T) {
	f := newWinnerFixture(t)
	_, entry := f.seedWinner()

	before := time.Now()
	verified, err := f.service.VerifyWinner(context.Background(), entry.ID, "ops@example.com")
	require.NoError(t, err)
	assert.False(t, verified.VerifiedAt.Before(before))
}
