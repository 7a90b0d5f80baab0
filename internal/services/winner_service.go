package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/fairwaydraw/draw-backend/internal/repositories"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure WinnerServiceImpl implements WinnerService
var _ WinnerService = (*WinnerServiceImpl)(nil)

// exportHeader is the column layout shared by the CSV and spreadsheet
// exports, feeding the downstream reporting collaborator.
var exportHeader = []string{
	"Member Name", "Email", "Match Tier", "Gross Prize",
	"Charity", "Donation", "Net Payout", "Status", "Payment Reference",
}

// WinnerServiceImpl manages the verification/payout ledger and the winners
// export. Ledger transitions are independent of the cycle's own state.
type WinnerServiceImpl struct {
	entryRepo   repositories.WinningEntryRepository
	cycleRepo   repositories.DrawCycleRepository
	memberRepo  repositories.MemberRepository
	charityRepo repositories.CharityRepository
}

// NewWinnerService creates a new WinnerServiceImpl
func NewWinnerService(
	entryRepo repositories.WinningEntryRepository,
	cycleRepo repositories.DrawCycleRepository,
	memberRepo repositories.MemberRepository,
	charityRepo repositories.CharityRepository,
) *WinnerServiceImpl {
	return &WinnerServiceImpl{
		entryRepo:   entryRepo,
		cycleRepo:   cycleRepo,
		memberRepo:  memberRepo,
		charityRepo: charityRepo,
	}
}

// GetWinnersByCycleID returns the winning entries of the cycle's current run
func (s *WinnerServiceImpl) GetWinnersByCycleID(ctx context.Context, cycleID primitive.ObjectID) ([]*models.WinningEntry, error) {
	cycle, err := s.cycleRepo.FindByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if cycle.WinningRunID == "" {
		return []*models.WinningEntry{}, nil
	}
	return s.entryRepo.FindByCycleAndRun(ctx, cycleID, cycle.WinningRunID)
}

// VerifyWinner advances one entry from PENDING to VERIFIED
func (s *WinnerServiceImpl) VerifyWinner(ctx context.Context, entryID primitive.ObjectID, operator string) (*models.WinningEntry, error) {
	entry, err := s.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := entry.Verify(operator, time.Now()); err != nil {
		return nil, err
	}
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: saving verification: %v", ErrUpstreamUnavailable, err)
	}
	slog.Info("Winning entry verified", "entryId", entry.ID.Hex(), "operator", operator)
	return entry, nil
}

// MarkPaid advances one entry to its terminal PAID state, recording the
// payment reference. Verification may be skipped.
func (s *WinnerServiceImpl) MarkPaid(ctx context.Context, entryID primitive.ObjectID, operator, reference string) (*models.WinningEntry, error) {
	entry, err := s.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := entry.MarkPaid(operator, reference, time.Now()); err != nil {
		return nil, err
	}
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: saving payment: %v", ErrUpstreamUnavailable, err)
	}
	slog.Info("Winning entry paid",
		"entryId", entry.ID.Hex(),
		"operator", operator,
		"reference", entry.PaymentReference,
		"netCents", entry.NetCents)
	return entry, nil
}

// ExportWinnersCSV renders the cycle's winners as delimited text
func (s *WinnerServiceImpl) ExportWinnersCSV(ctx context.Context, cycleID primitive.ObjectID) ([]byte, error) {
	rows, err := s.exportRows(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportWinnersXLSX renders the cycle's winners as a spreadsheet
func (s *WinnerServiceImpl) ExportWinnersXLSX(ctx context.Context, cycleID primitive.ObjectID) ([]byte, error) {
	rows, err := s.exportRows(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportRows assembles the tabular winner rows with member and charity
// details resolved.
func (s *WinnerServiceImpl) exportRows(ctx context.Context, cycleID primitive.ObjectID) ([][]string, error) {
	entries, err := s.GetWinnersByCycleID(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]primitive.ObjectID, 0, len(entries))
	for _, entry := range entries {
		memberIDs = append(memberIDs, entry.MemberID)
	}
	members, err := s.memberRepo.FindByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching members for export: %v", ErrUpstreamUnavailable, err)
	}

	charityIDs := make([]primitive.ObjectID, 0, len(members))
	for _, member := range members {
		if !member.CharityID.IsZero() {
			charityIDs = append(charityIDs, member.CharityID)
		}
	}
	charities, err := s.charityRepo.FindByIDs(ctx, charityIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching charities for export: %v", ErrUpstreamUnavailable, err)
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		name, email, charityName := "", "", ""
		if member, ok := members[entry.MemberID]; ok {
			name = member.FullName()
			email = member.Email
			if charity, ok := charities[member.CharityID]; ok {
				charityName = charity.Name
			}
		}
		rows = append(rows, []string{
			name,
			email,
			strconv.Itoa(entry.Tier),
			formatCents(entry.GrossCents),
			charityName,
			formatCents(entry.DonationCents),
			formatCents(entry.NetCents),
			string(entry.Status),
			entry.PaymentReference,
		})
	}
	return rows, nil
}

// formatCents renders integer cents as a decimal amount, e.g. 12345 -> "123.45"
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
