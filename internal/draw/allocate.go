package draw

import "fmt"

// AllocationInput carries everything the allocator needs; all money is
// integer cents so conservation can be checked exactly.
type AllocationInput struct {
	EligibleCount     int
	ContributionCents int64
	Tier5Percent      int
	Tier4Percent      int
	Tier3Percent      int
	RolloverInCents   int64
	JackpotCapCents   int64 // 0 means uncapped
	Winners           TierCounts
}

// TierAllocation is the computed outcome for one tier.
type TierAllocation struct {
	PoolCents      int64
	WinnerCount    int
	PerWinnerCents int64
	PaidOutCents   int64
}

// Allocation is the full result of one prize pool split. The invariant
//
//	BasePoolCents + RolloverInCents == total paid out + RolloverOutCents
//
// holds exactly for every input; nothing is created or destroyed.
type Allocation struct {
	BasePoolCents    int64
	RolloverInCents  int64
	Tier5            TierAllocation
	Tier4            TierAllocation
	Tier3            TierAllocation
	RolloverOutCents int64
}

// Allocate splits the distributable pool across the match tiers.
//
// Base pool = eligible subscribers × contribution. Tier 5 and tier 4 pools
// are floored percentage shares; tier 3 takes the exact remainder so the
// three shares always sum to the base pool. The incoming rollover joins the
// tier-5 pool before division. Per-winner payouts round down, with each
// tier's division remainder carried into the outgoing rollover. A winnerless
// tier rolls its whole pool forward; for tier 5 the rolled amount is capped
// at the jackpot cap and the excess is split evenly between the tier-3 and
// tier-4 pools before their division (odd cent to tier 3).
func Allocate(in AllocationInput) (*Allocation, error) {
	if in.Tier5Percent+in.Tier4Percent+in.Tier3Percent != 100 {
		return nil, fmt.Errorf("%w: got %d/%d/%d", ErrBadTierSplit,
			in.Tier5Percent, in.Tier4Percent, in.Tier3Percent)
	}
	if in.EligibleCount < 0 || in.ContributionCents < 0 || in.RolloverInCents < 0 {
		return nil, fmt.Errorf("allocation inputs must be non-negative")
	}

	base := int64(in.EligibleCount) * in.ContributionCents
	share5 := base * int64(in.Tier5Percent) / 100
	share4 := base * int64(in.Tier4Percent) / 100
	share3 := base - share5 - share4

	alloc := &Allocation{
		BasePoolCents:   base,
		RolloverInCents: in.RolloverInCents,
	}

	pool5 := share5 + in.RolloverInCents
	pool4 := share4
	pool3 := share3

	// Tier 5 first: a winnerless jackpot determines the cap excess that
	// feeds the lower tier pools.
	if in.Winners.Tier5 == 0 {
		rolled := pool5
		if in.JackpotCapCents > 0 && rolled > in.JackpotCapCents {
			excess := rolled - in.JackpotCapCents
			rolled = in.JackpotCapCents
			pool4 += excess / 2
			pool3 += excess - excess/2
		}
		alloc.Tier5 = TierAllocation{PoolCents: pool5}
		alloc.RolloverOutCents += rolled
	} else {
		alloc.Tier5 = divideTier(pool5, in.Winners.Tier5)
		alloc.RolloverOutCents += pool5 - alloc.Tier5.PaidOutCents
	}

	if in.Winners.Tier4 == 0 {
		alloc.Tier4 = TierAllocation{PoolCents: pool4}
		alloc.RolloverOutCents += pool4
	} else {
		alloc.Tier4 = divideTier(pool4, in.Winners.Tier4)
		alloc.RolloverOutCents += pool4 - alloc.Tier4.PaidOutCents
	}

	if in.Winners.Tier3 == 0 {
		alloc.Tier3 = TierAllocation{PoolCents: pool3}
		alloc.RolloverOutCents += pool3
	} else {
		alloc.Tier3 = divideTier(pool3, in.Winners.Tier3)
		alloc.RolloverOutCents += pool3 - alloc.Tier3.PaidOutCents
	}

	return alloc, nil
}

func divideTier(poolCents int64, winners int) TierAllocation {
	perWinner := poolCents / int64(winners)
	return TierAllocation{
		PoolCents:      poolCents,
		WinnerCount:    winners,
		PerWinnerCents: perWinner,
		PaidOutCents:   perWinner * int64(winners),
	}
}

// TotalPaidOutCents sums the gross payouts actually disbursed.
func (a *Allocation) TotalPaidOutCents() int64 {
	return a.Tier5.PaidOutCents + a.Tier4.PaidOutCents + a.Tier3.PaidOutCents
}

// SplitDonation divides a gross payout into the charity donation and the net
// amount paid to the winner, per the member's standing election. The donation
// is floored so net + donation == gross exactly.
func SplitDonation(grossCents int64, donationPercent int) (donationCents, netCents int64) {
	if donationPercent <= 0 {
		return 0, grossCents
	}
	if donationPercent >= 100 {
		return grossCents, 0
	}
	donationCents = grossCents * int64(donationPercent) / 100
	return donationCents, grossCents - donationCents
}
