package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertConserved checks that no cent is created or destroyed by a split.
func assertConserved(t *testing.T, alloc *Allocation) {
	t.Helper()
	assert.Equal(t,
		alloc.BasePoolCents+alloc.RolloverInCents,
		alloc.TotalPaidOutCents()+alloc.RolloverOutCents,
		"pool conservation violated")
}

func TestAllocateEvenSplit(t *testing.T) {
	// 100 subscribers at $10 each: $400 / $350 / $250 tier pools.
	alloc, err := Allocate(AllocationInput{
		EligibleCount:     100,
		ContributionCents: 1000,
		Tier5Percent:      40,
		Tier4Percent:      35,
		Tier3Percent:      25,
		Winners:           TierCounts{Tier5: 1, Tier4: 2, Tier3: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100000), alloc.BasePoolCents)
	assert.Equal(t, int64(40000), alloc.Tier5.PoolCents)
	assert.Equal(t, int64(35000), alloc.Tier4.PoolCents)
	assert.Equal(t, int64(25000), alloc.Tier3.PoolCents)

	assert.Equal(t, int64(40000), alloc.Tier5.PerWinnerCents)
	assert.Equal(t, int64(17500), alloc.Tier4.PerWinnerCents)
	assert.Equal(t, int64(5000), alloc.Tier3.PerWinnerCents)
	assert.Equal(t, int64(0), alloc.RolloverOutCents)
	assertConserved(t, alloc)
}

func TestAllocateDivisionRemainderRollsForward(t *testing.T) {
	// Tier pools that do not divide evenly: the leftover cents roll forward.
	alloc, err := Allocate(AllocationInput{
		EligibleCount:     10,
		ContributionCents: 1000, // base 10000 -> 4000/3500/2500
		Tier5Percent:      40,
		Tier4Percent:      35,
		Tier3Percent:      25,
		Winners:           TierCounts{Tier5: 3, Tier4: 3, Tier3: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1333), alloc.Tier5.PerWinnerCents)
	assert.Equal(t, int64(1166), alloc.Tier4.PerWinnerCents)
	assert.Equal(t, int64(833), alloc.Tier3.PerWinnerCents)
	// 1 + 2 + 1 leftover cents
	assert.Equal(t, int64(4), alloc.RolloverOutCents)
	assertConserved(t, alloc)
}

func TestAllocateTierSharesSumToBase(t *testing.T) {
	// A split whose floored shares would lose cents: tier 3 absorbs them.
	alloc, err := Allocate(AllocationInput{
		EligibleCount:     3,
		ContributionCents: 333, // base 999
		Tier5Percent:      40,
		Tier4Percent:      35,
		Tier3Percent:      25,
		Winners:           TierCounts{Tier5: 1, Tier4: 1, Tier3: 1},
	})
	require.NoError(t, err)

	sum := alloc.Tier5.PoolCents + alloc.Tier4.PoolCents + alloc.Tier3.PoolCents
	assert.Equal(t, alloc.BasePoolCents, sum)
	assertConserved(t, alloc)
}

func TestAllocateWinnerlessTiersRollForward(t *testing.T) {
	alloc, err := Allocate(AllocationInput{
		EligibleCount:     100,
		ContributionCents: 1000,
		Tier5Percent:      40,
		Tier4Percent:      35,
		Tier3Percent:      25,
		Winners:           TierCounts{},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), alloc.TotalPaidOutCents())
	assert.Equal(t, int64(100000), alloc.RolloverOutCents)
	assertConserved(t, alloc)
}

func TestAllocateRolloverFeedsJackpotPool(t *testing.T) {
	alloc, err := Allocate(AllocationInput{
		EligibleCount:     100,
		ContributionCents: 1000,
		Tier5Percent:      40,
		Tier4Percent:      35,
		Tier3Percent:      25,
		RolloverInCents:   60000,
		Winners:           TierCounts{Tier5: 2},
	})
	require.NoError(t, err)

	// 40000 share + 60000 rollover, split between the two jackpot winners.
	assert.Equal(t, int64(100000), alloc.Tier5.PoolCents)
	assert.Equal(t, int64(50000), alloc.Tier5.PerWinnerCents)
	// Winnerless tiers 4 and 3 roll their pools forward.
	assert.Equal(t, int64(60000), alloc.RolloverOutCents)
	assertConserved(t, alloc)
}

func TestAllocateJackpotCapRedistributesExcess(t *testing.T) {
	alloc, err := Allocate(AllocationInput{
		EligibleCount:     100,
		ContributionCents: 1000,
		Tier5Percent:      40,
		Tier4Percent:      35,
		Tier3Percent:      25,
		RolloverInCents:   70001, // winnerless jackpot would roll 110001
		JackpotCapCents:   100000,
		Winners:           TierCounts{Tier4: 1, Tier3: 1},
	})
	require.NoError(t, err)

	// Excess over the cap is 10001: 5000 to tier 4, 5001 to tier 3.
	assert.Equal(t, int64(40000), alloc.Tier4.PoolCents)
	assert.Equal(t, int64(30001), alloc.Tier3.PoolCents)
	assert.Equal(t, int64(40000), alloc.Tier4.PerWinnerCents)
	assert.Equal(t, int64(30001), alloc.Tier3.PerWinnerCents)
	// Only the capped jackpot rolls forward.
	assert.Equal(t, int64(100000), alloc.RolloverOutCents)
	assertConserved(t, alloc)
}

func TestAllocateZeroEligible(t *testing.T) {
	alloc, err := Allocate(AllocationInput{
		EligibleCount:     0,
		ContributionCents: 1000,
		Tier5Percent:      40,
		Tier4Percent:      35,
		Tier3Percent:      25,
		RolloverInCents:   5000,
		Winners:           TierCounts{},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), alloc.BasePoolCents)
	assert.Equal(t, int64(5000), alloc.RolloverOutCents)
	assertConserved(t, alloc)
}

func TestAllocateRejectsBadSplit(t *testing.T) {
	_, err := Allocate(AllocationInput{
		EligibleCount:     10,
		ContributionCents: 1000,
		Tier5Percent:      40,
		Tier4Percent:      35,
		Tier3Percent:      30,
		Winners:           TierCounts{},
	})
	assert.ErrorIs(t, err, ErrBadTierSplit)
}

func TestAllocateConservationProperty(t *testing.T) {
	// Conservation must hold across a sweep of awkward inputs.
	for eligible := 0; eligible <= 50; eligible += 7 {
		for winners5 := 0; winners5 <= 3; winners5++ {
			for winners3 := 0; winners3 <= 7; winners3 += 3 {
				alloc, err := Allocate(AllocationInput{
					EligibleCount:     eligible,
					ContributionCents: 997,
					Tier5Percent:      40,
					Tier4Percent:      35,
					Tier3Percent:      25,
					RolloverInCents:   int64(eligible * 13),
					JackpotCapCents:   20000,
					Winners:           TierCounts{Tier5: winners5, Tier4: 1, Tier3: winners3},
				})
				require.NoError(t, err)
				assertConserved(t, alloc)
			}
		}
	}
}

func TestSplitDonation(t *testing.T) {
	tests := []struct {
		name     string
		gross    int64
		percent  int
		donation int64
		net      int64
	}{
		{"no election", 10000, 0, 0, 10000},
		{"half", 10000, 50, 5000, 5000},
		{"floored", 9999, 33, 3299, 6700},
		{"full donation", 10000, 100, 10000, 0},
		{"over 100 clamps", 10000, 150, 10000, 0},
		{"negative clamps", 10000, -5, 0, 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			donation, net := SplitDonation(tt.gross, tt.percent)
			assert.Equal(t, tt.donation, donation)
			assert.Equal(t, tt.net, net)
			assert.Equal(t, tt.gross, donation+net)
		})
	}
}
