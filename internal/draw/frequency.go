package draw

import (
	"sort"

	"github.com/fairwaydraw/draw-backend/internal/models"
)

// CombinationSize is the fixed number of values in a winning combination:
// the 3 rarest plus the 2 most common.
const (
	CombinationSize = 5
	rareCount       = 3
	commonCount     = 2
)

type valueCount struct {
	value int
	count int
}

// DeriveCombination selects the winning combination from the full multiset of
// submitted score values. Occurrences of each distinct in-range value are
// counted; the 3 values with the lowest counts form the rare group (ties
// broken by ascending value) and, with those excluded, the 2 values with the
// highest counts form the common group (ties broken by descending value).
//
// The rule is deliberately free of randomness: the same multiset and range
// always produce the same combination.
func DeriveCombination(values []int, rangeMin, rangeMax int) ([]models.CombinationValue, error) {
	counts := make(map[int]int)
	for _, v := range values {
		if v < rangeMin || v > rangeMax {
			continue
		}
		counts[v]++
	}
	if len(counts) < CombinationSize {
		return nil, ErrInsufficientDiversity
	}

	ranked := make([]valueCount, 0, len(counts))
	for v, c := range counts {
		ranked = append(ranked, valueCount{value: v, count: c})
	}

	// Rare group: lowest count first, then lowest value for reproducibility.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count < ranked[j].count
		}
		return ranked[i].value < ranked[j].value
	})

	combination := make([]models.CombinationValue, 0, CombinationSize)
	for _, vc := range ranked[:rareCount] {
		combination = append(combination, models.CombinationValue{Value: vc.value, Origin: models.OriginRare})
	}

	// Common group: highest count first, then highest value, drawn from the
	// values the rare group did not consume.
	remaining := make([]valueCount, len(ranked)-rareCount)
	copy(remaining, ranked[rareCount:])
	sort.Slice(remaining, func(i, j int) bool {
		if remaining[i].count != remaining[j].count {
			return remaining[i].count > remaining[j].count
		}
		return remaining[i].value > remaining[j].value
	})
	for _, vc := range remaining[:commonCount] {
		combination = append(combination, models.CombinationValue{Value: vc.value, Origin: models.OriginCommon})
	}

	return combination, nil
}

// CombinationValues flattens a combination to its plain values.
func CombinationValues(combination []models.CombinationValue) []int {
	values := make([]int, len(combination))
	for i, cv := range combination {
		values[i] = cv.Value
	}
	return values
}
