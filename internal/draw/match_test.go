package draw

import (
	"testing"

	"github.com/fairwaydraw/draw-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func combo(values ...int) []models.CombinationValue {
	combination := make([]models.CombinationValue, len(values))
	for i, v := range values {
		combination[i] = models.CombinationValue{Value: v, Origin: models.OriginRare}
	}
	return combination
}

func TestMatchTier(t *testing.T) {
	winning := combo(3, 7, 11, 22, 30)

	tests := []struct {
		name   string
		values []int
		want   int
	}{
		{"all five", []int{3, 7, 11, 22, 30}, Tier5},
		{"four of five", []int{3, 7, 11, 22, 44}, Tier4},
		{"three of five", []int{3, 7, 11, 40, 44}, Tier3},
		{"two of five", []int{3, 7, 40, 41, 44}, TierNone},
		{"none", []int{1, 2, 4, 5, 6}, TierNone},
		{"empty set", nil, TierNone},
		{"partial set still matches", []int{3, 7, 11}, Tier3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchTier(tt.values, winning))
		})
	}
}

func TestMatchTierDuplicatesCountOnce(t *testing.T) {
	winning := combo(3, 7, 11, 22, 30)

	// Repeating a winning value must not inflate the match count.
	assert.Equal(t, Tier3, MatchTier([]int{3, 3, 7, 7, 11}, winning))
	assert.Equal(t, TierNone, MatchTier([]int{3, 3, 3, 3, 7}, winning))
}
