package draw

import "github.com/fairwaydraw/draw-backend/internal/models"

// Match tiers. A member's deduplicated score set is intersected with the
// winning combination; the intersection size determines the tier.
const (
	TierNone = 0
	Tier3    = 3
	Tier4    = 4
	Tier5    = 5
)

// TierCounts holds the number of winners per tier for one run.
type TierCounts struct {
	Tier5 int
	Tier4 int
	Tier3 int
}

// MatchTier classifies one member's score set against the combination.
// Each distinct member value counts at most once. Returns TierNone below
// 3 matches.
func MatchTier(memberValues []int, combination []models.CombinationValue) int {
	winning := make(map[int]bool, len(combination))
	for _, cv := range combination {
		winning[cv.Value] = true
	}

	seen := make(map[int]bool, len(memberValues))
	matches := 0
	for _, v := range memberValues {
		if seen[v] {
			continue
		}
		seen[v] = true
		if winning[v] {
			matches++
		}
	}

	switch {
	case matches >= 5:
		return Tier5
	case matches == 4:
		return Tier4
	case matches == 3:
		return Tier3
	default:
		return TierNone
	}
}
