package models

// TierPreview is one tier's projected figures in a simulation.
type TierPreview struct {
	PoolCents      int64 `json:"poolCents"`
	WinnerCount    int   `json:"winnerCount"`
	PerWinnerCents int64 `json:"perWinnerCents"`
}

// DrawPreview is the read-only result of a simulate action: what a run under
// the given range would produce, with nothing persisted.
type DrawPreview struct {
	CycleLabel                string             `json:"cycleLabel"`
	RangeMin                  int                `json:"rangeMin"`
	RangeMax                  int                `json:"rangeMax"`
	Combination               []CombinationValue `json:"combination"`
	SubmitterCount            int                `json:"submitterCount"`
	EligibleCount             int                `json:"eligibleCount"`
	BasePoolCents             int64              `json:"basePoolCents"`
	RolloverInCents           int64              `json:"rolloverInCents"`
	Tier5                     TierPreview        `json:"tier5"`
	Tier4                     TierPreview        `json:"tier4"`
	Tier3                     TierPreview        `json:"tier3"`
	ProjectedRolloverOutCents int64              `json:"projectedRolloverOutCents"`
}
