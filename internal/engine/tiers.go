package engine

import (
	"sort"

	"cleanops-backend/internal/model"
)

// DefaultAllottedMinutes is the expected job duration when no price tier
// matches. Every efficiency computation for an untiered price depends on it.
const DefaultAllottedMinutes = 90

// AllottedMinutes resolves a customer price to its allotted duration. Tiers
// are scanned in ascending PriceMin order (input order breaks ties) and the
// first band containing the price wins, so the result stays deterministic
// even over a misconfigured, overlapping tier set.
func AllottedMinutes(tiers []model.PriceTier, price float64) int {
	sorted := make([]model.PriceTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PriceMin < sorted[j].PriceMin
	})

	for _, t := range sorted {
		if t.PriceMin <= price && price <= t.PriceMax {
			return t.AllottedMinutes
		}
	}
	return DefaultAllottedMinutes
}
