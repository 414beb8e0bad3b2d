package engine

import (
	"math"

	"cleanops-backend/internal/model"
)

// ExpectedHours resolves the expected duration for a job. A friends & family
// customer with an explicit allotment uses it; everyone else goes through the
// price tiers, falling back to DefaultAllottedMinutes.
func ExpectedHours(c model.Customer, tiers []model.PriceTier, price int) float64 {
	if c.IsFriendsFamily && c.FriendsFamilyMinutes != nil && *c.FriendsFamilyMinutes > 0 {
		return float64(*c.FriendsFamilyMinutes) / 60
	}
	return float64(AllottedMinutes(tiers, float64(price))) / 60
}

// Efficiency is expected over actual duration as a rounded percentage,
// clamped to a floor of 0. Overperformance above 100% is meaningful and is
// not clamped.
func Efficiency(expectedHours, actualHours float64) int {
	if actualHours <= 0 {
		return 0
	}
	pct := int(math.Round(expectedHours / actualHours * 100))
	if pct < 0 {
		pct = 0
	}
	return pct
}

// WageRatio is labor cost over billed price as a rounded percentage. A
// friends & family job is never billed, so its ratio is forced to 0.
func WageRatio(wageCost float64, price int, friendsFamily bool) int {
	if friendsFamily || price <= 0 {
		return 0
	}
	return int(math.Round(wageCost / float64(price) * 100))
}

// MeanOfRounded averages already-rounded per-job percentages. Rounding
// happens per job first and the arithmetic mean is taken over those values,
// never recomputed from pooled durations.
func MeanOfRounded(values []int) int {
	if len(values) == 0 {
		return 0
	}
	var sum int
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}
