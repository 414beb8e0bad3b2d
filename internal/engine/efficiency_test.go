package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cleanops-backend/internal/model"
)

func intPtr(v int) *int { return &v }

func TestEfficiencyScenario(t *testing.T) {
	tiers := []model.PriceTier{
		{PriceMin: 100, PriceMax: 150, AllottedMinutes: 90},
		{PriceMin: 151, PriceMax: 200, AllottedMinutes: 120},
	}
	customer := model.Customer{Name: "Acme", Price: 180}

	expected := ExpectedHours(customer, tiers, 180)
	assert.InDelta(t, 2.0, expected, 1e-9)

	// On-target job.
	assert.Equal(t, 100, Efficiency(expected, 2.0))
	// Overran by an hour: round(2/3*100) = 67.
	assert.Equal(t, 67, Efficiency(expected, 3.0))
	// Finished early: above 100 is reported, not clamped.
	assert.Equal(t, 133, Efficiency(expected, 1.5))
}

func TestEfficiencyEdges(t *testing.T) {
	assert.Equal(t, 0, Efficiency(2.0, 0), "zero duration is unmeasurable")
	assert.Equal(t, 0, Efficiency(2.0, -1), "negative duration is unmeasurable")
	assert.Equal(t, 0, Efficiency(0, 3.0))
}

// Longer actual duration never raises the score.
func TestEfficiencyMonotonic(t *testing.T) {
	prev := Efficiency(2.0, 0.25)
	for actual := 0.5; actual <= 8; actual += 0.25 {
		cur := Efficiency(2.0, actual)
		assert.LessOrEqual(t, cur, prev, "actual=%v", actual)
		assert.GreaterOrEqual(t, cur, 0)
		prev = cur
	}
}

func TestExpectedHoursFriendsFamily(t *testing.T) {
	tiers := []model.PriceTier{{PriceMin: 100, PriceMax: 200, AllottedMinutes: 120}}

	ff := model.Customer{Name: "Mum", Price: 150, IsFriendsFamily: true, FriendsFamilyMinutes: intPtr(45)}
	assert.InDelta(t, 0.75, ExpectedHours(ff, tiers, 150), 1e-9)

	// Without an explicit allotment the tiers still apply.
	ffNoMinutes := model.Customer{Name: "Dad", Price: 150, IsFriendsFamily: true}
	assert.InDelta(t, 2.0, ExpectedHours(ffNoMinutes, tiers, 150), 1e-9)
}

func TestWageRatio(t *testing.T) {
	testCases := []struct {
		name          string
		cost          float64
		price         int
		friendsFamily bool
		expected      int
	}{
		{"typical job", 64.62, 180, false, 36},
		{"expensive labor", 96.93, 180, false, 54},
		{"friends and family never billed", 96.93, 180, true, 0},
		{"zero price", 50, 0, false, 0},
		{"negative price", 50, -10, false, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, WageRatio(tc.cost, tc.price, tc.friendsFamily))
		})
	}
}

func TestMeanOfRounded(t *testing.T) {
	assert.Equal(t, 0, MeanOfRounded(nil))
	assert.Equal(t, 84, MeanOfRounded([]int{100, 67}), "rounds half up")
	assert.Equal(t, 100, MeanOfRounded([]int{100}))
	assert.Equal(t, 45, MeanOfRounded([]int{36, 54}))
}
