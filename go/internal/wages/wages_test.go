package wages

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryPosition(t *testing.T) {
	assert.Equal(t, "CB", PrimaryPosition(" cb , CDM"))
	assert.Equal(t, "ST", PrimaryPosition("ST"))
	assert.Equal(t, "", PrimaryPosition(""))
}

func TestIsDefensive(t *testing.T) {
	for _, p := range []string{"GK", "CDM,CM", "CB", "RB,RWB", "LB"} {
		assert.True(t, IsDefensive(p), p)
	}
	for _, p := range []string{"ST", "CM,CDM", "CAM", "LW", "RWB,RB", ""} {
		assert.False(t, IsDefensive(p), p)
	}
}

func TestComputeBaseWageUsesPositionColumn(t *testing.T) {
	for rating := MinTableRating; rating <= MaxTableRating; rating++ {
		pair := Lookup(rating)
		assert.Equal(t, pair.Defensive, ComputeBaseWage(rating, "CB,LB"), "rating %d", rating)
		assert.Equal(t, pair.Attacking, ComputeBaseWage(rating, "ST,CF"), "rating %d", rating)
	}
}

func TestComputeBaseWageIsDeterministic(t *testing.T) {
	first := ComputeBaseWage(84, "CAM")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ComputeBaseWage(84, "CAM"))
	}
}

func TestComputeBaseWageOutOfRangeFallsBackToLowestTier(t *testing.T) {
	lowest := Lookup(MinTableRating)
	assert.Equal(t, lowest.Attacking, ComputeBaseWage(40, "ST"))
	assert.Equal(t, lowest.Defensive, ComputeBaseWage(52, "GK"))
	assert.Equal(t, lowest.Attacking, ComputeBaseWage(99, "ST"))
}

func TestTableIsCompleteAndMonotonic(t *testing.T) {
	prev := WagePair{}
	for rating := MinTableRating; rating <= MaxTableRating; rating++ {
		pair, ok := baseWages[rating]
		assert.True(t, ok, "missing rating %d", rating)
		assert.Greater(t, pair.Defensive, prev.Defensive, "rating %d", rating)
		assert.Greater(t, pair.Attacking, prev.Attacking, "rating %d", rating)
		assert.LessOrEqual(t, pair.Defensive, pair.Attacking, "rating %d", rating)
		prev = pair
	}
}

func TestDefaultSigningWage(t *testing.T) {
	tests := []struct {
		rating int
		want   int64
	}{
		{rating: 40, want: 500_000},
		{rating: 55, want: 500_000},
		{rating: 56, want: 600_000},
		{rating: 75, want: 2_500_000},
		{rating: 91, want: 4_100_000},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DefaultSigningWage(tc.rating), "rating %d", tc.rating)
	}
}

func TestApplyDiscount(t *testing.T) {
	assert.Equal(t, int64(800_000), ApplyDiscount(1_000_000, 20))
	assert.Equal(t, int64(1_000_000), ApplyDiscount(1_000_000, 0))
	assert.Equal(t, int64(0), ApplyDiscount(1_000_000, 150))
	assert.Equal(t, int64(1_000_000), ApplyDiscount(1_000_000, -5))
}

func TestCheckWageFeasibility(t *testing.T) {
	tests := []struct {
		name          string
		bill, wage, b int64
		ok            bool
	}{
		{name: "empty bill fits", bill: 0, wage: 5_000_000, b: 10_000_000, ok: true},
		{name: "exactly at budget", bill: 6_000_000, wage: 4_000_000, b: 10_000_000, ok: true},
		{name: "over by one", bill: 6_000_000, wage: 4_000_001, b: 10_000_000, ok: false},
		{name: "zero budget", bill: 0, wage: 100_000, b: 0, ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckWageFeasibility(tc.bill, tc.wage, tc.b)
			assert.Equal(t, tc.ok, got.OK)
			assert.Equal(t, tc.bill+tc.wage, got.ProjectedBill)
			assert.Equal(t, tc.b-(tc.bill+tc.wage), got.Headroom)
		})
	}
}

func TestCheckWageFeasibilitySaturates(t *testing.T) {
	got := CheckWageFeasibility(5_000_000, 9_223_372_036_851_200_000, 10_000_000)
	assert.False(t, got.OK)
	assert.Equal(t, int64(math.MaxInt64), got.ProjectedBill)
	assert.Negative(t, got.Headroom)

	got = CheckWageFeasibility(5_000_000, -6_000_000, 10_000_000)
	assert.False(t, got.OK, "negative wages never fit")
}
