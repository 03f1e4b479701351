package wages

// WagePair is the annual base wage for a rating, split by position group
type WagePair struct {
	Defensive int64
	Attacking int64
}

const (
	MinTableRating = 53
	MaxTableRating = 95
)

// baseWages is the canonical wage table. Below 60 it tapers per rating point;
// the older flat-rate variant (one wage for every rating under 60) is retired.
var baseWages = map[int]WagePair{
	53: {Defensive: 300_000, Attacking: 350_000},
	54: {Defensive: 350_000, Attacking: 400_000},
	55: {Defensive: 400_000, Attacking: 450_000},
	56: {Defensive: 450_000, Attacking: 500_000},
	57: {Defensive: 500_000, Attacking: 600_000},
	58: {Defensive: 600_000, Attacking: 700_000},
	59: {Defensive: 700_000, Attacking: 850_000},
	60: {Defensive: 800_000, Attacking: 1_000_000},
	61: {Defensive: 900_000, Attacking: 1_100_000},
	62: {Defensive: 1_000_000, Attacking: 1_200_000},
	63: {Defensive: 1_200_000, Attacking: 1_400_000},
	64: {Defensive: 1_300_000, Attacking: 1_500_000},
	65: {Defensive: 1_400_000, Attacking: 1_700_000},
	66: {Defensive: 1_600_000, Attacking: 1_900_000},
	67: {Defensive: 1_800_000, Attacking: 2_100_000},
	68: {Defensive: 2_000_000, Attacking: 2_400_000},
	69: {Defensive: 2_300_000, Attacking: 2_700_000},
	70: {Defensive: 2_600_000, Attacking: 3_000_000},
	71: {Defensive: 2_800_000, Attacking: 3_300_000},
	72: {Defensive: 3_100_000, Attacking: 3_700_000},
	73: {Defensive: 3_500_000, Attacking: 4_100_000},
	74: {Defensive: 3_900_000, Attacking: 4_600_000},
	75: {Defensive: 4_300_000, Attacking: 5_100_000},
	76: {Defensive: 4_800_000, Attacking: 5_700_000},
	77: {Defensive: 5_400_000, Attacking: 6_400_000},
	78: {Defensive: 6_000_000, Attacking: 7_100_000},
	79: {Defensive: 6_700_000, Attacking: 7_900_000},
	80: {Defensive: 7_500_000, Attacking: 8_800_000},
	81: {Defensive: 8_300_000, Attacking: 9_800_000},
	82: {Defensive: 9_400_000, Attacking: 11_000_000},
	83: {Defensive: 10_400_000, Attacking: 12_200_000},
	84: {Defensive: 11_600_000, Attacking: 13_600_000},
	85: {Defensive: 12_900_000, Attacking: 15_200_000},
	86: {Defensive: 14_400_000, Attacking: 16_900_000},
	87: {Defensive: 16_100_000, Attacking: 18_900_000},
	88: {Defensive: 17_900_000, Attacking: 21_100_000},
	89: {Defensive: 20_000_000, Attacking: 23_500_000},
	90: {Defensive: 22_300_000, Attacking: 26_200_000},
	91: {Defensive: 24_800_000, Attacking: 29_200_000},
	92: {Defensive: 27_700_000, Attacking: 32_600_000},
	93: {Defensive: 30_900_000, Attacking: 36_300_000},
	94: {Defensive: 34_400_000, Attacking: 40_500_000},
	95: {Defensive: 38_300_000, Attacking: 45_100_000},
}

// lowestTier is used for ratings the table does not cover
var lowestTier = baseWages[MinTableRating]

// Lookup returns the wage pair for a rating, falling back to the lowest tier
func Lookup(rating int) WagePair {
	if pair, ok := baseWages[rating]; ok {
		return pair
	}
	return lowestTier
}
