package freeagency

import (
	"math"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/wages"
)

// BidTerms are the normalised terms of a sealed bid
type BidTerms struct {
	Salary        int64
	Years         int
	GuaranteedPct float64
	SigningBonus  int64
}

// NormalizeBid coerces client supplied terms: years to 1 or 2, the guarantee
// into [0,1] and money to non-negative whole amounts. One-year deals are fully
// guaranteed. A guarantee above 1 and at most 100 is read as a percentage, so
// 1.5 means 1.5%; anything larger clamps to 1.
func NormalizeBid(salary, years float64, guaranteedPct *float64, bonus float64) BidTerms {
	y := 1
	if !math.IsNaN(years) {
		y = int(clamp(math.Round(years), 1, 2))
	}

	g := 1.0
	if y == 2 {
		if guaranteedPct != nil && !math.IsNaN(*guaranteedPct) {
			g = *guaranteedPct
		}
		if g > 1 && g <= 100 {
			g /= 100
		}
		g = clamp(g, 0, 1)
	}

	return BidTerms{
		Salary:        nonNegative(salary),
		Years:         y,
		GuaranteedPct: g,
		SigningBonus:  nonNegative(bonus),
	}
}

// Validate rejects salaries that are not a positive multiple of the wage step
func (t BidTerms) Validate() error {
	if t.Salary <= 0 || t.Salary%wages.WageStep != 0 {
		return apperr.Validation("salary must be a positive multiple of %d", wages.WageStep)
	}
	return nil
}

// nonNegative rounds to a whole amount, pinning values beyond int64 to
// math.MaxInt64 so the conversion stays defined.
func nonNegative(v float64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Round(v))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
