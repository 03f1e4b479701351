package wages

import "math"

// Feasibility is the outcome of a wage-bill check
type Feasibility struct {
	OK            bool  `json:"ok"`
	CurrentBill   int64 `json:"current_wage_bill"`
	ProposedWage  int64 `json:"proposed_wage"`
	ProjectedBill int64 `json:"projected_wage_bill"`
	Budget        int64 `json:"budget"`
	Headroom      int64 `json:"headroom"`
}

// CheckWageFeasibility fails when the current bill plus the proposed wage exceeds the budget.
// The current bill comes from calculate_team_wages; this only does the arithmetic.
// Sums saturate at the int64 bounds, so an oversized wage can never wrap into a fit.
func CheckWageFeasibility(currentWageBill, proposedWage, budget int64) Feasibility {
	projected := addSaturated(currentWageBill, proposedWage)
	return Feasibility{
		OK:            proposedWage >= 0 && projected <= budget,
		CurrentBill:   currentWageBill,
		ProposedWage:  proposedWage,
		ProjectedBill: projected,
		Budget:        budget,
		Headroom:      subSaturated(budget, projected),
	}
}

func addSaturated(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}

func subSaturated(a, b int64) int64 {
	switch {
	case b < 0 && a > math.MaxInt64+b:
		return math.MaxInt64
	case b > 0 && a < math.MinInt64+b:
		return math.MinInt64
	}
	return a - b
}
