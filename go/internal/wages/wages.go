package wages

import "strings"

const (
	// MinSigningWage is the floor for default signing and packed contract wages
	MinSigningWage int64 = 500_000
	// WageStep is the per-rating-point increment above 50 for default wages
	WageStep int64 = 100_000
)

var defensivePositions = map[string]bool{
	"GK":  true,
	"CDM": true,
	"CB":  true,
	"RB":  true,
	"LB":  true,
}

// PrimaryPosition returns the first entry of a comma-separated position list
func PrimaryPosition(positions string) string {
	first, _, _ := strings.Cut(positions, ",")
	return strings.ToUpper(strings.TrimSpace(first))
}

// IsDefensive reports whether the primary position belongs to the defensive group
func IsDefensive(positions string) bool {
	return defensivePositions[PrimaryPosition(positions)]
}

// ComputeBaseWage returns the table wage for a rating and position list
func ComputeBaseWage(rating int, positions string) int64 {
	pair := Lookup(rating)
	if IsDefensive(positions) {
		return pair.Defensive
	}
	return pair.Attacking
}

// DefaultSigningWage is the wage used when a signing omits a salary and for packed contracts
func DefaultSigningWage(rating int) int64 {
	return max(MinSigningWage, int64(rating-50)*WageStep)
}

// ApplyDiscount returns the wage after a percentage discount, clamped to [0,100]
func ApplyDiscount(wage int64, discountPercent int) int64 {
	discountPercent = min(max(discountPercent, 0), 100)
	return wage * int64(100-discountPercent) / 100
}
