package lending

import (
	"math"
)

const (
	baseLateFeePerDay     = 0.5
	bestsellerMultiplier  = 1.5
	premiumMemberDiscount = 0.8
)

// CalculateDynamicLateFee computes the fee for returning a book overdueDays late:
//
//	overdueDays * 0.5 * (1.5 for a bestseller) * (0.8 for a premium member)
//
// rounded half-up to two decimal places. Zero overdue days always cost nothing.
// A negative overdueDays returns ErrNegativeOverdueDays.
func CalculateDynamicLateFee(overdueDays int, isBestseller bool, isPremiumMember bool) (float64, error) {
	if overdueDays < 0 {
		return 0, ErrNegativeOverdueDays
	}

	fee := float64(overdueDays) * baseLateFeePerDay

	if isBestseller {
		fee *= bestsellerMultiplier
	}

	if isPremiumMember {
		fee *= premiumMemberDiscount
	}

	return roundToCents(fee), nil
}

// roundToCents rounds a non-negative amount half-up to two decimal places.
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
