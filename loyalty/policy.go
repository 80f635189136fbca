package loyalty

import "hypermart/core/types"

// Policy computes the individual discount an account has earned. The
// effective discount of a purchase additionally honours the product ceiling,
// see EffectiveDiscount.
type Policy interface {
	// TierDiscount returns a fraction in [0, MaxTierDiscount] derived from
	// the account's cumulative spend. It is non-decreasing in the spend.
	TierDiscount(cumulativeSpend float64) float64
}

// AnonymousPolicy never grants a discount.
type AnonymousPolicy struct{}

// TierDiscount implements the Policy interface.
func (AnonymousPolicy) TierDiscount(float64) float64 { return 0 }

// RegularPolicy grants a discount that grows linearly with cumulative spend
// and saturates at MaxTierDiscount.
type RegularPolicy struct{}

// TierDiscount implements the Policy interface.
func (RegularPolicy) TierDiscount(cumulativeSpend float64) float64 {
	if cumulativeSpend <= 0 {
		return 0
	}
	discount := cumulativeSpend / TierDivisor
	if discount > MaxTierDiscount {
		return MaxTierDiscount
	}
	return discount
}

// PolicyFor selects the discount policy for a tier. Unknown tiers behave as
// anonymous, which is the variant that can never over-grant.
func PolicyFor(tier types.Tier) Policy {
	switch tier {
	case types.TierRegular:
		return RegularPolicy{}
	default:
		return AnonymousPolicy{}
	}
}
