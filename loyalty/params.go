package loyalty

const (
	// TierDivisor converts cumulative spend into a discount fraction: every
	// unit of spend earns 1/TierDivisor of discount until the cap.
	TierDivisor = 1000.0
	// MaxTierDiscount caps the individual discount a customer can ever earn
	// from spend alone.
	MaxTierDiscount = 0.15
)

// EffectiveDiscount caps a customer's tier discount at the product ceiling. A
// customer never receives more discount than the product allows, however
// loyal they are.
func EffectiveDiscount(tierDiscount, productMax float64) float64 {
	if tierDiscount < productMax {
		return tierDiscount
	}
	return productMax
}
