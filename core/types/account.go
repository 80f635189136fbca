package types

// Tier selects the discount policy applied to an account. The persisted store
// carries no tier field, so restored accounts are regular customers, which is
// the only tier that can sign up today.
type Tier string

const (
	// TierAnonymous receives no individual discount.
	TierAnonymous Tier = "anonymous"
	// TierRegular earns a discount that grows with cumulative spend.
	TierRegular Tier = "regular"
)

// Purchase is the snapshot of a completed purchase kept on the account. It is
// a value copy taken at purchase time; the live catalogue may change or
// disappear without affecting recorded history.
type Purchase struct {
	Company   string  `json:"company"`
	Title     string  `json:"title"`
	PricePaid float64 `json:"pricePaid"`
}

// Account is a customer account. Balance never goes negative: purchases that
// would overdraw are rejected without any partial effect.
//
// LegacyDiscount is the stored discount field of the historical file format.
// It plays no part in any computation but must survive a save/load round trip.
// CumulativeSpend accrues the list price of every completed purchase and
// drives the tier discount; the file format has no field for it, so it is
// session-local state.
type Account struct {
	ID              int64      `json:"id"`
	FullName        string     `json:"fullName"`
	Balance         float64    `json:"balance"`
	LegacyDiscount  float64    `json:"legacyDiscount"`
	Tier            Tier       `json:"tier"`
	CumulativeSpend float64    `json:"cumulativeSpend"`
	Purchases       []Purchase `json:"purchases,omitempty"`
}

// Clone produces a deep copy of the account.
func (a *Account) Clone() Account {
	clone := *a
	if a.Purchases != nil {
		clone.Purchases = append([]Purchase(nil), a.Purchases...)
	}
	return clone
}
