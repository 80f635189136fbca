package types

// Receipt reports the outcome of a successful purchase back to the caller.
type Receipt struct {
	Company           string  `json:"company"`
	Title             string  `json:"title"`
	ListPrice         float64 `json:"listPrice"`
	EffectiveDiscount float64 `json:"effectiveDiscount"`
	FinalPrice        float64 `json:"finalPrice"`
	Balance           float64 `json:"balance"`
}
