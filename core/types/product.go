package types

import (
	"errors"
	"fmt"
	"strings"
)

// Product categories. The original catalogue modelled these as subclasses that
// added no behaviour; here the category is plain data attached to the product.
const (
	CategoryHouseholdAppliance = "household-appliance"
	CategoryCamera             = "camera"
	CategoryLaptop             = "laptop"
)

// Product is an immutable catalogue entry. Prices holds one amount per SKU
// variant of the same title (size, bundle, colour) selected by index.
// MaxDiscount is the largest discount the seller grants on this product
// regardless of how loyal the customer is.
type Product struct {
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Category    string    `json:"category,omitempty"`
	Prices      []float64 `json:"prices"`
	MaxDiscount float64   `json:"maxDiscount"`
}

// Validate performs static validation of the product definition.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Company) == "" {
		return errors.New("types: product company must not be empty")
	}
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("types: product title must not be empty")
	}
	if len(p.Prices) == 0 {
		return fmt.Errorf("types: product %q has no price variants", p.Title)
	}
	for i, price := range p.Prices {
		if price < 0 {
			return fmt.Errorf("types: product %q price variant %d is negative", p.Title, i)
		}
	}
	if p.MaxDiscount < 0 || p.MaxDiscount > 1 {
		return fmt.Errorf("types: product %q max discount %v outside [0,1]", p.Title, p.MaxDiscount)
	}
	return nil
}

// Clone produces a deep copy of the product.
func (p *Product) Clone() Product {
	clone := *p
	clone.Prices = append([]float64(nil), p.Prices...)
	return clone
}
