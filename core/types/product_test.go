package types

import "testing"

func TestProductValidate(t *testing.T) {
	valid := Product{Company: "Canon", Title: "Digital Camera", Category: CategoryCamera, Prices: []float64{300}, MaxDiscount: 0.15}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Product)
	}{
		{"empty company", func(p *Product) { p.Company = " " }},
		{"empty title", func(p *Product) { p.Title = "" }},
		{"no prices", func(p *Product) { p.Prices = nil }},
		{"negative price", func(p *Product) { p.Prices = []float64{300, -1} }},
		{"negative discount", func(p *Product) { p.MaxDiscount = -0.1 }},
		{"discount above one", func(p *Product) { p.MaxDiscount = 1.01 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid.Clone()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := Product{Company: "HP", Title: "Laptop", Prices: []float64{1000, 1250}, MaxDiscount: 0.2}
	clone := p.Clone()
	clone.Prices[0] = 1
	if p.Prices[0] != 1000 {
		t.Fatalf("product clone shares price storage")
	}

	a := Account{ID: 1, FullName: "John Doe", Purchases: []Purchase{{Company: "HP", Title: "Laptop", PricePaid: 800}}}
	acctClone := a.Clone()
	acctClone.Purchases[0].PricePaid = 1
	if a.Purchases[0].PricePaid != 800 {
		t.Fatalf("account clone shares purchase storage")
	}
}
