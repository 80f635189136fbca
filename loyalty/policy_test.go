package loyalty

import (
	"testing"

	"hypermart/core/types"
)

func TestRegularPolicyTierDiscount(t *testing.T) {
	cases := []struct {
		name  string
		spend float64
		want  float64
	}{
		{"zero spend", 0, 0},
		{"negative spend", -10, 0},
		{"small spend", 50, 0.05},
		{"mid spend", 100, 0.1},
		{"at cap", 150, 0.15},
		{"beyond cap", 500, 0.15},
		{"far beyond cap", 1_000_000, 0.15},
	}
	policy := RegularPolicy{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.TierDiscount(tc.spend); got != tc.want {
				t.Fatalf("TierDiscount(%v) = %v, want %v", tc.spend, got, tc.want)
			}
		})
	}
}

func TestTierDiscountMonotonicAndBounded(t *testing.T) {
	policy := RegularPolicy{}
	prev := 0.0
	for spend := 0.0; spend <= 2000; spend += 7.3 {
		got := policy.TierDiscount(spend)
		if got < prev {
			t.Fatalf("discount decreased: spend %v gave %v after %v", spend, got, prev)
		}
		if got < 0 || got > MaxTierDiscount {
			t.Fatalf("discount %v outside [0, %v] at spend %v", got, MaxTierDiscount, spend)
		}
		prev = got
	}
}

func TestAnonymousPolicyAlwaysZero(t *testing.T) {
	policy := AnonymousPolicy{}
	for _, spend := range []float64{0, 100, 10_000} {
		if got := policy.TierDiscount(spend); got != 0 {
			t.Fatalf("anonymous discount at spend %v = %v, want 0", spend, got)
		}
	}
}

func TestEffectiveDiscountCapsAtProductMax(t *testing.T) {
	cases := []struct {
		tier, productMax, want float64
	}{
		{0, 0.1, 0},
		{0.05, 0.1, 0.05},
		{0.15, 0.1, 0.1},
		{0.15, 0.25, 0.15},
		{0.15, 0, 0},
	}
	for _, tc := range cases {
		if got := EffectiveDiscount(tc.tier, tc.productMax); got != tc.want {
			t.Fatalf("EffectiveDiscount(%v, %v) = %v, want %v", tc.tier, tc.productMax, got, tc.want)
		}
	}
}

func TestPolicyFor(t *testing.T) {
	if _, ok := PolicyFor(types.TierRegular).(RegularPolicy); !ok {
		t.Fatalf("regular tier did not select RegularPolicy")
	}
	if _, ok := PolicyFor(types.TierAnonymous).(AnonymousPolicy); !ok {
		t.Fatalf("anonymous tier did not select AnonymousPolicy")
	}
	if _, ok := PolicyFor(types.Tier("platinum")).(AnonymousPolicy); !ok {
		t.Fatalf("unknown tier should fall back to AnonymousPolicy")
	}
}
