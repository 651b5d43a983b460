package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		price     string
		points    string
		wantPrice string
		wantDelta string
		wantTier  Tier
	}{
		{name: "excellent capped", price: "10.00", points: "8", wantPrice: "10.30", wantDelta: "0.30", wantTier: TierExcellent},
		{name: "excellent under cap", price: "2.00", points: "12.5", wantPrice: "2.20", wantDelta: "0.20", wantTier: TierExcellent},
		{name: "good capped", price: "10.00", points: "5", wantPrice: "10.20", wantDelta: "0.20", wantTier: TierGood},
		{name: "good under cap", price: "3.00", points: "7.99", wantPrice: "3.15", wantDelta: "0.15", wantTier: TierGood},
		{name: "regular lower bound", price: "10.00", points: "2", wantPrice: "10.00", wantDelta: "0", wantTier: TierRegular},
		{name: "regular", price: "10.00", points: "3", wantPrice: "10.00", wantDelta: "0", wantTier: TierRegular},
		{name: "low capped", price: "10.00", points: "1.99", wantPrice: "9.80", wantDelta: "-0.20", wantTier: TierLow},
		{name: "low at zero", price: "2.00", points: "0", wantPrice: "1.90", wantDelta: "-0.10", wantTier: TierLow},
		{name: "negative capped", price: "3.00", points: "-2", wantPrice: "2.70", wantDelta: "-0.30", wantTier: TierNegative},
		{name: "negative clamped to floor", price: "1.05", points: "-5", wantPrice: "1.00", wantDelta: "-0.05", wantTier: TierNegative},
		{name: "floor stays at floor", price: "1.00", points: "-1", wantPrice: "1.00", wantDelta: "0", wantTier: TierNegative},
		{name: "clamped to ceiling", price: "19.90", points: "9", wantPrice: "20.00", wantDelta: "0.10", wantTier: TierExcellent},
		{name: "rounded to cents", price: "2.55", points: "6", wantPrice: "2.68", wantDelta: "0.13", wantTier: TierGood},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(d(tc.price), d(tc.points))
			if !got.NewPrice.Equal(d(tc.wantPrice)) {
				t.Fatalf("new price = %s, want %s", got.NewPrice, tc.wantPrice)
			}
			if !got.Delta.Equal(d(tc.wantDelta)) {
				t.Fatalf("delta = %s, want %s", got.Delta, tc.wantDelta)
			}
			if got.Tier != tc.wantTier {
				t.Fatalf("tier = %s, want %s", got.Tier, tc.wantTier)
			}
		})
	}
}

func TestEvaluateReason(t *testing.T) {
	got := Evaluate(d("10.00"), d("9"))
	if got.Reason != "excellent performance (>= 8 pts)" {
		t.Fatalf("unexpected reason: %q", got.Reason)
	}
	if !got.Percent.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected percent: %s", got.Percent)
	}

	got = Evaluate(d("10.00"), d("-0.3"))
	if got.Reason != "negative performance (< 0 pts)" {
		t.Fatalf("unexpected reason: %q", got.Reason)
	}
}

func TestEvaluateStaysInBandAndDeltaMatchesMovement(t *testing.T) {
	step := d("0.25")
	pointStep := d("0.5")

	for price := d("1.00"); price.LessThanOrEqual(d("20.00")); price = price.Add(step) {
		for points := d("-12"); points.LessThanOrEqual(d("20")); points = points.Add(pointStep) {
			got := Evaluate(price, points)
			if got.NewPrice.LessThan(MinPrice) || got.NewPrice.GreaterThan(MaxPrice) {
				t.Fatalf("price %s points %s: new price %s out of band", price, points, got.NewPrice)
			}
			if !got.Delta.Equal(got.NewPrice.Sub(price).Round(2)) {
				t.Fatalf("price %s points %s: delta %s does not match movement to %s", price, points, got.Delta, got.NewPrice)
			}
			if got.Changed() != !got.Delta.IsZero() {
				t.Fatalf("Changed() disagrees with delta %s", got.Delta)
			}
		}
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	first := Evaluate(d("7.45"), d("6.7"))
	second := Evaluate(d("7.45"), d("6.7"))
	if !first.NewPrice.Equal(second.NewPrice) || !first.Delta.Equal(second.Delta) || first.Reason != second.Reason {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestClampPrice(t *testing.T) {
	policy := DefaultPolicy()
	if got := policy.ClampPrice(d("0.50")); !got.Equal(MinPrice) {
		t.Fatalf("expected floor, got %s", got)
	}
	if got := policy.ClampPrice(d("25")); !got.Equal(MaxPrice) {
		t.Fatalf("expected ceiling, got %s", got)
	}
	if got := policy.ClampPrice(d("5.00")); !got.Equal(d("5.00")) {
		t.Fatalf("expected unchanged price, got %s", got)
	}
}
