package valuation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tier names the performance band a points value falls into.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierRegular   Tier = "regular"
	TierLow       Tier = "low"
	TierNegative  Tier = "negative"
)

var (
	MinPrice = decimal.RequireFromString("1.00")
	MaxPrice = decimal.RequireFromString("20.00")

	hundred = decimal.NewFromInt(100)
)

// Rule is one row of the pricing table. Floor is the inclusive lower bound of
// points for the tier; the last rule of a policy has no floor.
type Rule struct {
	Tier      Tier
	Floor     decimal.NullDecimal
	Percent   decimal.Decimal
	MaxDelta  decimal.Decimal
	Label     string
	Threshold string
}

// Policy evaluates rules in order, first match wins.
type Policy struct {
	Rules    []Rule
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
}

// Result is the outcome of pricing one player for one round.
type Result struct {
	OldPrice decimal.Decimal
	NewPrice decimal.Decimal
	Delta    decimal.Decimal
	Percent  decimal.Decimal
	Points   decimal.Decimal
	Tier     Tier
	Reason   string
}

func floor(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func DefaultPolicy() Policy {
	return Policy{
		Rules: []Rule{
			{
				Tier:      TierExcellent,
				Floor:     floor("8"),
				Percent:   decimal.NewFromInt(10),
				MaxDelta:  decimal.RequireFromString("0.30"),
				Label:     "excellent performance",
				Threshold: ">= 8 pts",
			},
			{
				Tier:      TierGood,
				Floor:     floor("5"),
				Percent:   decimal.NewFromInt(5),
				MaxDelta:  decimal.RequireFromString("0.20"),
				Label:     "good performance",
				Threshold: "5-7.99 pts",
			},
			{
				Tier:      TierRegular,
				Floor:     floor("2"),
				Percent:   decimal.Zero,
				MaxDelta:  decimal.Zero,
				Label:     "regular performance",
				Threshold: "2-4.99 pts",
			},
			{
				Tier:      TierLow,
				Floor:     floor("0"),
				Percent:   decimal.NewFromInt(-5),
				MaxDelta:  decimal.RequireFromString("0.20"),
				Label:     "low performance",
				Threshold: "0-1.99 pts",
			},
			{
				Tier:      TierNegative,
				Percent:   decimal.NewFromInt(-10),
				MaxDelta:  decimal.RequireFromString("0.30"),
				Label:     "negative performance",
				Threshold: "< 0 pts",
			},
		},
		MinPrice: MinPrice,
		MaxPrice: MaxPrice,
	}
}

// Evaluate prices a player with the default policy.
func Evaluate(currentPrice, points decimal.Decimal) Result {
	return DefaultPolicy().Evaluate(currentPrice, points)
}

// Evaluate computes the new price for currentPrice after a round with the
// given points. The reported delta always equals NewPrice - OldPrice.
func (p Policy) Evaluate(currentPrice, points decimal.Decimal) Result {
	rule := p.match(points)

	delta := currentPrice.Mul(rule.Percent).Div(hundred)
	delta = clampAbs(delta, rule.MaxDelta)

	newPrice := p.ClampPrice(currentPrice.Add(delta)).Round(2)

	return Result{
		OldPrice: currentPrice,
		NewPrice: newPrice,
		Delta:    newPrice.Sub(currentPrice).Round(2),
		Percent:  rule.Percent,
		Points:   points,
		Tier:     rule.Tier,
		Reason:   fmt.Sprintf("%s (%s)", rule.Label, rule.Threshold),
	}
}

// ClampPrice bounds price to the policy band.
func (p Policy) ClampPrice(price decimal.Decimal) decimal.Decimal {
	if price.LessThan(p.MinPrice) {
		return p.MinPrice
	}
	if price.GreaterThan(p.MaxPrice) {
		return p.MaxPrice
	}
	return price
}

func (p Policy) match(points decimal.Decimal) Rule {
	for _, rule := range p.Rules {
		if !rule.Floor.Valid || points.GreaterThanOrEqual(rule.Floor.Decimal) {
			return rule
		}
	}
	return p.Rules[len(p.Rules)-1]
}

func clampAbs(v, limit decimal.Decimal) decimal.Decimal {
	if v.Abs().LessThanOrEqual(limit) {
		return v
	}
	if v.IsNegative() {
		return limit.Neg()
	}
	return limit
}

// Changed reports whether the evaluation moved the price.
func (r Result) Changed() bool {
	return !r.Delta.IsZero()
}
