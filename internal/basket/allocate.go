package basket

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rickgao/kalshi-baskets/internal/model"
)

// SkipReason explains why a leg was excluded from the order batch.
type SkipReason string

const (
	SkipNone              SkipReason = ""
	SkipMarketUnavailable SkipReason = "market_unavailable"
	SkipBudgetTooSmall    SkipReason = "budget_too_small"
)

// AllocatedLeg is one leg after allocation against live quotes.
type AllocatedLeg struct {
	Ticker    string
	Title     string
	Direction model.Direction // effective direction, side mode already applied
	Weight    float64         // normalized share of the budget

	PriceCents int
	Price      decimal.Decimal // dollars per contract
	Contracts  int64
	Cost       decimal.Decimal // Price * Contracts, never exceeds the leg's budget share

	Skip   SkipReason
	Reason string // human-readable skip reason, empty when tradeable
}

// Skipped reports whether the leg is excluded from the order batch.
func (l AllocatedLeg) Skipped() bool { return l.Skip != SkipNone }

// allocate computes per-leg contract counts for the given legs.
//
// legs must already have the side mode applied and disabled legs dropped;
// the caller guarantees a positive total weight. Contract counts are the
// floor of leg budget over unit price — allocation never rounds up, so
// the summed cost never exceeds the total budget.
func allocate(legs []model.Leg, quotes map[string]model.Quote, budget decimal.Decimal) []AllocatedLeg {
	var totalWeight float64
	for _, leg := range legs {
		totalWeight += leg.Weight
	}

	out := make([]AllocatedLeg, 0, len(legs))
	for _, leg := range legs {
		norm := leg.Weight / totalWeight
		a := AllocatedLeg{
			Ticker:    leg.Ticker,
			Title:     leg.Title,
			Direction: leg.Direction,
			Weight:    norm,
			Price:     decimal.Zero,
			Cost:      decimal.Zero,
		}

		quote, ok := quotes[leg.Ticker]
		if !ok {
			a.Skip = SkipMarketUnavailable
			a.Reason = "market not found"
			out = append(out, a)
			continue
		}
		if !quote.Tradable() {
			a.Skip = SkipMarketUnavailable
			a.Reason = fmt.Sprintf("market not tradable (status=%s)", quote.Status)
			out = append(out, a)
			continue
		}
		if a.Title == "" {
			a.Title = quote.Title
		}

		cents, ok := quote.PriceForDirection(leg.Direction)
		if !ok {
			a.Skip = SkipMarketUnavailable
			a.Reason = "missing or invalid bid/ask"
			out = append(out, a)
			continue
		}
		a.PriceCents = cents
		a.Price = model.CentsToDollars(cents)

		legBudget := budget.Mul(decimal.NewFromFloat(norm))
		contracts := contractsFor(legBudget, a.Price)
		if contracts < 1 {
			a.Skip = SkipBudgetTooSmall
			a.Reason = "budget too small for at least 1 contract"
			out = append(out, a)
			continue
		}

		a.Contracts = contracts
		a.Cost = a.Price.Mul(decimal.NewFromInt(contracts))
		out = append(out, a)
	}

	return out
}

// contractsFor floors legBudget / price to a whole contract count.
// Div rounds at fixed precision, so a quotient a hair under an integer
// can round up past the budget share; the guard pulls it back.
func contractsFor(legBudget, price decimal.Decimal) int64 {
	contracts := legBudget.Div(price).IntPart()
	if contracts > 0 && price.Mul(decimal.NewFromInt(contracts)).GreaterThan(legBudget) {
		contracts--
	}
	return contracts
}
