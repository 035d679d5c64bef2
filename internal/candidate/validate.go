package candidate

import (
	"sort"

	"github.com/rickgao/kalshi-baskets/internal/basket"
	"github.com/rickgao/kalshi-baskets/internal/model"
)

// ProposedLeg is one untrusted leg: a ticker, a direction token and a
// weight, all exactly as the upstream source produced them.
type ProposedLeg struct {
	Ticker    string  `json:"market_ticker" yaml:"market_ticker"`
	Direction string  `json:"direction" yaml:"direction"`
	Weight    float64 `json:"weight" yaml:"weight"`
}

// Proposal is an untrusted basket proposal.
type Proposal struct {
	Legs []ProposedLeg `json:"legs" yaml:"legs"`
}

// Report summarizes what validation changed. Validation never fails a
// proposal whole; everything it drops or rewrites is counted here.
type Report struct {
	Accepted          int
	Dropped           []string // tickers removed: unknown market or duplicate
	CoercedDirections int      // unrecognized tokens defaulted to BUY_YES
	ClampedWeights    int      // weights pulled into [0, 1]
	Truncated         int      // legs cut by the batch cap
}

// Clean reports whether validation passed the proposal through unchanged.
func (r Report) Clean() bool {
	return len(r.Dropped) == 0 && r.CoercedDirections == 0 &&
		r.ClampedWeights == 0 && r.Truncated == 0
}

// Validate filters and normalizes a proposal against the tradeable set.
//
// Unknown tickers and duplicates are dropped. An unrecognized direction
// token becomes BUY_YES. Weights are clamped to [0, 1]. If more legs
// survive than a batch can carry, the heaviest legs win; ties keep the
// proposal's order, and the survivors come back in proposal order.
func Validate(p Proposal, set *Set) ([]model.Leg, Report) {
	var report Report

	legs := make([]model.Leg, 0, len(p.Legs))
	seen := make(map[string]bool, len(p.Legs))
	for _, pl := range p.Legs {
		if !set.Contains(pl.Ticker) || seen[pl.Ticker] {
			report.Dropped = append(report.Dropped, pl.Ticker)
			continue
		}
		seen[pl.Ticker] = true

		dir, err := model.ParseDirection(pl.Direction)
		if err != nil {
			dir = model.BuyYes
			report.CoercedDirections++
		}

		weight := pl.Weight
		if weight < 0 {
			weight = 0
			report.ClampedWeights++
		} else if weight > 1 {
			weight = 1
			report.ClampedWeights++
		}

		leg := model.Leg{
			Ticker:    pl.Ticker,
			Direction: dir,
			Weight:    weight,
			Enabled:   true,
		}
		if meta, ok := set.Get(pl.Ticker); ok {
			leg.EventTicker = meta.EventTicker
			leg.Title = meta.Title
		}
		legs = append(legs, leg)
	}

	if len(legs) > basket.MaxLegs {
		report.Truncated = len(legs) - basket.MaxLegs
		legs = truncateByWeight(legs, basket.MaxLegs)
	}

	report.Accepted = len(legs)
	return legs, report
}

// truncateByWeight keeps the n heaviest legs, deterministically: equal
// weights are broken by proposal order, and the kept legs are returned
// in proposal order.
func truncateByWeight(legs []model.Leg, n int) []model.Leg {
	idx := make([]int, len(legs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return legs[idx[a]].Weight > legs[idx[b]].Weight
	})

	keep := idx[:n]
	sort.Ints(keep)

	out := make([]model.Leg, 0, n)
	for _, i := range keep {
		out = append(out, legs[i])
	}
	return out
}
