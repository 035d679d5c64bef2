package basket

import (
	"github.com/shopspring/decimal"

	"github.com/rickgao/kalshi-baskets/internal/api"
	"github.com/rickgao/kalshi-baskets/internal/model"
)

// MaxLegs is the most legs a basket may carry, set by the venue's
// batched-order cap.
const MaxLegs = api.MaxBatchOrders

// Spec is a fully validated basket specification. Construct one fresh
// per preview/execute call; the engine never stores it.
type Spec struct {
	Legs        []model.Leg
	TotalBudget decimal.Decimal // dollars
	SideMode    model.SideMode
}

// ApplyOverrides returns a copy of legs with per-ticker overrides applied.
// Nil override fields keep the leg's value; override weights are clamped
// to [0, 1] (weights are renormalized at allocation, so the clamp only
// tames outliers).
func ApplyOverrides(legs []model.Leg, overrides map[string]model.LegOverride) []model.Leg {
	out := make([]model.Leg, len(legs))
	for i, leg := range legs {
		o, ok := overrides[leg.Ticker]
		if !ok {
			out[i] = leg
			continue
		}
		if o.Enabled != nil {
			leg.Enabled = *o.Enabled
		}
		if o.Direction != nil && o.Direction.Valid() {
			leg.Direction = *o.Direction
		}
		if o.Weight != nil {
			leg.Weight = clamp01(*o.Weight)
		}
		out[i] = leg
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
