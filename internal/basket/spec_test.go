package basket

import (
	"testing"

	"github.com/rickgao/kalshi-baskets/internal/model"
)

func boolPtr(b bool) *bool                      { return &b }
func floatPtr(f float64) *float64               { return &f }
func dirPtr(d model.Direction) *model.Direction { return &d }

func TestApplyOverrides(t *testing.T) {
	base := []model.Leg{
		{Ticker: "MKT-A", Direction: model.BuyYes, Weight: 0.5, Enabled: true},
		{Ticker: "MKT-B", Direction: model.BuyYes, Weight: 0.5, Enabled: true},
	}

	t.Run("disable and reweight", func(t *testing.T) {
		out := ApplyOverrides(base, map[string]model.LegOverride{
			"MKT-A": {Enabled: boolPtr(false)},
			"MKT-B": {Weight: floatPtr(0.9)},
		})
		if out[0].Enabled {
			t.Error("MKT-A should be disabled")
		}
		if out[1].Weight != 0.9 {
			t.Errorf("MKT-B weight = %v, want 0.9", out[1].Weight)
		}
	})

	t.Run("direction override", func(t *testing.T) {
		out := ApplyOverrides(base, map[string]model.LegOverride{
			"MKT-A": {Direction: dirPtr(model.SellYes)},
		})
		if out[0].Direction != model.SellYes {
			t.Errorf("direction = %s, want SELL_YES", out[0].Direction)
		}
	})

	t.Run("invalid direction ignored", func(t *testing.T) {
		bad := model.Direction("SHORT")
		out := ApplyOverrides(base, map[string]model.LegOverride{
			"MKT-A": {Direction: &bad},
		})
		if out[0].Direction != model.BuyYes {
			t.Errorf("direction = %s, want original BUY_YES", out[0].Direction)
		}
	})

	t.Run("weight clamped", func(t *testing.T) {
		out := ApplyOverrides(base, map[string]model.LegOverride{
			"MKT-A": {Weight: floatPtr(-1)},
			"MKT-B": {Weight: floatPtr(5)},
		})
		if out[0].Weight != 0 {
			t.Errorf("MKT-A weight = %v, want 0", out[0].Weight)
		}
		if out[1].Weight != 1 {
			t.Errorf("MKT-B weight = %v, want 1", out[1].Weight)
		}
	})

	t.Run("unknown ticker untouched", func(t *testing.T) {
		out := ApplyOverrides(base, map[string]model.LegOverride{
			"MKT-MISSING": {Enabled: boolPtr(false)},
		})
		for i := range base {
			if out[i] != base[i] {
				t.Errorf("leg %d changed: %+v", i, out[i])
			}
		}
	})

	t.Run("input never mutated", func(t *testing.T) {
		_ = ApplyOverrides(base, map[string]model.LegOverride{
			"MKT-A": {Enabled: boolPtr(false), Weight: floatPtr(0.1)},
		})
		if !base[0].Enabled || base[0].Weight != 0.5 {
			t.Errorf("input slice mutated: %+v", base[0])
		}
	})
}
