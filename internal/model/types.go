package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Direction is one of the four ways to take a position in a binary market.
type Direction string

const (
	BuyYes  Direction = "BUY_YES"
	BuyNo   Direction = "BUY_NO"
	SellYes Direction = "SELL_YES"
	SellNo  Direction = "SELL_NO"
)

// Directions lists all valid direction values.
var Directions = []Direction{BuyYes, BuyNo, SellYes, SellNo}

// ParseDirection parses a direction token.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case BuyYes, BuyNo, SellYes, SellNo:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q", s)
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	switch d {
	case BuyYes, BuyNo, SellYes, SellNo:
		return true
	}
	return false
}

// IsBuy reports whether the direction opens a position (pays the ask).
func (d Direction) IsBuy() bool { return d == BuyYes || d == BuyNo }

// IsYes reports whether the direction trades the YES side of the market.
func (d Direction) IsYes() bool { return d == BuyYes || d == SellYes }

// SideMode is the basket-level For/Against toggle.
type SideMode string

const (
	SideFor     SideMode = "FOR"
	SideAgainst SideMode = "AGAINST"
)

// ParseSideMode parses a side mode token. Empty means FOR.
func ParseSideMode(s string) (SideMode, error) {
	switch SideMode(s) {
	case SideFor, "":
		return SideFor, nil
	case SideAgainst:
		return SideAgainst, nil
	}
	return "", fmt.Errorf("invalid side mode %q", s)
}

// againstDirection maps each direction to its opposite side.
var againstDirection = map[Direction]Direction{
	BuyYes:  BuyNo,
	BuyNo:   BuyYes,
	SellYes: SellNo,
	SellNo:  SellYes,
}

// Apply returns the effective direction for d under the given side mode.
// It is a pure lookup: AGAINST flips the side, FOR is the identity.
// Applying AGAINST twice returns the original direction.
func (mode SideMode) Apply(d Direction) Direction {
	if mode != SideAgainst {
		return d
	}
	if flipped, ok := againstDirection[d]; ok {
		return flipped
	}
	return d
}

// Leg is one market position inside a basket.
type Leg struct {
	Ticker      string    `json:"market_ticker" yaml:"market_ticker"`
	EventTicker string    `json:"event_ticker" yaml:"event_ticker"`
	Title       string    `json:"title" yaml:"title"`
	Direction   Direction `json:"direction" yaml:"direction"`
	Weight      float64   `json:"weight" yaml:"weight"`
	Enabled     bool      `json:"enabled" yaml:"enabled"`
}

// legDecode mirrors Leg without its unmarshal methods, so decoding can
// start from non-zero defaults.
type legDecode Leg

// UnmarshalJSON decodes a leg. An omitted enabled field means the leg
// trades; only an explicit false disables it.
func (l *Leg) UnmarshalJSON(data []byte) error {
	aux := legDecode{Enabled: true}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = Leg(aux)
	return nil
}

// UnmarshalYAML decodes a leg with the same enabled default as JSON.
func (l *Leg) UnmarshalYAML(value *yaml.Node) error {
	aux := legDecode{Enabled: true}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*l = Leg(aux)
	return nil
}

// LegOverride selectively replaces fields of a leg before allocation.
// Nil fields keep the leg's original value.
type LegOverride struct {
	Enabled   *bool      `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Direction *Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
	Weight    *float64   `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// Quote price bounds. A market quoting at 0 or 100 cents has no
// tradeable counterparty, so those prices mark the market unavailable.
const (
	MinPriceCents = 1
	MaxPriceCents = 99
)

// Quote holds the current best prices for a market, in cents.
type Quote struct {
	Ticker string
	Title  string
	Status string

	YesBid int
	YesAsk int
	NoBid  int
	NoAsk  int
}

// tradableStatuses are the venue statuses under which orders are accepted.
var tradableStatuses = map[string]bool{
	"active": true,
	"open":   true,
}

// Tradable reports whether the market accepts orders.
func (q Quote) Tradable() bool {
	return tradableStatuses[q.Status]
}

// PriceForDirection returns the execution price in cents for the given
// direction: buys pay the ask, sells receive the bid. ok is false when
// the price is outside [MinPriceCents, MaxPriceCents], in which case the
// market is treated as unavailable.
func (q Quote) PriceForDirection(d Direction) (cents int, ok bool) {
	switch d {
	case BuyYes:
		cents = q.YesAsk
	case SellYes:
		cents = q.YesBid
	case BuyNo:
		cents = q.NoAsk
	case SellNo:
		cents = q.NoBid
	default:
		return 0, false
	}
	if cents < MinPriceCents || cents > MaxPriceCents {
		return 0, false
	}
	return cents, true
}

// CentsToDollars converts a cent price to a decimal dollar amount.
func CentsToDollars(cents int) decimal.Decimal {
	return decimal.New(int64(cents), -2)
}
