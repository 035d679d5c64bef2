package candidate

import (
	"time"

	"github.com/rickgao/kalshi-baskets/internal/api"
)

// Meta is the market metadata kept per tradeable ticker.
type Meta struct {
	Ticker      string
	EventTicker string
	Title       string
	Status      string
	CloseTime   string // RFC 3339, as the venue reports it
}

// Set is an immutable membership set of tradeable tickers. Build one
// with NewSet and share it freely; lookups need no locking.
type Set struct {
	markets map[string]Meta
	builtAt time.Time
}

// NewSet builds a Set from a gateway market listing. Markets that are
// not open for trading are excluded.
func NewSet(markets []api.APIMarket) *Set {
	s := &Set{
		markets: make(map[string]Meta, len(markets)),
		builtAt: time.Now(),
	}
	for _, m := range markets {
		if !m.ToQuote().Tradable() {
			continue
		}
		s.markets[m.Ticker] = Meta{
			Ticker:      m.Ticker,
			EventTicker: m.EventTicker,
			Title:       m.Title,
			Status:      m.Status,
			CloseTime:   m.CloseTime,
		}
	}
	return s
}

// Contains reports whether ticker is a tradeable market.
func (s *Set) Contains(ticker string) bool {
	_, ok := s.markets[ticker]
	return ok
}

// Get returns the metadata for ticker.
func (s *Set) Get(ticker string) (Meta, bool) {
	m, ok := s.markets[ticker]
	return m, ok
}

// Len returns the number of tradeable tickers.
func (s *Set) Len() int { return len(s.markets) }

// BuiltAt returns when the set was constructed.
func (s *Set) BuiltAt() time.Time { return s.builtAt }
