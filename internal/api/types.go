package api

import "github.com/rickgao/kalshi-baskets/internal/model"

// ExchangeStatusResponse from GET /exchange/status
type ExchangeStatusResponse struct {
	ExchangeActive      bool   `json:"exchange_active"`
	TradingActive       bool   `json:"trading_active"`
	EstimatedResumeTime string `json:"exchange_estimated_resume_time,omitempty"`
}

// MarketsResponse from GET /markets
type MarketsResponse struct {
	Markets []APIMarket `json:"markets"`
	Cursor  string      `json:"cursor"`
}

// APIMarket represents a market from the Kalshi API.
type APIMarket struct {
	Ticker       string `json:"ticker"`
	EventTicker  string `json:"event_ticker"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	YesSubTitle  string `json:"yes_sub_title"`
	NoSubTitle   string `json:"no_sub_title"`
	RulesPrimary string `json:"rules_primary"`
	Status       string `json:"status"`

	// Best prices in cents
	YesBid    int `json:"yes_bid"`
	YesAsk    int `json:"yes_ask"`
	NoBid     int `json:"no_bid"`
	NoAsk     int `json:"no_ask"`
	LastPrice int `json:"last_price"`

	Volume       int64 `json:"volume"`
	OpenInterest int64 `json:"open_interest"`

	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

// ToQuote converts an APIMarket to the engine's quote type.
func (m *APIMarket) ToQuote() model.Quote {
	return model.Quote{
		Ticker: m.Ticker,
		Title:  m.Title,
		Status: m.Status,
		YesBid: m.YesBid,
		YesAsk: m.YesAsk,
		NoBid:  m.NoBid,
		NoAsk:  m.NoAsk,
	}
}

// GetMarketsOptions configures a GetMarkets request.
type GetMarketsOptions struct {
	Limit       int
	Cursor      string
	EventTicker string
	Tickers     []string
	Status      string
}

// Time-in-force values for order submission.
const (
	TimeInForceIOC = "immediate_or_cancel" // execute-now: fill what crosses, cancel the rest
	TimeInForceGTC = "good_till_cancelled" // resting: remainder stays on the book
)

// OrderRequest is one order inside a batched submission.
// Exactly one of YesPrice / NoPrice is set, matching Side.
type OrderRequest struct {
	Ticker        string `json:"ticker"`
	Side          string `json:"side"`   // "yes" or "no"
	Action        string `json:"action"` // "buy" or "sell"
	Count         int64  `json:"count"`
	YesPrice      *int   `json:"yes_price,omitempty"` // cents
	NoPrice       *int   `json:"no_price,omitempty"`  // cents
	ClientOrderID string `json:"client_order_id"`
	TimeInForce   string `json:"time_in_force,omitempty"`
}

// BatchCreateOrdersRequest to POST /portfolio/orders/batched
type BatchCreateOrdersRequest struct {
	Orders []OrderRequest `json:"orders"`
}

// BatchCreateOrdersResponse from POST /portfolio/orders/batched.
// One entry per submitted order, in submission order; each entry carries
// either an accepted order or a per-order error.
type BatchCreateOrdersResponse struct {
	Orders []BatchOrderResult `json:"orders"`
}

// BatchOrderResult is the per-order outcome within a batch.
type BatchOrderResult struct {
	ClientOrderID string      `json:"client_order_id"`
	Order         *OrderAck   `json:"order"`
	Error         *OrderError `json:"error"`
}

// OrderAck is an accepted order.
type OrderAck struct {
	OrderID       string `json:"order_id"`
	ClientOrderID string `json:"client_order_id"`
	Ticker        string `json:"ticker"`
	Status        string `json:"status"` // e.g. "executed", "resting", "canceled"
}

// OrderError is a per-order rejection within an otherwise accepted batch.
type OrderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrMessage returns the rejection message, or "" if the order was accepted.
func (r BatchOrderResult) ErrMessage() string {
	if r.Error == nil {
		return ""
	}
	if r.Error.Message != "" {
		return r.Error.Message
	}
	return r.Error.Code
}
