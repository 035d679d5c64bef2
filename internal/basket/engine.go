package basket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rickgao/kalshi-baskets/internal/api"
	"github.com/rickgao/kalshi-baskets/internal/metrics"
	"github.com/rickgao/kalshi-baskets/internal/model"
)

// Gateway is the venue surface the engine needs: one batched quote read
// and one batched order write. *api.Client satisfies it.
type Gateway interface {
	GetQuotes(ctx context.Context, tickers []string) (map[string]model.Quote, error)
	BatchCreateOrders(ctx context.Context, orders []api.OrderRequest) (*api.BatchCreateOrdersResponse, error)
}

// Engine turns basket specs into allocations and batched orders.
// It holds no per-call state; a single Engine is safe for concurrent use.
type Engine struct {
	gw      Gateway
	logger  *slog.Logger
	resting bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRestingOrders makes Execute submit good-till-cancelled orders that
// rest on the book instead of immediate-or-cancel.
func WithRestingOrders(resting bool) EngineOption {
	return func(e *Engine) {
		e.resting = resting
	}
}

// NewEngine creates an Engine over the given gateway.
func NewEngine(gw Gateway, opts ...EngineOption) *Engine {
	e := &Engine{
		gw:     gw,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PreviewResult is a dry-run allocation: every enabled leg with its
// price, contract count and cost, or its skip reason.
type PreviewResult struct {
	TotalBudget    decimal.Decimal
	Legs           []AllocatedLeg
	EstTotalCost   decimal.Decimal
	TotalContracts int64
	SkippedLegs    int
}

// ExecutedLeg is the per-leg outcome of an execution. A skipped leg
// carries its skip reason and no order fields; a submitted leg carries
// either an order ID or the venue's rejection message.
type ExecutedLeg struct {
	AllocatedLeg

	ClientOrderID string
	OrderID       string
	OrderStatus   string // venue status, e.g. "executed" or "resting"
	Error         string // per-order rejection, empty on success
}

// ExecuteResult is the outcome of a basket execution. Legs preserves the
// spec's leg order and contains every enabled leg exactly once — an
// execution never silently drops a leg.
type ExecuteResult struct {
	BasketID    string
	TotalBudget decimal.Decimal
	Legs        []ExecutedLeg

	Submitted int // orders sent to the venue
	Acked     int
	Failed    int
	Skipped   int
	Message   string
}

// Succeeded reports whether every submitted order was accepted.
func (r *ExecuteResult) Succeeded() bool {
	return r.Submitted > 0 && r.Failed == 0
}

// Preview computes the allocation for spec against live quotes without
// placing orders.
func (e *Engine) Preview(ctx context.Context, spec Spec) (*PreviewResult, error) {
	result, err := e.allocateSpec(ctx, spec)
	if err != nil {
		return nil, err
	}

	metrics.BasketPreviews.Inc()
	e.logger.Info("basket preview",
		"legs", len(result.Legs),
		"skipped", result.SkippedLegs,
		"est_cost", result.EstTotalCost,
		"contracts", result.TotalContracts,
	)
	return result, nil
}

// Execute allocates spec against live quotes and submits the resulting
// orders as one batch.
//
// Caller obligations: two concurrent Execute calls against the same
// account are NOT deduplicated here — at-most-one-execution-per-intent
// belongs to the orchestration layer. Once the batch call is dispatched
// there is no cancellation: partial venue-side acceptance cannot be
// safely unwound, so an abandoned context does not undo anything.
func (e *Engine) Execute(ctx context.Context, spec Spec) (*ExecuteResult, error) {
	pre, err := e.allocateSpec(ctx, spec)
	if err != nil {
		metrics.BasketExecutes.WithLabelValues("rejected").Inc()
		return nil, err
	}

	basketID := uuid.New().String()[:8]

	orders := make([]api.OrderRequest, 0, len(pre.Legs))
	byClientID := make(map[string]int) // client order ID -> leg index
	tif := api.TimeInForceIOC
	if e.resting {
		tif = api.TimeInForceGTC
	}

	legs := make([]ExecutedLeg, len(pre.Legs))
	for i, leg := range pre.Legs {
		legs[i] = ExecutedLeg{AllocatedLeg: leg}
		if leg.Skipped() {
			continue
		}

		clientID := fmt.Sprintf("%s:%s:%s", basketID, leg.Ticker, uuid.New().String()[:8])
		legs[i].ClientOrderID = clientID
		byClientID[clientID] = i

		order := api.OrderRequest{
			Ticker:        leg.Ticker,
			Count:         leg.Contracts,
			ClientOrderID: clientID,
			TimeInForce:   tif,
		}
		if leg.Direction.IsBuy() {
			order.Action = "buy"
		} else {
			order.Action = "sell"
		}
		price := leg.PriceCents
		if leg.Direction.IsYes() {
			order.Side = "yes"
			order.YesPrice = &price
		} else {
			order.Side = "no"
			order.NoPrice = &price
		}
		orders = append(orders, order)
	}

	if len(orders) == 0 {
		metrics.BasketExecutes.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: all legs skipped", ErrEmptyBasket)
	}

	e.logger.Info("submitting basket",
		"basket_id", basketID,
		"orders", len(orders),
		"skipped", pre.SkippedLegs,
		"time_in_force", tif,
	)

	resp, err := e.gw.BatchCreateOrders(ctx, orders)
	if err != nil {
		metrics.BasketExecutes.WithLabelValues("gateway_error").Inc()
		return nil, fmt.Errorf("submit basket %s: %w", basketID, err)
	}

	result := &ExecuteResult{
		BasketID:    basketID,
		TotalBudget: spec.TotalBudget,
		Legs:        legs,
		Submitted:   len(orders),
		Skipped:     pre.SkippedLegs,
	}

	matched := make(map[int]bool, len(resp.Orders))
	for _, or := range resp.Orders {
		i, ok := byClientID[or.ClientOrderID]
		if !ok {
			e.logger.Warn("unmatched order in batch response", "client_order_id", or.ClientOrderID)
			continue
		}
		matched[i] = true
		if or.Order != nil && or.Error == nil {
			result.Legs[i].OrderID = or.Order.OrderID
			result.Legs[i].OrderStatus = or.Order.Status
			result.Acked++
			metrics.OrdersSubmitted.WithLabelValues("acked").Inc()
		} else {
			result.Legs[i].Error = or.ErrMessage()
			result.Failed++
			metrics.OrdersSubmitted.WithLabelValues("failed").Inc()
		}
	}

	// A leg the venue did not answer for still gets a visible outcome.
	for clientID, i := range byClientID {
		if !matched[i] {
			result.Legs[i].Error = "no response entry for order " + clientID
			result.Failed++
			metrics.OrdersSubmitted.WithLabelValues("failed").Inc()
		}
	}

	if result.Failed == 0 {
		result.Message = "batch submitted"
	} else {
		result.Message = "some orders failed; check per-leg results"
	}

	metrics.BasketExecutes.WithLabelValues("submitted").Inc()
	e.logger.Info("basket submitted",
		"basket_id", basketID,
		"acked", result.Acked,
		"failed", result.Failed,
	)

	return result, nil
}

// allocateSpec runs the shared preview/execute pipeline: validate,
// apply side mode, normalize, fetch quotes once, allocate.
func (e *Engine) allocateSpec(ctx context.Context, spec Spec) (*PreviewResult, error) {
	if len(spec.Legs) > MaxLegs {
		return nil, fmt.Errorf("%w: %d legs (max %d)", ErrTooManyLegs, len(spec.Legs), MaxLegs)
	}
	if !spec.TotalBudget.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidBudget, spec.TotalBudget)
	}

	// Apply the side mode exactly once, into fresh copies. The spec is
	// never mutated, so repeated calls cannot double-flip.
	var working []model.Leg
	var totalWeight float64
	for _, leg := range spec.Legs {
		if !leg.Enabled {
			continue
		}
		leg.Direction = spec.SideMode.Apply(leg.Direction)
		working = append(working, leg)
		totalWeight += leg.Weight
	}

	if len(working) == 0 {
		return nil, fmt.Errorf("%w: no enabled legs", ErrEmptyBasket)
	}
	if totalWeight <= 0 {
		return nil, fmt.Errorf("%w: no enabled leg has positive weight", ErrEmptyBasket)
	}

	tickers := make([]string, 0, len(working))
	seen := make(map[string]bool, len(working))
	for _, leg := range working {
		if !seen[leg.Ticker] {
			seen[leg.Ticker] = true
			tickers = append(tickers, leg.Ticker)
		}
	}

	quotes, err := e.gw.GetQuotes(ctx, tickers)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}

	legs := allocate(working, quotes, spec.TotalBudget)

	result := &PreviewResult{
		TotalBudget:  spec.TotalBudget,
		Legs:         legs,
		EstTotalCost: decimal.Zero,
	}
	for _, leg := range legs {
		if leg.Skipped() {
			result.SkippedLegs++
			metrics.LegsSkipped.WithLabelValues(string(leg.Skip)).Inc()
			continue
		}
		result.EstTotalCost = result.EstTotalCost.Add(leg.Cost)
		result.TotalContracts += leg.Contracts
	}

	return result, nil
}
