package api

import (
	"context"
	"errors"
	"fmt"
)

// MaxBatchOrders is the venue's hard cap on orders per batched submission.
const MaxBatchOrders = 20

// ErrTooManyOrders is returned when a batch exceeds MaxBatchOrders. The
// batch is rejected client-side, never truncated and never sent.
var ErrTooManyOrders = errors.New("too many orders in batch")

// BatchCreateOrders submits up to MaxBatchOrders orders as one logical
// request to POST /portfolio/orders/batched.
//
// The call is issued exactly once. The venue may accept some orders and
// reject others; per-order outcomes are in the response, in submission
// order. A transport error after dispatch leaves the batch in an unknown
// state — this client does not guess, it reports the error to the caller.
func (c *Client) BatchCreateOrders(ctx context.Context, orders []OrderRequest) (*BatchCreateOrdersResponse, error) {
	if len(orders) == 0 {
		return nil, errors.New("no orders to submit")
	}
	if len(orders) > MaxBatchOrders {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyOrders, len(orders), MaxBatchOrders)
	}

	var resp BatchCreateOrdersResponse
	req := BatchCreateOrdersRequest{Orders: orders}
	if err := c.post(ctx, "/portfolio/orders/batched", req, &resp); err != nil {
		return nil, fmt.Errorf("batch create orders: %w", err)
	}

	return &resp, nil
}
