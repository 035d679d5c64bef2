package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rickgao/kalshi-baskets/internal/model"
)

// GetExchangeStatus fetches the venue's trading status.
func (c *Client) GetExchangeStatus(ctx context.Context) (*ExchangeStatusResponse, error) {
	var resp ExchangeStatusResponse
	if err := c.get(ctx, "/exchange/status", nil, &resp); err != nil {
		return nil, fmt.Errorf("get exchange status: %w", err)
	}
	return &resp, nil
}

// GetMarkets fetches a page of markets.
func (c *Client) GetMarkets(ctx context.Context, opts GetMarketsOptions) (*MarketsResponse, error) {
	query := url.Values{}

	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}
	if opts.EventTicker != "" {
		query.Set("event_ticker", opts.EventTicker)
	}
	if len(opts.Tickers) > 0 {
		query.Set("tickers", strings.Join(opts.Tickers, ","))
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}

	var resp MarketsResponse
	if err := c.get(ctx, "/markets", query, &resp); err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}

	return &resp, nil
}

// GetMarketsByTickers batch-fetches market snapshots for a set of tickers.
// A ticker the venue no longer lists (closed, delisted) is simply absent
// from the result; the caller decides what that means.
func (c *Client) GetMarketsByTickers(ctx context.Context, tickers []string) (map[string]APIMarket, error) {
	out := make(map[string]APIMarket, len(tickers))
	if len(tickers) == 0 {
		return out, nil
	}

	resp, err := c.GetMarkets(ctx, GetMarketsOptions{Tickers: tickers})
	if err != nil {
		return nil, err
	}

	for _, m := range resp.Markets {
		out[m.Ticker] = m
	}

	return out, nil
}

// GetQuotes fetches current best prices for a set of tickers. Missing
// tickers are absent from the map, never an error.
func (c *Client) GetQuotes(ctx context.Context, tickers []string) (map[string]model.Quote, error) {
	markets, err := c.GetMarketsByTickers(ctx, tickers)
	if err != nil {
		return nil, err
	}

	quotes := make(map[string]model.Quote, len(markets))
	for ticker, m := range markets {
		quotes[ticker] = m.ToQuote()
	}

	return quotes, nil
}

// GetOpenMarkets fetches up to limit currently open markets, paginating
// through results. Used to build the candidate universe.
func (c *Client) GetOpenMarkets(ctx context.Context, limit int) ([]APIMarket, error) {
	const pageSize = 1000

	var all []APIMarket
	opts := GetMarketsOptions{Status: "open", Limit: pageSize}
	if limit > 0 && limit < pageSize {
		opts.Limit = limit
	}

	for {
		resp, err := c.GetMarkets(ctx, opts)
		if err != nil {
			return nil, err
		}

		all = append(all, resp.Markets...)

		if resp.Cursor == "" || len(resp.Markets) == 0 {
			break
		}
		if limit > 0 && len(all) >= limit {
			break
		}
		opts.Cursor = resp.Cursor
	}

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	return all, nil
}
