package candidate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/kalshi-baskets/internal/api"
)

// MarketLister is the gateway surface the registry needs.
// *api.Client satisfies it.
type MarketLister interface {
	GetOpenMarkets(ctx context.Context, limit int) ([]api.APIMarket, error)
}

// Config holds candidate registry configuration.
type Config struct {
	RefreshInterval time.Duration
	MaxMarkets      int // cap on the universe fetched per refresh
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 5 * time.Minute,
		MaxMarkets:      50000,
	}
}

// Registry keeps a Set of tradeable tickers fresh in the background.
// One-shot callers should build a Set directly; the registry is for
// long-lived embedders that validate many proposals over time.
type Registry struct {
	cfg    Config
	lister MarketLister
	logger *slog.Logger

	mu  sync.RWMutex
	set *Set

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a Registry over the given lister.
func NewRegistry(cfg Config, lister MarketLister, opts ...RegistryOption) *Registry {
	r := &Registry{
		cfg:    cfg,
		lister: lister,
		logger: slog.Default(),
		set:    NewSet(nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start performs a blocking initial load, then refreshes in the
// background until Stop or ctx cancellation.
func (r *Registry) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	if err := r.refresh(runCtx); err != nil {
		cancel()
		return err
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.refreshLoop(runCtx)
	}()

	r.logger.Info("candidate registry started", "markets", r.Current().Len())
	return nil
}

// Stop gracefully shuts down the refresh loop.
func (r *Registry) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("candidate registry stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Current returns the latest set. The returned set is immutable; a
// refresh swaps in a new one rather than mutating it.
func (r *Registry) Current() *Set {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.set
}

func (r *Registry) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A failed refresh keeps the previous set; the next tick retries.
			if err := r.refresh(ctx); err != nil {
				r.logger.Error("candidate refresh failed", "err", err)
			}
		}
	}
}

func (r *Registry) refresh(ctx context.Context) error {
	start := time.Now()

	markets, err := r.lister.GetOpenMarkets(ctx, r.cfg.MaxMarkets)
	if err != nil {
		return err
	}

	set := NewSet(markets)
	r.mu.Lock()
	r.set = set
	r.mu.Unlock()

	r.logger.Debug("candidate set refreshed",
		"markets", set.Len(),
		"duration", time.Since(start),
	)
	return nil
}
