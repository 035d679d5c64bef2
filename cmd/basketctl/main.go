// Command basketctl previews and executes thematic market baskets.
//
// Without -execute it is a pure dry run: it fetches live quotes, prints
// the allocation and places nothing. With -execute it submits the
// resulting orders as one batch, which requires signing credentials.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/kalshi-baskets/internal/api"
	"github.com/rickgao/kalshi-baskets/internal/auth"
	"github.com/rickgao/kalshi-baskets/internal/basket"
	"github.com/rickgao/kalshi-baskets/internal/candidate"
	"github.com/rickgao/kalshi-baskets/internal/config"
	"github.com/rickgao/kalshi-baskets/internal/metrics"
	"github.com/rickgao/kalshi-baskets/internal/model"
	"github.com/rickgao/kalshi-baskets/internal/theme"
	"github.com/rickgao/kalshi-baskets/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional; defaults target the demo venue)")
	themesPath := flag.String("themes", "", "path to themes file (overrides config)")
	themeID := flag.String("theme", "", "theme to preview or execute; empty lists available themes")
	proposalPath := flag.String("proposal", "", "JSON proposal file to validate and trade instead of a theme")
	budgetStr := flag.String("budget", "100", "total budget in dollars")
	sideStr := flag.String("side", "FOR", "side mode: FOR or AGAINST")
	resting := flag.Bool("resting", false, "submit resting (good-till-cancelled) orders")
	execute := flag.Bool("execute", false, "place orders (default is preview only)")
	verbose := flag.Bool("v", false, "debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Set up structured logging
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	opts := runOptions{
		configPath:   *configPath,
		themesPath:   *themesPath,
		themeID:      *themeID,
		proposalPath: *proposalPath,
		budget:       *budgetStr,
		side:         *sideStr,
		resting:      *resting,
		execute:      *execute,
	}
	if err := run(logger, opts); err != nil {
		logger.Error("basketctl failed", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	configPath   string
	themesPath   string
	themeID      string
	proposalPath string
	budget       string
	side         string
	resting      bool
	execute      bool
}

func run(logger *slog.Logger, opts runOptions) error {
	// Load configuration
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadAndValidate(opts.configPath)
		if err != nil {
			return err
		}
	} else {
		cfg = config.Default()
	}

	themesPath := opts.themesPath
	if themesPath == "" {
		themesPath = cfg.Themes.Path
	}
	if themesPath == "" {
		themesPath = "themes.json"
	}

	budget, err := decimal.NewFromString(opts.budget)
	if err != nil {
		return fmt.Errorf("invalid budget %q: %w", opts.budget, err)
	}
	side, err := model.ParseSideMode(opts.side)
	if err != nil {
		return err
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Load signing credentials if configured. Preview works without
	// them; execute does not.
	var creds *auth.Credentials
	if cfg.API.HasCredentials() {
		if cfg.API.PrivateKeyPEM != "" {
			creds, err = auth.CredentialsFromPEM(cfg.API.APIKeyID, cfg.API.PrivateKeyPEM)
		} else {
			creds, err = auth.LoadCredentials(cfg.API.APIKeyID, cfg.API.PrivateKeyPath)
		}
		if err != nil {
			return fmt.Errorf("load credentials: %w", err)
		}
		logger.Info("credentials loaded", "key_id", cfg.API.APIKeyID)
	}
	if opts.execute && creds == nil {
		return fmt.Errorf("execute requires api.api_key_id and a private key in config")
	}

	client := api.NewClient(
		cfg.API.RestURL,
		creds,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, time.Second),
	)

	// Optional metrics listener
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		go func() {
			logger.Info("starting metrics server", "addr", addr, "path", cfg.Metrics.Path)
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	// Resolve the basket legs: from a validated proposal file or a theme.
	var name string
	var legs []model.Leg
	switch {
	case opts.proposalPath != "":
		name = opts.proposalPath
		legs, err = validateProposal(ctx, logger, client, cfg, opts.proposalPath)
		if err != nil {
			return err
		}
	default:
		store, err := theme.Load(themesPath)
		if err != nil {
			return err
		}
		if opts.themeID == "" {
			return listThemes(store)
		}
		th, ok := store.ByID(opts.themeID)
		if !ok {
			return fmt.Errorf("theme %q not found in %s (run without -theme to list)", opts.themeID, themesPath)
		}
		name = fmt.Sprintf("%s (%s)", th.Name, th.ID)
		legs = th.Legs
	}

	spec := basket.Spec{
		Legs:        legs,
		TotalBudget: budget,
		SideMode:    side,
	}
	engine := basket.NewEngine(client,
		basket.WithLogger(logger),
		basket.WithRestingOrders(opts.resting || cfg.Basket.RestingOrders),
	)

	preview, err := engine.Preview(ctx, spec)
	if err != nil {
		return fmt.Errorf("preview %s: %w", name, err)
	}
	printPreview(name, preview)

	if !opts.execute {
		fmt.Println("\ndry run; pass -execute to place orders")
		return nil
	}

	// Preflight: the venue rejects all orders while trading is halted,
	// so fail the whole basket up front instead of per leg.
	status, err := client.GetExchangeStatus(ctx)
	if err != nil {
		return fmt.Errorf("check exchange status: %w", err)
	}
	if !status.TradingActive {
		return fmt.Errorf("venue is not accepting orders (exchange_active=%v, trading_active=%v)",
			status.ExchangeActive, status.TradingActive)
	}

	result, err := engine.Execute(ctx, spec)
	if err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	printResult(result)
	if !result.Succeeded() {
		return fmt.Errorf("basket %s: %s", result.BasketID, result.Message)
	}
	return nil
}

// validateProposal reads an untrusted proposal file and validates it
// against the venue's current open markets.
func validateProposal(ctx context.Context, logger *slog.Logger, client *api.Client, cfg *config.Config, path string) ([]model.Leg, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read proposal: %w", err)
	}
	var proposal candidate.Proposal
	if err := json.Unmarshal(data, &proposal); err != nil {
		return nil, fmt.Errorf("parse proposal %s: %w", path, err)
	}

	logger.Info("fetching open markets for validation", "max", cfg.Candidate.MaxMarkets)
	markets, err := client.GetOpenMarkets(ctx, cfg.Candidate.MaxMarkets)
	if err != nil {
		return nil, fmt.Errorf("fetch open markets: %w", err)
	}
	set := candidate.NewSet(markets)

	legs, report := candidate.Validate(proposal, set)
	logger.Info("proposal validated",
		"accepted", report.Accepted,
		"dropped", len(report.Dropped),
		"coerced_directions", report.CoercedDirections,
		"clamped_weights", report.ClampedWeights,
		"truncated", report.Truncated,
	)
	for _, ticker := range report.Dropped {
		fmt.Printf("dropped %s: not a tradeable market\n", ticker)
	}
	return legs, nil
}

func listThemes(store *theme.Store) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "THEME ID\tNAME\tLEGS")
	for _, th := range store.All() {
		fmt.Fprintf(w, "%s\t%s\t%d\n", th.ID, th.Name, len(th.Legs))
	}
	return w.Flush()
}

func printPreview(name string, p *basket.PreviewResult) {
	fmt.Printf("%s\nbudget $%s\n\n", name, p.TotalBudget)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tDIRECTION\tWEIGHT\tPRICE\tCONTRACTS\tCOST\tSKIP")
	for _, leg := range p.Legs {
		if leg.Skipped() {
			fmt.Fprintf(w, "%s\t%s\t%.3f\t-\t-\t-\t%s\n",
				leg.Ticker, leg.Direction, leg.Weight, leg.Reason)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%dc\t%d\t$%s\t\n",
			leg.Ticker, leg.Direction, leg.Weight, leg.PriceCents, leg.Contracts, leg.Cost)
	}
	w.Flush()

	fmt.Printf("\nestimated cost $%s for %d contracts (%d legs skipped)\n",
		p.EstTotalCost, p.TotalContracts, p.SkippedLegs)
}

func printResult(r *basket.ExecuteResult) {
	fmt.Printf("\nbasket %s: %s\n", r.BasketID, r.Message)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tCONTRACTS\tORDER ID\tSTATUS\tERROR")
	for _, leg := range r.Legs {
		switch {
		case leg.Skipped():
			fmt.Fprintf(w, "%s\t-\t-\tskipped\t%s\n", leg.Ticker, leg.Reason)
		case leg.Error != "":
			fmt.Fprintf(w, "%s\t%d\t-\tfailed\t%s\n", leg.Ticker, leg.Contracts, leg.Error)
		default:
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t\n", leg.Ticker, leg.Contracts, leg.OrderID, leg.OrderStatus)
		}
	}
	w.Flush()

	fmt.Printf("submitted %d, acked %d, failed %d, skipped %d\n",
		r.Submitted, r.Acked, r.Failed, r.Skipped)
}
