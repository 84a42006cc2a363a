// farmctl is a command-line client for the satoshi-farm marketplace
// contract.
//
// Usage:
//
//	farmctl [flags] list                     show all listed items
//	farmctl [flags] balance                  show unharvested proceeds
//	farmctl [flags] sell -name N -price P    list a new item
//	farmctl [flags] buy -item ID -qty Q      buy units of an item
//	farmctl [flags] harvest                  withdraw accrued proceeds
//	farmctl [flags] watch                    keep the view synchronized
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stxfarm/farm-market/internal/chain"
	"github.com/stxfarm/farm-market/internal/config"
	"github.com/stxfarm/farm-market/internal/market"
	"github.com/stxfarm/farm-market/internal/syncer"
	"github.com/stxfarm/farm-market/internal/version"
	"github.com/stxfarm/farm-market/internal/wallet"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults pin the public testnet)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("farmctl", version.String())
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: farmctl [flags] <list|balance|sell|buy|harvest|watch>")
		os.Exit(2)
	}
	command := flag.Arg(0)
	args := flag.Args()[1:]

	app := newApp(cfg, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var runErr error
	switch command {
	case "list":
		runErr = app.runList(ctx)
	case "balance":
		runErr = app.runBalance(ctx)
	case "sell":
		runErr = app.runSell(ctx, args)
	case "buy":
		runErr = app.runBuy(ctx, args)
	case "harvest":
		runErr = app.runHarvest(ctx)
	case "watch":
		runErr = app.runWatch(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		os.Exit(2)
	}

	if runErr != nil {
		// Write failures leave the view untouched; surface the reason
		// and let the operator retry explicitly.
		logger.Error("command failed", "command", command, "error", runErr)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.ClientConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadAndValidate(path)
}

// app bundles the wired components for one invocation.
type app struct {
	cfg      *config.ClientConfig
	logger   *slog.Logger
	contract chain.ContractRef
	reader   *chain.Client
	repo     *market.Repository
	identity *wallet.Identity
	bridge   *wallet.Bridge
}

func newApp(cfg *config.ClientConfig, logger *slog.Logger) *app {
	contract := chain.ContractRef{
		Network: cfg.Contract.Network,
		Address: cfg.Contract.Address,
		Name:    cfg.Contract.Name,
	}

	reader := chain.NewClient(cfg.Node.URL, contract,
		chain.WithLogger(logger),
		chain.WithTimeout(cfg.Node.Timeout),
	)

	// Reads need a sender principal even without a wallet; the contract
	// deployer serves as the anonymous default.
	readSender := cfg.Wallet.Sender
	if readSender == "" {
		readSender = cfg.Contract.Address
	}

	repo := market.NewRepository(reader, readSender,
		market.WithScanConcurrency(cfg.Scan.Concurrency),
		market.WithRepositoryLogger(logger),
	)

	identity := wallet.NewIdentity()
	if cfg.Wallet.Sender != "" {
		identity.Connect(cfg.Wallet.Sender)
	}

	bridge := wallet.NewBridge(cfg.Wallet.BridgeURL,
		wallet.WithBridgeLogger(logger),
		wallet.WithBridgeTimeout(cfg.Wallet.Timeout),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		contract: contract,
		reader:   reader,
		repo:     repo,
		identity: identity,
		bridge:   bridge,
	}
}

// freshView scans the ledger once so submissions validate against the
// latest known state.
func (a *app) freshView(ctx context.Context) (market.View, error) {
	items, err := a.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	var balance uint64
	if addr, ok := a.identity.Address(); ok {
		balance, err = a.repo.GetBalance(ctx, addr)
		if err != nil {
			return nil, err
		}
	}

	view := &staticView{items: make(map[uint64]market.Item, len(items)), balance: balance}
	for _, it := range items {
		view.items[it.ID] = it
	}
	return view, nil
}

type staticView struct {
	items   map[uint64]market.Item
	balance uint64
}

func (v *staticView) Item(id uint64) (market.Item, bool) {
	it, ok := v.items[id]
	return it, ok
}

func (v *staticView) Balance() uint64 { return v.balance }

func (a *app) runList(ctx context.Context) error {
	items, err := a.repo.ListItems(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE (STX)\tQTY\tSELLER\tSTATUS")
	for _, it := range items {
		status := "listed"
		if !it.Purchasable() {
			status = "unavailable"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			it.ID, it.Name, market.FormatMicroSTX(it.Price), it.Quantity, shortenAddress(it.Seller), status)
	}
	return w.Flush()
}

func (a *app) runBalance(ctx context.Context) error {
	addr, ok := a.identity.Address()
	if !ok {
		return wallet.ErrNotConnected
	}

	balance, err := a.repo.GetBalance(ctx, addr)
	if err != nil {
		return err
	}

	fmt.Printf("%s STX unharvested (%d µSTX)\n", market.FormatMicroSTX(balance), balance)
	return nil
}

func (a *app) runSell(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sell", flag.ExitOnError)
	name := fs.String("name", "", "item name")
	desc := fs.String("desc", "", "item description")
	price := fs.String("price", "", "unit price in STX, e.g. 1.5")
	qty := fs.Uint64("qty", 1, "units for sale")
	fs.Parse(args)

	sub := market.NewSubmitter(a.identity, a.bridge, a.contract, &staticView{}, a.logger)
	res, err := sub.SubmitList(ctx, *name, *desc, *price, *qty)
	if err != nil {
		return err
	}

	fmt.Printf("listing submitted: txid %s\n", res.TxID)
	fmt.Println("the item appears once the transaction confirms; run `farmctl list` shortly")
	return nil
}

func (a *app) runBuy(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("buy", flag.ExitOnError)
	itemID := fs.Uint64("item", 0, "item id")
	qty := fs.Uint64("qty", 1, "units to buy")
	fs.Parse(args)

	view, err := a.freshView(ctx)
	if err != nil {
		return err
	}

	sub := market.NewSubmitter(a.identity, a.bridge, a.contract, view, a.logger)
	res, err := sub.SubmitBuy(ctx, *itemID, *qty)
	if err != nil {
		return err
	}

	fmt.Printf("purchase submitted: txid %s\n", res.TxID)
	return nil
}

func (a *app) runHarvest(ctx context.Context) error {
	view, err := a.freshView(ctx)
	if err != nil {
		return err
	}

	sub := market.NewSubmitter(a.identity, a.bridge, a.contract, view, a.logger)
	res, err := sub.SubmitHarvest(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("harvest submitted: txid %s\n", res.TxID)
	return nil
}

func (a *app) runWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	interval := fs.Duration("interval", time.Minute, "refresh interval")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	fs.Parse(args)

	ctrl := syncer.New(a.repo, a.identity,
		syncer.WithLogger(a.logger),
		syncer.WithRefreshDelay(a.cfg.Sync.RefreshDelay),
	)
	ctrl.Start(ctx)

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			a.logger.Info("serving metrics", "addr", *metricsAddr)
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				a.logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	a.logger.Info("watching marketplace",
		"contract", a.contract.String(),
		"interval", *interval,
	)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("watch stopped")
			return nil
		case <-ticker.C:
			ctrl.RefreshItems()
			ctrl.RefreshBalance()

			status, err := ctrl.ItemsStatus()
			a.logger.Info("view state",
				"items", len(ctrl.Items()),
				"balance_microstx", ctrl.Balance(),
				"items_status", status.String(),
				"items_err", err,
			)
		}
	}
}

// shortenAddress abbreviates a principal for table display.
func shortenAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
