package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/stxfarm/farm-market/internal/market"
	"github.com/stxfarm/farm-market/internal/wallet"
)

// Status is the lifecycle state of a tracked resource.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultRefreshDelay is how long a submitted transaction is given to
// land before the view is refetched.
const DefaultRefreshDelay = 5 * time.Second

// Fetcher supplies ledger reads for the tracked resources.
type Fetcher interface {
	ListItems(ctx context.Context) ([]market.Item, error)
	GetBalance(ctx context.Context, principal string) (uint64, error)
}

// itemsState tracks the item list resource. gen guards against a stale
// fetch publishing over a newer one.
type itemsState struct {
	status Status
	list   []market.Item
	err    error
	gen    uint64
}

// balanceState tracks the own-balance resource.
type balanceState struct {
	status Status
	micro  uint64
	err    error
	gen    uint64
}

// Controller owns the marketplace view state and keeps it reconciled
// with the ledger.
type Controller struct {
	fetcher      Fetcher
	identity     *wallet.Identity
	clk          clock.Clock
	refreshDelay time.Duration
	logger       *slog.Logger

	mu      sync.Mutex
	ctx     context.Context
	items   itemsState
	balance balanceState

	// in-flight fetch goroutines
	wg sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// New creates a Controller. Call Start to load the initial view.
func New(fetcher Fetcher, identity *wallet.Identity, opts ...Option) *Controller {
	c := &Controller{
		fetcher:      fetcher,
		identity:     identity,
		clk:          clock.New(),
		refreshDelay: DefaultRefreshDelay,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithClock substitutes the wall clock, letting tests drive the
// post-submission refresh timer.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) {
		c.clk = clk
	}
}

// WithRefreshDelay sets the post-submission refetch delay.
func WithRefreshDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.refreshDelay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Start wires identity events and loads the initial view. The given
// context bounds every fetch the controller issues.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	c.identity.OnChange(func(address string) {
		if address == "" {
			c.clearBalance()
			return
		}
		c.RefreshBalance()
	})

	c.RefreshItems()
	if _, ok := c.identity.Address(); ok {
		c.RefreshBalance()
	}
}

// RefreshItems starts a new item fetch, superseding any in-flight one
// for presentation purposes: whichever fetch started last wins, no
// matter the completion order.
func (c *Controller) RefreshItems() {
	c.mu.Lock()
	ctx := c.fetchContext()
	c.items.gen++
	gen := c.items.gen
	c.items.status = StatusLoading
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		list, err := c.fetcher.ListItems(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()

		if gen != c.items.gen {
			c.logger.Debug("discarding superseded item fetch", "gen", gen, "latest", c.items.gen)
			return
		}

		if err != nil {
			c.logger.Error("item fetch failed", "err", err)
			c.items.status = StatusError
			c.items.err = err
			return
		}

		c.items.status = StatusReady
		c.items.list = list
		c.items.err = nil
	}()
}

// RefreshBalance starts a new balance fetch for the connected identity.
// With no identity it publishes zero immediately, without a ledger call.
func (c *Controller) RefreshBalance() {
	address, connected := c.identity.Address()

	c.mu.Lock()
	ctx := c.fetchContext()
	c.balance.gen++
	gen := c.balance.gen

	if !connected {
		c.balance.status = StatusReady
		c.balance.micro = 0
		c.balance.err = nil
		c.mu.Unlock()
		return
	}

	c.balance.status = StatusLoading
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		micro, err := c.fetcher.GetBalance(ctx, address)

		c.mu.Lock()
		defer c.mu.Unlock()

		if gen != c.balance.gen {
			c.logger.Debug("discarding superseded balance fetch", "gen", gen, "latest", c.balance.gen)
			return
		}

		if err != nil {
			c.logger.Error("balance fetch failed", "err", err)
			c.balance.status = StatusError
			c.balance.err = err
			return
		}

		c.balance.status = StatusReady
		c.balance.micro = micro
		c.balance.err = nil
	}()
}

// NotifySubmitted schedules a single deferred refetch of items and
// balance. Each submission schedules its own refetch; two quick
// submissions produce two independent refetches.
func (c *Controller) NotifySubmitted() {
	c.clk.AfterFunc(c.refreshDelay, func() {
		c.logger.Debug("post-submission refresh", "delay", c.refreshDelay)
		c.RefreshItems()
		c.RefreshBalance()
	})
}

// clearBalance zeroes the balance without a ledger call. Bumping the
// generation also invalidates any fetch still in flight for the
// previous identity.
func (c *Controller) clearBalance() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.balance.gen++
	c.balance.status = StatusIdle
	c.balance.micro = 0
	c.balance.err = nil
}

// fetchContext returns the context fetches run under. Callers must hold
// mu.
func (c *Controller) fetchContext() context.Context {
	if c.ctx != nil {
		return c.ctx
	}
	return context.Background()
}

// Items returns the last published item list.
func (c *Controller) Items() []market.Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]market.Item, len(c.items.list))
	copy(out, c.items.list)
	return out
}

// Item returns a single item from the last published list.
func (c *Controller) Item(id uint64) (market.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.items.list {
		if it.ID == id {
			return it, true
		}
	}
	return market.Item{}, false
}

// ItemsStatus returns the item resource state and its error, if any.
func (c *Controller) ItemsStatus() (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.status, c.items.err
}

// Balance returns the last published balance in µSTX.
func (c *Controller) Balance() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balance.micro
}

// BalanceStatus returns the balance resource state and its error, if any.
func (c *Controller) BalanceStatus() (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balance.status, c.balance.err
}
