package market

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stxfarm/farm-market/internal/clarity"
	"github.com/stxfarm/farm-market/internal/metrics"
)

// Contract read-only function names.
const (
	fnGetNextItemID = "get-next-item-id"
	fnGetItem       = "get-item"
	fnGetSellerSats = "get-seller-sats"
)

// Reader abstracts read-only contract calls.
type Reader interface {
	CallReadOnly(ctx context.Context, function string, args []clarity.Arg, sender string) (clarity.Raw, error)
}

// Repository discovers marketplace items and seller balances from the
// contract. It holds no state: every call re-derives from the ledger.
type Repository struct {
	reader      Reader
	sender      string // principal used for read calls
	concurrency int
	logger      *slog.Logger
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// NewRepository creates a Repository. sender is the principal attached
// to read calls; the contract deployer works when no wallet is connected.
func NewRepository(reader Reader, sender string, opts ...RepositoryOption) *Repository {
	r := &Repository{
		reader:      reader,
		sender:      sender,
		concurrency: 8,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithScanConcurrency bounds the number of in-flight per-id reads.
func WithScanConcurrency(n int) RepositoryOption {
	return func(r *Repository) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithRepositoryLogger sets the logger.
func WithRepositoryLogger(logger *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		r.logger = logger
	}
}

// ListItems fetches every item ever created, in ascending id order.
//
// The contract offers no batch read, so this is a full scan: read the
// next-id counter, then fetch each id in [1, counter) independently.
// Cost is linear in ids ever created, not in active items. An id that
// decodes to none never existed and is skipped; a per-id transport
// failure is logged and skipped so one bad read cannot abort the scan.
func (r *Repository) ListItems(ctx context.Context) ([]Item, error) {
	start := time.Now()

	raw, err := r.reader.CallReadOnly(ctx, fnGetNextItemID, nil, r.sender)
	if err != nil {
		return nil, fmt.Errorf("read next item id: %w", err)
	}
	nextID := clarity.AsUint(raw)

	r.logger.Debug("scanning items", "next_id", nextID)

	if nextID <= 1 {
		return []Item{}, nil
	}

	// Each goroutine owns exactly one slot, so no collector is shared
	// across fetches. Slot order doubles as id order.
	slots := make([]*Item, nextID-1)

	g := &errgroup.Group{}
	g.SetLimit(r.concurrency)

	for id := uint64(1); id < nextID; id++ {
		id := id
		g.Go(func() error {
			item, ok, err := r.fetchItem(ctx, id)
			if err != nil {
				r.logger.Warn("failed to fetch item", "id", id, "err", err)
				return nil
			}
			if !ok {
				return nil
			}
			slots[id-1] = &item
			return nil
		})
	}

	// Per-id errors are swallowed above; Wait only gates completion.
	g.Wait()

	items := make([]Item, 0, len(slots))
	for _, it := range slots {
		if it != nil {
			items = append(items, *it)
		}
	}

	metrics.ScanDuration.Observe(time.Since(start).Seconds())
	r.logger.Info("item scan complete",
		"scanned", nextID-1,
		"items", len(items),
		"duration", time.Since(start),
	)

	return items, nil
}

// fetchItem reads and decodes a single item. ok is false when the id was
// never populated.
func (r *Repository) fetchItem(ctx context.Context, id uint64) (Item, bool, error) {
	raw, err := r.reader.CallReadOnly(ctx, fnGetItem, []clarity.Arg{clarity.UintArg(id)}, r.sender)
	if err != nil {
		return Item{}, false, err
	}

	item, ok := DecodeItem(raw, id)
	return item, ok, nil
}

// GetBalance fetches a seller's accrued, unharvested proceeds in µSTX.
// An empty principal short-circuits to zero without a ledger call, and a
// response that fails to decode reads as zero: balances are never
// presented as unknown or negative.
func (r *Repository) GetBalance(ctx context.Context, principal string) (uint64, error) {
	if principal == "" {
		return 0, nil
	}

	raw, err := r.reader.CallReadOnly(ctx, fnGetSellerSats, []clarity.Arg{clarity.PrincipalArg(principal)}, principal)
	if err != nil {
		return 0, fmt.Errorf("read seller balance: %w", err)
	}

	return clarity.AsUint(raw), nil
}
