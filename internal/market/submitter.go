package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stxfarm/farm-market/internal/chain"
	"github.com/stxfarm/farm-market/internal/clarity"
	"github.com/stxfarm/farm-market/internal/metrics"
	"github.com/stxfarm/farm-market/internal/wallet"
)

// Contract public function names.
const (
	fnListItem    = "list-item"
	fnBuyItem     = "buy-item"
	fnHarvestSats = "harvest-sats"
)

// ErrNothingToHarvest is returned when the last-known balance is zero.
// The ledger is not contacted.
var ErrNothingToHarvest = errors.New("nothing to harvest")

// View supplies the last-known marketplace state for local pre-checks.
// The ledger remains the authority: a pre-checked call can still be
// rejected on-chain.
type View interface {
	Item(id uint64) (Item, bool)
	Balance() uint64
}

// Submitter builds and broadcasts state-changing contract calls. It
// never mutates local state; the view is refreshed separately after the
// transaction has had a chance to land.
type Submitter struct {
	identity  *wallet.Identity
	broadcast wallet.Broadcaster
	contract  chain.ContractRef
	view      View
	logger    *slog.Logger
}

// NewSubmitter creates a Submitter.
func NewSubmitter(identity *wallet.Identity, broadcast wallet.Broadcaster, contract chain.ContractRef, view View, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{
		identity:  identity,
		broadcast: broadcast,
		contract:  contract,
		view:      view,
		logger:    logger,
	}
}

// SubmitList lists a new item for sale. priceSTX is a human-entered STX
// amount and is converted to µSTX before submission; name and
// description are truncated to the contract bounds.
func (s *Submitter) SubmitList(ctx context.Context, name, description, priceSTX string, quantity uint64) (wallet.Submission, error) {
	sender, ok := s.identity.Address()
	if !ok {
		return wallet.Submission{}, wallet.ErrNotConnected
	}

	if name == "" {
		return wallet.Submission{}, validationErrorf("name", "must not be empty")
	}
	if quantity == 0 {
		return wallet.Submission{}, validationErrorf("quantity", "must be positive")
	}

	priceMicro, err := ParseSTX(priceSTX)
	if err != nil {
		return wallet.Submission{}, err
	}

	return s.submit(ctx, wallet.Call{
		Contract: s.contract.String(),
		Function: fnListItem,
		Args: []clarity.Arg{
			clarity.AsciiArg(truncate(name, MaxNameLen)),
			clarity.AsciiArg(truncate(description, MaxDescriptionLen)),
			clarity.UintArg(priceMicro),
			clarity.UintArg(quantity),
		},
		Network: s.contract.Network,
		Sender:  sender,
	})
}

// SubmitBuy purchases quantity units of an item. The quantity is checked
// against the last-known stock before any ledger contact; the purchase
// call runs in allow mode because its exact STX cost is not predictable
// client-side.
func (s *Submitter) SubmitBuy(ctx context.Context, itemID, quantity uint64) (wallet.Submission, error) {
	sender, ok := s.identity.Address()
	if !ok {
		return wallet.Submission{}, wallet.ErrNotConnected
	}

	if quantity == 0 {
		return wallet.Submission{}, validationErrorf("quantity", "must be positive")
	}

	item, known := s.view.Item(itemID)
	if !known {
		return wallet.Submission{}, validationErrorf("item", "unknown item %d", itemID)
	}
	if !item.Purchasable() {
		return wallet.Submission{}, validationErrorf("item", "item %d is not available", itemID)
	}
	if quantity > item.Quantity {
		return wallet.Submission{}, validationErrorf("quantity", "only %d available", item.Quantity)
	}

	return s.submit(ctx, wallet.Call{
		Contract: s.contract.String(),
		Function: fnBuyItem,
		Args: []clarity.Arg{
			clarity.UintArg(itemID),
			clarity.UintArg(quantity),
		},
		Network:           s.contract.Network,
		Sender:            sender,
		PostConditionMode: wallet.ModeAllow,
	})
}

// SubmitHarvest withdraws the caller's accrued proceeds. Rejected
// locally when the last-known balance is exactly zero.
func (s *Submitter) SubmitHarvest(ctx context.Context) (wallet.Submission, error) {
	sender, ok := s.identity.Address()
	if !ok {
		return wallet.Submission{}, wallet.ErrNotConnected
	}

	if s.view.Balance() == 0 {
		return wallet.Submission{}, ErrNothingToHarvest
	}

	return s.submit(ctx, wallet.Call{
		Contract: s.contract.String(),
		Function: fnHarvestSats,
		Network:  s.contract.Network,
		Sender:   sender,
	})
}

func (s *Submitter) submit(ctx context.Context, call wallet.Call) (wallet.Submission, error) {
	sub, err := s.broadcast.Submit(ctx, call)
	if err != nil {
		return wallet.Submission{}, fmt.Errorf("submit %s: %w", call.Function, err)
	}

	metrics.Submissions.WithLabelValues(call.Function).Inc()
	return sub, nil
}

// truncate clips s to at most max bytes. Contract strings are ASCII, so
// byte length is the contract's unit.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
