package swap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"peake-swap/pkg/engine"
	"peake-swap/pkg/signer"
	"peake-swap/pkg/types"
)

var (
	// ErrNoPendingSwap is returned by Resume when nothing resumable exists.
	ErrNoPendingSwap = errors.New("no pending swap to resume")
	// ErrPollingExhausted is returned when the payout never shows up within
	// the attempt budget.
	ErrPollingExhausted = errors.New("no payout detected within the polling budget")
)

// PayoutScanner finds the settlement-asset credit produced by a sell.
type PayoutScanner interface {
	FindPayout(ctx context.Context, account, symbol string, anchorHeight int64, memo string) float64
}

// AnchorResolver maps a signing-chain transaction id to its block height.
type AnchorResolver interface {
	ResolveBlockHeight(ctx context.Context, txID string) (int64, bool)
}

// ExternalSwapper handles source assets that live outside the settlement
// layer. No protocol is defined yet; an implementation is wired in when one
// exists.
type ExternalSwapper interface {
	Swap(ctx context.Context, account, quantity string) error
}

// Config tunes the orchestrator's timing and budget.
type Config struct {
	// TargetSymbol is the token bought in leg 2.
	TargetSymbol string
	// ExternalSymbol is the sentinel routed to the external-chain flow.
	ExternalSymbol string
	// SettleDelay is the wait before the first payout poll.
	SettleDelay time.Duration
	// PollInterval is the wait between payout polls.
	PollInterval time.Duration
	// MaxPollAttempts bounds the polling loop.
	MaxPollAttempts int
	// BuyCooldown lets the sidechain balance update propagate before leg 2.
	BuyCooldown time.Duration
}

// Orchestrator drives one swap attempt across both legs and owns the
// persisted pending-swap slot. All progress is reported through the display
// sink; the orchestrator never writes to the terminal directly.
type Orchestrator struct {
	cfg      Config
	store    Store
	scanner  PayoutScanner
	resolver AnchorResolver
	signers  *signer.Manager
	external ExternalSwapper
	display  func(message string)
	log      logrus.FieldLogger
}

// New creates an orchestrator. display may be nil.
func New(cfg Config, store Store, sc PayoutScanner, resolver AnchorResolver, signers *signer.Manager, display func(string), log logrus.FieldLogger) *Orchestrator {
	if display == nil {
		display = func(string) {}
	}
	return &Orchestrator{
		cfg:      cfg,
		store:    store,
		scanner:  sc,
		resolver: resolver,
		signers:  signers,
		display:  display,
		log:      log,
	}
}

// SetExternalSwapper wires the external-chain flow, if one is available.
func (o *Orchestrator) SetExternalSwapper(external ExternalSwapper) {
	o.external = external
}

// Start validates the request, submits the sell leg through the chosen
// signing backend, and blocks until the swap reaches a terminal state.
func (o *Orchestrator) Start(ctx context.Context, req types.SwapRequest, method Method) error {
	if err := req.Validate(); err != nil {
		o.display(fmt.Sprintf("Please fill in all fields: %v", err))
		return err
	}

	if o.cfg.ExternalSymbol != "" && req.Symbol == o.cfg.ExternalSymbol {
		if o.external == nil {
			o.display(fmt.Sprintf("%s swaps are not available yet.", req.Symbol))
			return fmt.Errorf("no external-chain flow configured for %s", req.Symbol)
		}
		return o.external.Swap(ctx, req.Account, req.Quantity)
	}

	backend, err := o.signers.Get(string(method))
	if err != nil {
		return err
	}

	record := NewPendingSwap(req.Account, req.Symbol, req.Quantity, method)
	if err := o.store.Save(record); err != nil {
		return fmt.Errorf("failed to persist pending swap: %w", err)
	}

	o.log.WithFields(logrus.Fields{
		"account": req.Account,
		"symbol":  req.Symbol,
		"memo":    record.Memo,
		"method":  method,
	}).Debug("submitting sell leg")

	action := engine.MarketSell(req.Symbol, req.Quantity, record.Memo)
	description := fmt.Sprintf("Sell %s %s for %s", req.Quantity, req.Symbol, engine.SettlementSymbol)
	outcome := backend.SubmitAction(ctx, req.Account, action, description)
	if !outcome.Accepted {
		// Nothing was broadcast; the slot must not survive the failure.
		if clearErr := o.store.Clear(); clearErr != nil {
			o.log.WithError(clearErr).Warn("failed to clear pending swap")
		}
		o.display(fmt.Sprintf("%s error: %s", backend.Name(), outcome.Reason))
		return fmt.Errorf("sell signing rejected: %s", outcome.Reason)
	}

	if outcome.TxID != "" {
		record.TxID = outcome.TxID
		if err := o.store.Save(record); err != nil {
			return fmt.Errorf("failed to persist pending swap: %w", err)
		}
	}

	o.display(fmt.Sprintf("Sell order broadcasted! Waiting for your %s payout... (memo: %s)", engine.SettlementSymbol, record.Memo))
	return o.pollForPayout(ctx, record)
}

// Resume re-enters payout polling for a persisted pending record, starting
// the attempt budget over. Records that are absent or no longer pending are
// left alone.
func (o *Orchestrator) Resume(ctx context.Context) error {
	record, err := o.store.Load()
	if err != nil {
		return err
	}
	if record == nil || record.Status != StatusPending {
		return ErrNoPendingSwap
	}

	o.log.WithFields(logrus.Fields{"memo": record.Memo, "txId": record.TxID}).Debug("resuming pending swap")
	o.display(fmt.Sprintf("Resuming swap of %s %s for %s. Waiting for your %s payout...",
		record.Quantity, record.Symbol, record.Account, engine.SettlementSymbol))
	return o.pollForPayout(ctx, record)
}

func (o *Orchestrator) pollForPayout(ctx context.Context, record *PendingSwap) error {
	// The anchor height is resolved once and cached for the whole run.
	var anchorHeight int64
	if record.TxID != "" {
		if height, ok := o.resolver.ResolveBlockHeight(ctx, record.TxID); ok {
			anchorHeight = height
		}
	}

	if err := o.wait(ctx, o.cfg.SettleDelay); err != nil {
		return err
	}

	lastObserved := 0.0
	for attempt := 0; ; attempt++ {
		payout := o.scanner.FindPayout(ctx, record.Account, record.Symbol, anchorHeight, record.Memo)
		o.log.WithFields(logrus.Fields{
			"attempt": attempt,
			"payout":  payout,
			"memo":    record.Memo,
		}).Debug("polled for payout")

		switch NextAction(attempt, o.cfg.MaxPollAttempts, lastObserved, payout) {
		case Confirm:
			record.Status = StatusComplete
			record.Step = StepBuy
			o.saveIfCurrent(record)
			o.display(fmt.Sprintf("%s payout detected! Waiting %s before buying %s...",
				engine.SettlementSymbol, o.cfg.BuyCooldown, o.cfg.TargetSymbol))
			if err := o.wait(ctx, o.cfg.BuyCooldown); err != nil {
				return err
			}
			return o.submitBuy(ctx, record, payout)

		case Timeout:
			record.Status = StatusTimeout
			o.saveIfCurrent(record)
			elapsed := time.Duration(o.cfg.MaxPollAttempts) * o.cfg.PollInterval
			o.display(fmt.Sprintf("No new %s payout detected from your sale after %s. Please check your wallet and try again.",
				engine.SettlementSymbol, elapsed))
			return ErrPollingExhausted

		case Reschedule:
			if err := o.wait(ctx, o.cfg.PollInterval); err != nil {
				return err
			}
		}
	}
}

func (o *Orchestrator) submitBuy(ctx context.Context, record *PendingSwap, payout float64) error {
	amount, ok := ComputeBuyAmount(payout)
	if !ok {
		record.Status = StatusFailed
		o.saveIfCurrent(record)
		o.display(fmt.Sprintf("Insufficient %s amount after fee deduction.", engine.SettlementSymbol))
		return fmt.Errorf("insufficient %s after fee deduction: payout %.8f", engine.SettlementSymbol, payout)
	}

	backend, err := o.signers.Get(string(record.Method))
	if err != nil {
		return err
	}

	o.log.WithFields(logrus.Fields{"payout": payout, "buyAmount": amount}).Debug("submitting buy leg")

	action := engine.MarketBuy(o.cfg.TargetSymbol, amount)
	description := fmt.Sprintf("Buy %s with %s %s", o.cfg.TargetSymbol, amount, engine.SettlementSymbol)
	outcome := backend.SubmitAction(ctx, record.Account, action, description)
	if !outcome.Accepted {
		record.Status = StatusFailed
		o.saveIfCurrent(record)
		o.display(fmt.Sprintf("%s error: %s", backend.Name(), outcome.Reason))
		return fmt.Errorf("buy signing rejected: %s", outcome.Reason)
	}

	record.Step = StepDone
	o.clearIfCurrent(record)
	o.display("Buy order broadcasted!")
	return nil
}

// saveIfCurrent writes the record only while it still owns the slot. A newer
// swap supersedes the stored record, and an abandoned polling run must not
// clobber it.
func (o *Orchestrator) saveIfCurrent(record *PendingSwap) {
	current, err := o.store.Load()
	if err != nil || current == nil || current.Memo != record.Memo {
		return
	}
	if err := o.store.Save(record); err != nil {
		o.log.WithError(err).Warn("failed to persist swap state")
	}
}

// clearIfCurrent removes the record only while it still owns the slot.
func (o *Orchestrator) clearIfCurrent(record *PendingSwap) {
	current, err := o.store.Load()
	if err != nil || current == nil || current.Memo != record.Memo {
		return
	}
	if err := o.store.Clear(); err != nil {
		o.log.WithError(err).Warn("failed to clear pending swap")
	}
}

func (o *Orchestrator) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
