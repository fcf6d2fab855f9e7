package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/repository"
)

// Projector derives item state from the transaction log. It replays only
// the latest ScanWindow events: an item whose events all fall outside the
// window is reported as absent, the same as an item that never existed.
type Projector struct {
	transactions repository.TransactionRepository
	window       int
	timeout      time.Duration
	logger       *slog.Logger
}

// NewProjector constructs Projector with a bounded scan window and budget.
func NewProjector(transactions repository.TransactionRepository, window int, timeout time.Duration, logger *slog.Logger) *Projector {
	if window <= 0 {
		window = 1
	}
	return &Projector{
		transactions: transactions,
		window:       window,
		timeout:      timeout,
		logger:       logger,
	}
}

// States returns the latest-wins state of the requested serial numbers.
// Serials with no event inside the scan window are absent from the result.
// A scan timeout degrades to an empty map with a warning; it never mixes
// two scan windows and never fails the caller.
func (p *Projector) States(ctx context.Context, serials []string) (map[string]model.ItemState, error) {
	wanted := make(map[string]struct{}, len(serials))
	for _, s := range serials {
		wanted[model.NormalizeSerial(s)] = struct{}{}
	}

	events, ok, err := p.scan(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]model.ItemState{}, nil
	}

	states := make(map[string]model.ItemState, len(wanted))
	for _, ev := range events {
		if _, want := wanted[ev.SerialNumber]; !want {
			continue
		}
		if _, seen := states[ev.SerialNumber]; seen {
			continue
		}
		states[ev.SerialNumber] = stateFromEvent(ev)
	}
	return states, nil
}

// WindowStates projects every serial that has an event inside the scan
// window. Reporting views consume it for the full inventory list.
func (p *Projector) WindowStates(ctx context.Context) (map[string]model.ItemState, error) {
	events, ok, err := p.scan(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]model.ItemState{}, nil
	}

	states := make(map[string]model.ItemState)
	for _, ev := range events {
		if _, seen := states[ev.SerialNumber]; seen {
			continue
		}
		states[ev.SerialNumber] = stateFromEvent(ev)
	}
	return states, nil
}

// scan fetches one bounded window of events, newest first. The second
// return value is false when the scan timed out and the caller must
// degrade to an empty result.
func (p *Projector) scan(ctx context.Context) ([]model.TransactionEvent, bool, error) {
	scanCtx := ctx
	cancel := func() {}
	if p.timeout > 0 {
		scanCtx, cancel = context.WithTimeout(ctx, p.timeout)
	}
	defer cancel()

	events, err := p.transactions.LatestWindow(scanCtx, p.window)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			p.logger.Warn("transaction scan timed out, degrading to empty projection",
				slog.Int("window", p.window),
				slog.Duration("timeout", p.timeout),
			)
			return nil, false, nil
		}
		return nil, false, err
	}
	return events, true, nil
}

func stateFromEvent(ev model.TransactionEvent) model.ItemState {
	return model.ItemState{
		SerialNumber:    ev.SerialNumber,
		Status:          ev.Status,
		Location:        ev.Location,
		LastType:        ev.Type,
		LastActivity:    ev.UploadedAt,
		LastTransaction: ev.TransactionID,
	}
}
