package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

// RepairFacade exposes the subset of application functionality required by the worker.
type RepairFacade interface {
	IncompleteTransitions(ctx context.Context) ([]model.TransitionRecord, error)
	RepairTransition(ctx context.Context, rec model.TransitionRecord) error
}

// TransitionRepairer periodically scans for interrupted document write
// sequences and retries only their order-update step, concurrently.
type TransitionRepairer struct {
	facade       RepairFacade
	pollInterval time.Duration
	workers      int
	logger       *slog.Logger

	jobs   chan model.TransitionRecord
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewTransitionRepairer constructs the repair worker pool.
func NewTransitionRepairer(facade RepairFacade, pollInterval time.Duration, workers int, logger *slog.Logger) *TransitionRepairer {
	if workers <= 0 {
		workers = 1
	}
	return &TransitionRepairer{
		facade:       facade,
		pollInterval: pollInterval,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.TransitionRecord, workers*4),
	}
}

// Start launches background processing.
func (p *TransitionRepairer) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *TransitionRepairer) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *TransitionRepairer) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *TransitionRepairer) fetchAndDispatch(ctx context.Context) {
	records, err := p.facade.IncompleteTransitions(ctx)
	if err != nil {
		p.logger.Error("fetch incomplete transitions failed", slog.String("error", err.Error()))
		return
	}
	for _, rec := range records {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- rec:
		}
	}
}

func (p *TransitionRepairer) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-p.jobs:
			if !ok {
				return
			}
			if err := p.facade.RepairTransition(ctx, rec); err != nil {
				p.logger.Error("repair transition failed",
					slog.String("transition", rec.ID),
					slog.String("order", rec.OrderNumber),
					slog.String("file_type", string(rec.FileType)),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
