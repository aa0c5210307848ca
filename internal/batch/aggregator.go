package batch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apalladino/bondscan/internal/model"
)

// Source extracts one instrument's raw record.
type Source interface {
	Extract(ctx context.Context, isin string) (model.RawRecord, error)
}

// Config holds aggregation settings.
type Config struct {
	Concurrency   int           // Max concurrent fetches; <=1 means sequential
	DispatchDelay time.Duration // Fixed delay between dispatches in pooled mode
	Timeout       time.Duration // Per-ISIN timeout
}

// DefaultConfig returns the settings used by the nightly refresh.
func DefaultConfig() Config {
	return Config{
		Concurrency:   5,
		DispatchDelay: 500 * time.Millisecond,
		Timeout:       30 * time.Second,
	}
}

// Aggregator produces one combined table from many ISINs.
type Aggregator struct {
	cfg    Config
	source Source
	logger *slog.Logger
}

// New creates an Aggregator.
func New(cfg Config, source Source, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Aggregator{
		cfg:    cfg,
		source: source,
		logger: logger,
	}
}

// Run extracts every ISIN, drops the ones that fail, and returns the
// strictly coerced table. The result set is the same for the sequential
// and pooled strategies; output order follows input order, with duplicate
// ISINs resolved first-seen-wins.
func (a *Aggregator) Run(ctx context.Context, isins []string) ([]model.InstrumentRecord, error) {
	start := time.Now()

	var raws []*model.RawRecord
	if a.cfg.Concurrency <= 1 {
		raws = a.collectSequential(ctx, isins)
	} else {
		raws = a.collectPooled(ctx, isins)
	}

	table, err := Finalize(raws)
	if err != nil {
		return nil, err
	}

	a.logger.Info("batch complete",
		"isins", len(isins),
		"extracted", len(table),
		"dropped", len(isins)-len(table),
		"duration", time.Since(start),
	)

	return table, nil
}

// collectSequential fetches one ISIN at a time.
func (a *Aggregator) collectSequential(ctx context.Context, isins []string) []*model.RawRecord {
	raws := make([]*model.RawRecord, len(isins))
	for i, isin := range isins {
		if ctx.Err() != nil {
			break
		}
		raws[i] = a.extractOne(ctx, isin)
	}
	return raws
}

// collectPooled fetches with a bounded worker pool. Results land at their
// input position so the assembled table is order-independent of scheduling.
func (a *Aggregator) collectPooled(ctx context.Context, isins []string) []*model.RawRecord {
	raws := make([]*model.RawRecord, len(isins))

	// Semaphore for bounded concurrency.
	sem := make(chan struct{}, a.cfg.Concurrency)
	var wg sync.WaitGroup
	var fetched, failed atomic.Int64

	for i, isin := range isins {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(idx int, isin string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			if rec := a.extractOne(ctx, isin); rec != nil {
				raws[idx] = rec
				fetched.Add(1)
			} else {
				failed.Add(1)
			}
		}(i, isin)

		// Advisory rate-limiting defense, not adaptive backoff.
		if a.cfg.DispatchDelay > 0 {
			select {
			case <-time.After(a.cfg.DispatchDelay):
			case <-ctx.Done():
			}
		}
	}

	wg.Wait()

	a.logger.Debug("pooled collection done",
		"fetched", fetched.Load(),
		"failed", failed.Load(),
	)

	return raws
}

// extractOne runs one extraction under the per-ISIN timeout. Failures are
// diagnostics, not errors: the ISIN is dropped and the batch continues.
func (a *Aggregator) extractOne(ctx context.Context, isin string) *model.RawRecord {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	rec, err := a.source.Extract(ctx, isin)
	if err != nil {
		a.logger.Warn("could not extract instrument",
			"isin", isin,
			"err", err,
		)
		return nil
	}
	return &rec
}
