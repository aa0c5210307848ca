package store

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apalladino/bondscan/internal/model"
)

// RunStore keeps per-run history in Postgres. Append-only: rows are keyed
// by (run_id, isin) and conflicts are dropped, never updated.
type RunStore struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewRunStore creates a RunStore on an existing pool.
func NewRunStore(db *pgxpool.Pool, logger *slog.Logger) *RunStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunStore{db: db, logger: logger}
}

// InsertRun writes one batch's table under a fresh run id and returns it.
func (s *RunStore) InsertRun(ctx context.Context, table []model.InstrumentRecord) (uuid.UUID, error) {
	runID := uuid.New()
	runAt := time.Now().UTC()

	batch := &pgx.Batch{}
	for _, rec := range table {
		batch.Queue(`
			INSERT INTO bond_runs (
				run_id, run_at, isin, num_contracts, last_volume, total_volume,
				official_price, gross_yield, net_yield, modified_duration,
				coupon_rate, maturity_date, years_to_maturity,
				median_monthly_volume_million, min_monthly_volume_million,
				max_monthly_volume_million, volume_percentile_rating
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			ON CONFLICT (run_id, isin) DO NOTHING
		`,
			runID, runAt, rec.ISIN,
			nullable(rec.NumContracts), nullable(rec.LastVolume), nullable(rec.TotalVolume),
			nullable(rec.OfficialPrice), nullable(rec.GrossYield), nullable(rec.NetYield),
			nullable(rec.ModifiedDuration), nullable(rec.CouponRate),
			nullableDate(rec.MaturityDate), nullable(rec.YearsToMaturity),
			nullable(rec.MedianMonthlyVolumeM), nullable(rec.MinMonthlyVolumeM),
			nullable(rec.MaxMonthlyVolumeM), rec.VolumeRating,
		)
	}

	start := time.Now()
	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range table {
		if _, err := results.Exec(); err != nil {
			return uuid.Nil, err
		}
	}

	s.logger.Info("run persisted",
		"run_id", runID,
		"records", len(table),
		"duration", time.Since(start),
	)

	return runID, nil
}

// nullable maps NaN to SQL NULL.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
