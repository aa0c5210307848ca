package volume

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/apalladino/bondscan/internal/borsa"
	"github.com/apalladino/bondscan/internal/model"
)

const million = 1e6

// DefaultTimeout bounds one charting-service call. Mandatory: a batch can
// cover hundreds of instruments and a single hung call must not stall it.
const DefaultTimeout = 10 * time.Second

// Fetcher retrieves monthly volume statistics for single instruments.
type Fetcher struct {
	client  *borsa.Client
	logger  *slog.Logger
	timeout time.Duration
}

// NewFetcher creates a Fetcher. A zero timeout falls back to DefaultTimeout.
func NewFetcher(client *borsa.Client, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client:  client,
		logger:  logger,
		timeout: timeout,
	}
}

// MonthlyStats returns median/min/max monthly volume in millions over the
// trailing year, rounded to 2 decimals. Returns nil when the service gave
// no usable data; the condition is logged, never raised.
func (f *Fetcher) MonthlyStats(ctx context.Context, isin string) *model.VolumeStats {
	samples := f.fetch(ctx, isin)
	if len(samples) == 0 {
		return nil
	}

	volumes := make([]float64, len(samples))
	for i, s := range samples {
		volumes[i] = s.Volume
	}

	return &model.VolumeStats{
		MedianMillion: round2(median(volumes) / million),
		MinMillion:    round2(minOf(volumes) / million),
		MaxMillion:    round2(maxOf(volumes) / million),
	}
}

// MonthlySeries returns the ordered monthly volumes in millions (raw mode).
// Returns nil when the service gave no usable data.
func (f *Fetcher) MonthlySeries(ctx context.Context, isin string) []float64 {
	samples := f.fetch(ctx, isin)
	if len(samples) == 0 {
		return nil
	}

	series := make([]float64, len(samples))
	for i, s := range samples {
		series[i] = s.Volume / million
	}
	return series
}

func (f *Fetcher) fetch(ctx context.Context, isin string) []borsa.VolumeSample {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	samples, err := f.client.GetVolumeHistory(ctx, isin, borsa.SampleMonthly, borsa.FrameOneYear)
	if err != nil {
		f.logger.Warn("no volume history",
			"isin", isin,
			"err", err,
		)
		return nil
	}
	return samples
}

// median matches the dataframe convention: mean of the two middle values
// for even-length input.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
