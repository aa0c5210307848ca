package rating

import (
	"math"
	"sort"

	"github.com/apalladino/bondscan/internal/model"
)

// Compute returns a copy of the table with volume percentile ratings
// assigned. Records with zero or unknown median monthly volume rate 0;
// the rest are ranked [1,100] against the 1st-99th percentile breakpoints
// of the non-zero group. A value sitting exactly on a breakpoint falls
// into that bucket, not the next.
func Compute(table []model.InstrumentRecord) []model.InstrumentRecord {
	rated := make([]model.InstrumentRecord, len(table))
	copy(rated, table)

	var observed []float64
	for _, rec := range rated {
		if hasVolume(rec) {
			observed = append(observed, rec.MedianMonthlyVolumeM)
		}
	}

	if len(observed) == 0 {
		for i := range rated {
			rated[i].VolumeRating = 0
		}
		return rated
	}

	breaks := percentileBreakpoints(observed)

	for i := range rated {
		if !hasVolume(rated[i]) {
			rated[i].VolumeRating = 0
			continue
		}
		rated[i].VolumeRating = bucket(rated[i].MedianMonthlyVolumeM, breaks)
	}

	return rated
}

func hasVolume(rec model.InstrumentRecord) bool {
	v := rec.MedianMonthlyVolumeM
	return !math.IsNaN(v) && v != 0
}

// percentileBreakpoints computes the 1st through 99th percentiles of the
// values with linear interpolation between order statistics.
func percentileBreakpoints(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	breaks := make([]float64, 99)
	n := len(sorted)
	for q := 1; q <= 99; q++ {
		pos := float64(q) / 100 * float64(n-1)
		lo := int(math.Floor(pos))
		frac := pos - float64(lo)
		if lo+1 < n {
			breaks[q-1] = sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
		} else {
			breaks[q-1] = sorted[lo]
		}
	}
	return breaks
}

// bucket returns one plus the index of the first breakpoint the value does
// not exceed; values above every breakpoint land in bucket 100.
func bucket(v float64, breaks []float64) int {
	idx := sort.Search(len(breaks), func(i int) bool {
		return breaks[i] >= v
	})
	return idx + 1
}
