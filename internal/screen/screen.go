package screen

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/apalladino/bondscan/internal/model"
)

// Criteria selects and orders records. Zero values of the bounds are
// meaningful (e.g. MinYears 0), so construct via DefaultCriteria and
// override.
type Criteria struct {
	MinYears     float64 // residual maturity lower bound, inclusive
	MaxYears     float64 // residual maturity upper bound, inclusive
	MaxPrice     float64
	MinContracts float64
	MinRating    int // minimum volume percentile rating

	ExcludePrefixes []string // drop ISINs starting with any of these
	AllowPrefix     string   // keep only ISINs starting with this, if set

	SortBy model.Field // descending sort field
}

// DefaultCriteria mirrors the browsing layer's initial widget state.
func DefaultCriteria() Criteria {
	return Criteria{
		MinYears: 0,
		MaxYears: 100,
		MaxPrice: 100,
		SortBy:   model.FieldMedianVolumeM,
	}
}

// UnknownSortKeyError reports a sort field that is not a table column.
type UnknownSortKeyError struct {
	Key model.Field
}

func (e *UnknownSortKeyError) Error() string {
	return fmt.Sprintf("unknown sort key %q", string(e.Key))
}

// Apply returns the records matching every criterion, sorted descending by
// the requested field. The source table is left untouched. Records with
// NaN in a bounded field fail the comparison and are excluded.
func Apply(table []model.InstrumentRecord, c Criteria) ([]model.InstrumentRecord, error) {
	// Validate the sort key up front so an empty result still surfaces a
	// bad criteria instead of silently no-opping.
	probe := model.InstrumentRecord{}
	if _, ok := probe.NumericValue(c.SortBy); !ok {
		return nil, &UnknownSortKeyError{Key: c.SortBy}
	}

	out := make([]model.InstrumentRecord, 0, len(table))
	for _, rec := range table {
		if !matches(rec, c) {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].NumericValue(c.SortBy)
		b, _ := out[j].NumericValue(c.SortBy)
		// NaN sorts last.
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})

	return out, nil
}

func matches(rec model.InstrumentRecord, c Criteria) bool {
	if !(rec.YearsToMaturity >= c.MinYears && rec.YearsToMaturity <= c.MaxYears) {
		return false
	}
	if !(rec.OfficialPrice <= c.MaxPrice) {
		return false
	}
	if !(rec.NumContracts >= c.MinContracts) {
		return false
	}
	if rec.VolumeRating < c.MinRating {
		return false
	}
	for _, prefix := range c.ExcludePrefixes {
		if prefix != "" && strings.HasPrefix(rec.ISIN, prefix) {
			return false
		}
	}
	if c.AllowPrefix != "" && !strings.HasPrefix(rec.ISIN, c.AllowPrefix) {
		return false
	}
	return true
}
