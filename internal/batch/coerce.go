package batch

import (
	"fmt"
	"math"
	"strconv"

	"github.com/apalladino/bondscan/internal/model"
)

// wraparoundCorrection patches maturities that parsed into the past due to
// the two-digit-year ambiguity. Heuristic carried over from the source
// data; see the date layouts in the extract package.
const wraparoundCorrection = 100

// Finalize turns collected raw records into the typed table: duplicates
// are dropped first-seen-wins, every column except the maturity date is
// coerced to a number, and negative residual maturities get the +100
// wraparound correction.
//
// Coercion is strict. An extracted value that no longer parses means the
// page markup changed and every downstream record is suspect, so the error
// aborts the whole batch instead of dropping the row.
func Finalize(raws []*model.RawRecord) ([]model.InstrumentRecord, error) {
	table := make([]model.InstrumentRecord, 0, len(raws))
	seen := make(map[string]bool, len(raws))

	for _, raw := range raws {
		if raw == nil {
			continue
		}
		if seen[raw.ISIN] {
			continue
		}
		seen[raw.ISIN] = true

		rec, err := coerce(raw)
		if err != nil {
			return nil, err
		}
		table = append(table, rec)
	}

	return table, nil
}

func coerce(raw *model.RawRecord) (model.InstrumentRecord, error) {
	rec := model.InstrumentRecord{
		ISIN:            raw.ISIN,
		MaturityDate:    raw.MaturityDate,
		YearsToMaturity: raw.YearsToMaturity,
	}

	for _, field := range model.ScrapedFields {
		s := raw.Values[field]
		if s == "" {
			rec.SetNumeric(field, math.NaN())
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.InstrumentRecord{}, fmt.Errorf("coerce column %s for %s: %w", field, raw.ISIN, err)
		}
		rec.SetNumeric(field, v)
	}

	if rec.YearsToMaturity < 0 {
		rec.YearsToMaturity += wraparoundCorrection
	}

	if raw.Volume != nil {
		rec.MedianMonthlyVolumeM = raw.Volume.MedianMillion
		rec.MinMonthlyVolumeM = raw.Volume.MinMillion
		rec.MaxMonthlyVolumeM = raw.Volume.MaxMillion
	} else {
		rec.MedianMonthlyVolumeM = math.NaN()
		rec.MinMonthlyVolumeM = math.NaN()
		rec.MaxMonthlyVolumeM = math.NaN()
	}

	return rec, nil
}
