package model

import (
	"math"
	"time"
)

// Field names the numeric columns of an InstrumentRecord. The same set is
// used by the instrument extractor, the batch coercion step, the CSV codec
// and the sort-key registry, so column renames stay in lockstep.
type Field string

const (
	FieldNumContracts     Field = "num_contracts"
	FieldLastVolume       Field = "last_volume"
	FieldTotalVolume      Field = "total_volume"
	FieldOfficialPrice    Field = "official_price"
	FieldNetYield         Field = "net_yield"
	FieldGrossYield       Field = "gross_yield"
	FieldModifiedDuration Field = "modified_duration"
	FieldCouponRate       Field = "coupon_rate"
	FieldYearsToMaturity  Field = "years_to_maturity"
	FieldMedianVolumeM    Field = "median_monthly_volume_million"
	FieldMinVolumeM       Field = "min_monthly_volume_million"
	FieldMaxVolumeM       Field = "max_monthly_volume_million"
	FieldVolumeRating     Field = "volume_percentile_rating"
)

// ScrapedFields lists the fields populated from the detail page, in the
// order they are extracted.
var ScrapedFields = []Field{
	FieldNumContracts,
	FieldLastVolume,
	FieldTotalVolume,
	FieldOfficialPrice,
	FieldNetYield,
	FieldGrossYield,
	FieldModifiedDuration,
	FieldCouponRate,
}

// VolumeStats holds the trailing-year monthly volume statistics for one
// instrument, in millions of currency units, rounded to 2 decimals.
type VolumeStats struct {
	MedianMillion float64
	MinMillion    float64
	MaxMillion    float64
}

// RawRecord is the tolerant-phase product of the instrument extractor:
// canonical decimal strings keyed by field ("" = not found on the page),
// plus the parsed maturity date and the volume statistics (nil when the
// charting service returned nothing usable).
//
// RawRecords are coerced to InstrumentRecords by the batch aggregator's
// strict phase; a non-empty value that fails to parse there is fatal for
// the whole batch.
type RawRecord struct {
	ISIN            string
	Values          map[Field]string
	MaturityDate    time.Time
	YearsToMaturity float64
	Volume          *VolumeStats
}

// InstrumentRecord is one fully coerced row of the aggregated table,
// uniquely keyed by ISIN. Never mutated after rating.
type InstrumentRecord struct {
	ISIN string

	NumContracts     float64 // contract count (integer-valued, NaN if unknown)
	LastVolume       float64 // volume of the last trade, currency units
	TotalVolume      float64 // total daily volume, currency units
	OfficialPrice    float64
	GrossYield       float64 // yield to maturity before tax, percent
	NetYield         float64 // yield to maturity after tax, percent
	ModifiedDuration float64
	CouponRate       float64 // annual coupon, percent

	MaturityDate    time.Time
	YearsToMaturity float64 // (maturity - today).days / 365, rounded to 2 decimals

	MedianMonthlyVolumeM float64 // trailing-year monthly volume median, millions
	MinMonthlyVolumeM    float64
	MaxMonthlyVolumeM    float64

	// VolumeRating is the 0-100 liquidity percentile rank within the batch.
	// 0 iff the median monthly volume is zero or unknown.
	VolumeRating int
}

// NumericValue returns the value of a numeric field by name. The second
// return is false for unknown field names.
func (r *InstrumentRecord) NumericValue(f Field) (float64, bool) {
	switch f {
	case FieldNumContracts:
		return r.NumContracts, true
	case FieldLastVolume:
		return r.LastVolume, true
	case FieldTotalVolume:
		return r.TotalVolume, true
	case FieldOfficialPrice:
		return r.OfficialPrice, true
	case FieldNetYield:
		return r.NetYield, true
	case FieldGrossYield:
		return r.GrossYield, true
	case FieldModifiedDuration:
		return r.ModifiedDuration, true
	case FieldCouponRate:
		return r.CouponRate, true
	case FieldYearsToMaturity:
		return r.YearsToMaturity, true
	case FieldMedianVolumeM:
		return r.MedianMonthlyVolumeM, true
	case FieldMinVolumeM:
		return r.MinMonthlyVolumeM, true
	case FieldMaxVolumeM:
		return r.MaxMonthlyVolumeM, true
	case FieldVolumeRating:
		return float64(r.VolumeRating), true
	}
	return 0, false
}

// SetNumeric assigns a scraped field on the record.
func (r *InstrumentRecord) SetNumeric(f Field, v float64) {
	switch f {
	case FieldNumContracts:
		r.NumContracts = v
	case FieldLastVolume:
		r.LastVolume = v
	case FieldTotalVolume:
		r.TotalVolume = v
	case FieldOfficialPrice:
		r.OfficialPrice = v
	case FieldNetYield:
		r.NetYield = v
	case FieldGrossYield:
		r.GrossYield = v
	case FieldModifiedDuration:
		r.ModifiedDuration = v
	case FieldCouponRate:
		r.CouponRate = v
	}
}

// NaN is the canonical "not available" value for numeric fields.
func NaN() float64 { return math.NaN() }
