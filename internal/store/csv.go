package store

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/apalladino/bondscan/internal/model"
)

const dateLayout = "2006-01-02"

// header is the persisted column set. Order matters: the reader indexes by
// position and the browsing layer displays these names as-is.
var header = []string{
	"isin",
	string(model.FieldNumContracts),
	string(model.FieldLastVolume),
	string(model.FieldTotalVolume),
	string(model.FieldOfficialPrice),
	string(model.FieldGrossYield),
	string(model.FieldNetYield),
	string(model.FieldModifiedDuration),
	string(model.FieldCouponRate),
	"maturity_date",
	string(model.FieldYearsToMaturity),
	string(model.FieldMedianVolumeM),
	string(model.FieldMinVolumeM),
	string(model.FieldMaxVolumeM),
	string(model.FieldVolumeRating),
}

// WriteTable writes the aggregated table to path, creating parent
// directories as needed. The file is replaced wholesale on every run.
func WriteTable(path string, table []model.InstrumentRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range table {
		if err := w.Write(encodeRow(rec)); err != nil {
			return fmt.Errorf("write row %s: %w", rec.ISIN, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadTable loads a previously written table.
func ReadTable(path string) ([]model.InstrumentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv %s is empty", path)
	}
	if len(rows[0]) != len(header) {
		return nil, fmt.Errorf("csv header has %d columns, want %d", len(rows[0]), len(header))
	}

	table := make([]model.InstrumentRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		table = append(table, rec)
	}
	return table, nil
}

// DuplicateISINs returns the ISINs appearing more than once. Duplicates
// violate the upstream merge rule; the viewer warns but keeps going.
func DuplicateISINs(table []model.InstrumentRecord) []string {
	counts := make(map[string]int, len(table))
	for _, rec := range table {
		counts[rec.ISIN]++
	}
	var dups []string
	seen := make(map[string]bool)
	for _, rec := range table {
		if counts[rec.ISIN] > 1 && !seen[rec.ISIN] {
			dups = append(dups, rec.ISIN)
			seen[rec.ISIN] = true
		}
	}
	return dups
}

func encodeRow(rec model.InstrumentRecord) []string {
	maturity := ""
	if !rec.MaturityDate.IsZero() {
		maturity = rec.MaturityDate.Format(dateLayout)
	}
	return []string{
		rec.ISIN,
		formatFloat(rec.NumContracts),
		formatFloat(rec.LastVolume),
		formatFloat(rec.TotalVolume),
		formatFloat(rec.OfficialPrice),
		formatFloat(rec.GrossYield),
		formatFloat(rec.NetYield),
		formatFloat(rec.ModifiedDuration),
		formatFloat(rec.CouponRate),
		maturity,
		formatFloat(rec.YearsToMaturity),
		formatFloat(rec.MedianMonthlyVolumeM),
		formatFloat(rec.MinMonthlyVolumeM),
		formatFloat(rec.MaxMonthlyVolumeM),
		strconv.Itoa(rec.VolumeRating),
	}
}

func decodeRow(row []string) (model.InstrumentRecord, error) {
	if len(row) != len(header) {
		return model.InstrumentRecord{}, fmt.Errorf("has %d columns, want %d", len(row), len(header))
	}

	rec := model.InstrumentRecord{ISIN: row[0]}

	floats := []struct {
		idx  int
		dest *float64
	}{
		{1, &rec.NumContracts},
		{2, &rec.LastVolume},
		{3, &rec.TotalVolume},
		{4, &rec.OfficialPrice},
		{5, &rec.GrossYield},
		{6, &rec.NetYield},
		{7, &rec.ModifiedDuration},
		{8, &rec.CouponRate},
		{10, &rec.YearsToMaturity},
		{11, &rec.MedianMonthlyVolumeM},
		{12, &rec.MinMonthlyVolumeM},
		{13, &rec.MaxMonthlyVolumeM},
	}
	for _, col := range floats {
		v, err := parseFloat(row[col.idx])
		if err != nil {
			return model.InstrumentRecord{}, fmt.Errorf("column %s: %w", header[col.idx], err)
		}
		*col.dest = v
	}

	if row[9] != "" {
		t, err := time.Parse(dateLayout, row[9])
		if err != nil {
			return model.InstrumentRecord{}, fmt.Errorf("column maturity_date: %w", err)
		}
		rec.MaturityDate = t
	}

	rating, err := strconv.Atoi(row[14])
	if err != nil {
		return model.InstrumentRecord{}, fmt.Errorf("column %s: %w", header[14], err)
	}
	rec.VolumeRating = rating

	return rec, nil
}

// formatFloat keeps full float fidelity so a write/read cycle round-trips;
// NaN becomes the empty cell.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
