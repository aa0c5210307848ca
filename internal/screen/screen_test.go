package screen

import (
	"errors"
	"math"
	"testing"

	"github.com/apalladino/bondscan/internal/model"
)

func testTable() []model.InstrumentRecord {
	return []model.InstrumentRecord{
		{ISIN: "IT0000000001", YearsToMaturity: 4.5, OfficialPrice: 95, NumContracts: 120, MedianMonthlyVolumeM: 3.2, VolumeRating: 70},
		{ISIN: "XS0000000002", YearsToMaturity: 3.0, OfficialPrice: 99, NumContracts: 40, MedianMonthlyVolumeM: 1.1, VolumeRating: 35},
		{ISIN: "FR0000000003", YearsToMaturity: 6.2, OfficialPrice: 88, NumContracts: 210, MedianMonthlyVolumeM: 8.4, VolumeRating: 95},
		{ISIN: "DE0000000004", YearsToMaturity: 12.0, OfficialPrice: 75, NumContracts: 15, MedianMonthlyVolumeM: 0.4, VolumeRating: 10},
		{ISIN: "IT0000000005", YearsToMaturity: 5.1, OfficialPrice: 104, NumContracts: 300, MedianMonthlyVolumeM: 5.0, VolumeRating: 80},
	}
}

// TestApply tests filtering and descending sort.
func TestApply(t *testing.T) {
	t.Run("maturity window with exclusions", func(t *testing.T) {
		c := DefaultCriteria()
		c.MinYears = 2
		c.MaxYears = 7
		c.ExcludePrefixes = []string{"IT", "XS"}

		got, err := Apply(testTable(), c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ISIN != "FR0000000003" {
			t.Fatalf("got %d records, want only FR0000000003", len(got))
		}
	})

	t.Run("price ceiling", func(t *testing.T) {
		c := DefaultCriteria()
		got, err := Apply(testTable(), c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, rec := range got {
			if rec.OfficialPrice > 100 {
				t.Errorf("%s price %v exceeds ceiling", rec.ISIN, rec.OfficialPrice)
			}
		}
	})

	t.Run("minimum contracts and rating", func(t *testing.T) {
		c := DefaultCriteria()
		c.MinContracts = 100
		c.MinRating = 60

		got, err := Apply(testTable(), c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]bool{"IT0000000001": true, "FR0000000003": true}
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d", len(got), len(want))
		}
		for _, rec := range got {
			if !want[rec.ISIN] {
				t.Errorf("unexpected record %s", rec.ISIN)
			}
		}
	})

	t.Run("allow prefix", func(t *testing.T) {
		c := DefaultCriteria()
		c.AllowPrefix = "IT"

		got, err := Apply(testTable(), c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ISIN != "IT0000000001" {
			t.Fatalf("got %v records, want only IT0000000001 under the price ceiling", len(got))
		}
	})

	t.Run("sorted descending by median volume", func(t *testing.T) {
		c := DefaultCriteria()
		got, err := Apply(testTable(), c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 1; i < len(got); i++ {
			if got[i].MedianMonthlyVolumeM > got[i-1].MedianMonthlyVolumeM {
				t.Errorf("not descending at %d: %v > %v", i, got[i].MedianMonthlyVolumeM, got[i-1].MedianMonthlyVolumeM)
			}
		}
	})

	t.Run("NaN in a bounded field excludes the record", func(t *testing.T) {
		table := testTable()
		table[0].YearsToMaturity = math.NaN()

		got, err := Apply(table, DefaultCriteria())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, rec := range got {
			if rec.ISIN == "IT0000000001" {
				t.Error("record with NaN maturity should be excluded")
			}
		}
	})

	t.Run("NaN in the sort field sorts last", func(t *testing.T) {
		table := testTable()
		table[1].MedianMonthlyVolumeM = math.NaN()

		got, err := Apply(table, DefaultCriteria())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) < 2 {
			t.Fatalf("len = %d, want at least 2", len(got))
		}
		if last := got[len(got)-1]; !math.IsNaN(last.MedianMonthlyVolumeM) {
			t.Errorf("last record %s has volume %v, want the NaN record", last.ISIN, last.MedianMonthlyVolumeM)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		c := DefaultCriteria()
		once, err := Apply(testTable(), c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		twice, err := Apply(once, c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(twice) != len(once) {
			t.Fatalf("second application changed the result: %d vs %d", len(twice), len(once))
		}
		for i := range once {
			if twice[i].ISIN != once[i].ISIN {
				t.Errorf("order changed at %d: %s vs %s", i, twice[i].ISIN, once[i].ISIN)
			}
		}
	})

	t.Run("unknown sort key", func(t *testing.T) {
		c := DefaultCriteria()
		c.SortBy = "no_such_column"

		_, err := Apply(testTable(), c)
		var sortErr *UnknownSortKeyError
		if !errors.As(err, &sortErr) {
			t.Fatalf("expected *UnknownSortKeyError, got %v", err)
		}
		if sortErr.Key != "no_such_column" {
			t.Errorf("Key = %q, want no_such_column", sortErr.Key)
		}
	})

	t.Run("source table untouched", func(t *testing.T) {
		table := testTable()
		c := DefaultCriteria()
		c.SortBy = model.FieldOfficialPrice
		if _, err := Apply(table, c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table[0].ISIN != "IT0000000001" {
			t.Error("Apply reordered the source table")
		}
	})
}
