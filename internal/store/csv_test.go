package store

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apalladino/bondscan/internal/model"
)

func sampleTable() []model.InstrumentRecord {
	return []model.InstrumentRecord{
		{
			ISIN:                 "IT0001234567",
			NumContracts:         42,
			LastVolume:           10000,
			TotalVolume:          1234567.89,
			OfficialPrice:        98.76,
			GrossYield:           3.25,
			NetYield:             2.85,
			ModifiedDuration:     4.1,
			CouponRate:           3.5,
			MaturityDate:         time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			YearsToMaturity:      4.0,
			MedianMonthlyVolumeM: 2.5,
			MinMonthlyVolumeM:    0.5,
			MaxMonthlyVolumeM:    9.75,
			VolumeRating:         67,
		},
		{
			ISIN:                 "FR0000000001",
			NumContracts:         math.NaN(),
			LastVolume:           math.NaN(),
			TotalVolume:          math.NaN(),
			OfficialPrice:        99.5,
			GrossYield:           math.NaN(),
			NetYield:             math.NaN(),
			ModifiedDuration:     math.NaN(),
			CouponRate:           math.NaN(),
			YearsToMaturity:      math.NaN(),
			MedianMonthlyVolumeM: math.NaN(),
			MinMonthlyVolumeM:    math.NaN(),
			MaxMonthlyVolumeM:    math.NaN(),
			VolumeRating:         0,
		},
	}
}

// TestWriteReadTable tests the persistence round trip.
func TestWriteReadTable(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sub", "bond_info.csv")
		table := sampleTable()

		if err := WriteTable(path, table); err != nil {
			t.Fatalf("WriteTable: %v", err)
		}
		got, err := ReadTable(path)
		if err != nil {
			t.Fatalf("ReadTable: %v", err)
		}
		if len(got) != len(table) {
			t.Fatalf("len = %d, want %d", len(got), len(table))
		}

		first := got[0]
		if first.ISIN != "IT0001234567" {
			t.Errorf("ISIN = %q, want IT0001234567", first.ISIN)
		}
		if first.TotalVolume != 1234567.89 {
			t.Errorf("TotalVolume = %v, want 1234567.89", first.TotalVolume)
		}
		if first.OfficialPrice != 98.76 {
			t.Errorf("OfficialPrice = %v, want 98.76", first.OfficialPrice)
		}
		if !first.MaturityDate.Equal(table[0].MaturityDate) {
			t.Errorf("MaturityDate = %v, want %v", first.MaturityDate, table[0].MaturityDate)
		}
		if first.VolumeRating != 67 {
			t.Errorf("VolumeRating = %d, want 67", first.VolumeRating)
		}
	})

	t.Run("NaN round trips through empty cells", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bond_info.csv")
		if err := WriteTable(path, sampleTable()); err != nil {
			t.Fatalf("WriteTable: %v", err)
		}
		got, err := ReadTable(path)
		if err != nil {
			t.Fatalf("ReadTable: %v", err)
		}

		second := got[1]
		if !math.IsNaN(second.NumContracts) {
			t.Errorf("NumContracts = %v, want NaN", second.NumContracts)
		}
		if !math.IsNaN(second.MedianMonthlyVolumeM) {
			t.Errorf("MedianMonthlyVolumeM = %v, want NaN", second.MedianMonthlyVolumeM)
		}
		if !second.MaturityDate.IsZero() {
			t.Errorf("MaturityDate = %v, want zero", second.MaturityDate)
		}
		if second.OfficialPrice != 99.5 {
			t.Errorf("OfficialPrice = %v, want 99.5", second.OfficialPrice)
		}
	})

	t.Run("rewrite replaces the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bond_info.csv")
		if err := WriteTable(path, sampleTable()); err != nil {
			t.Fatalf("WriteTable: %v", err)
		}
		if err := WriteTable(path, sampleTable()[:1]); err != nil {
			t.Fatalf("WriteTable: %v", err)
		}
		got, err := ReadTable(path)
		if err != nil {
			t.Fatalf("ReadTable: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("len = %d, want 1 after rewrite", len(got))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadTable(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
			t.Fatal("expected error for missing file, got nil")
		}
	})

	t.Run("wrong header width", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.csv")
		if err := os.WriteFile(path, []byte("isin,price\nIT0001234567,98.5\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadTable(path); err == nil {
			t.Fatal("expected error for truncated header, got nil")
		}
	})
}

// TestDuplicateISINs tests duplicate detection over a loaded table.
func TestDuplicateISINs(t *testing.T) {
	t.Run("clean table", func(t *testing.T) {
		if dups := DuplicateISINs(sampleTable()); len(dups) != 0 {
			t.Errorf("dups = %v, want none", dups)
		}
	})

	t.Run("reports each duplicate once", func(t *testing.T) {
		table := []model.InstrumentRecord{
			{ISIN: "IT0000000001"},
			{ISIN: "IT0000000001"},
			{ISIN: "IT0000000001"},
			{ISIN: "FR0000000002"},
		}
		dups := DuplicateISINs(table)
		if len(dups) != 1 || dups[0] != "IT0000000001" {
			t.Errorf("dups = %v, want [IT0000000001]", dups)
		}
	})
}
