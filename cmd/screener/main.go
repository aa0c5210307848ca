package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/apalladino/bondscan/internal/model"
	"github.com/apalladino/bondscan/internal/screen"
	"github.com/apalladino/bondscan/internal/store"
)

func main() {
	input := flag.String("input", "results/bond_info.csv", "path to the scanned table")
	minYears := flag.Float64("min-years", 0, "minimum years to maturity")
	maxYears := flag.Float64("max-years", 100, "maximum years to maturity")
	maxPrice := flag.Float64("max-price", 100, "maximum official price")
	minContracts := flag.Float64("min-contracts", 0, "minimum daily contract count")
	minRating := flag.Int("min-rating", 0, "minimum volume percentile rating (0-100)")
	exclude := flag.String("exclude", "", "comma-separated ISIN prefixes to drop (e.g. IT,XS)")
	prefix := flag.String("prefix", "", "keep only ISINs with this prefix")
	sortBy := flag.String("sort", string(model.FieldMedianVolumeM), "field to sort by, descending")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	table, err := store.ReadTable(*input)
	if err != nil {
		logger.Error("failed to read table", "error", err)
		os.Exit(1)
	}

	// Duplicates violate the writer's merge rule; warn and keep going.
	if dups := store.DuplicateISINs(table); len(dups) > 0 {
		logger.Warn("table contains duplicate ISINs", "isins", strings.Join(dups, ","))
	}

	criteria := screen.DefaultCriteria()
	criteria.MinYears = *minYears
	criteria.MaxYears = *maxYears
	criteria.MaxPrice = *maxPrice
	criteria.MinContracts = *minContracts
	criteria.MinRating = *minRating
	criteria.AllowPrefix = strings.ToUpper(strings.TrimSpace(*prefix))
	criteria.SortBy = model.Field(*sortBy)
	for _, p := range strings.Split(*exclude, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			criteria.ExcludePrefixes = append(criteria.ExcludePrefixes, p)
		}
	}

	result, err := screen.Apply(table, criteria)
	if err != nil {
		logger.Error("failed to filter table", "error", err)
		os.Exit(1)
	}

	printTable(result)
	fmt.Fprintf(os.Stderr, "%d of %d bonds match\n", len(result), len(table))
}

func printTable(records []model.InstrumentRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ISIN\tRATING\tMEDIAN VOL (M)\tCOUPON\tPRICE\tGROSS YIELD\tYEARS\tMATURITY\tCONTRACTS")

	for _, r := range records {
		maturity := ""
		if !r.MaturityDate.IsZero() {
			maturity = r.MaturityDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ISIN,
			r.VolumeRating,
			cell(r.MedianMonthlyVolumeM),
			cell(r.CouponRate),
			cell(r.OfficialPrice),
			cell(r.GrossYield),
			cell(r.YearsToMaturity),
			maturity,
			cell(r.NumContracts),
		)
	}

	w.Flush()
}

func cell(v float64) string {
	if v != v { // NaN
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
