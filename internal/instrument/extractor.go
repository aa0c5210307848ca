package instrument

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/apalladino/bondscan/internal/borsa"
	"github.com/apalladino/bondscan/internal/extract"
	"github.com/apalladino/bondscan/internal/model"
	"github.com/apalladino/bondscan/internal/volume"
)

// Labels on the detail page, exactly as the site prints them.
const (
	labelNumContracts     = "Numero Contratti"
	labelLastVolume       = "Volume Ultimo"
	labelTotalVolume      = "Volume totale"
	labelOfficialPrice    = "Prezzo ufficiale"
	labelNetYield         = "Rendimento effettivo a scadenza netto"
	labelGrossYield       = "Rendimento effettivo a scadenza lordo"
	labelModifiedDuration = "Duration modificata"
	labelMaturity         = "Scadenza"
	labelCouponRate       = "Tasso Cedola su base Annua"
)

// fieldLabels maps record fields to their page labels.
var fieldLabels = map[model.Field]string{
	model.FieldNumContracts:     labelNumContracts,
	model.FieldLastVolume:       labelLastVolume,
	model.FieldTotalVolume:      labelTotalVolume,
	model.FieldOfficialPrice:    labelOfficialPrice,
	model.FieldNetYield:         labelNetYield,
	model.FieldGrossYield:       labelGrossYield,
	model.FieldModifiedDuration: labelModifiedDuration,
	model.FieldCouponRate:       labelCouponRate,
}

// daysPerYear converts residual days to years for the maturity metric.
const daysPerYear = 365

// Extractor assembles RawRecords, one network fetch for the page and one
// for the volume history.
type Extractor struct {
	client *borsa.Client
	fields extract.Extractor
	volume *volume.Fetcher
	logger *slog.Logger

	now func() time.Time
}

// New creates an Extractor.
func New(client *borsa.Client, fields extract.Extractor, vf *volume.Fetcher, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		client: client,
		fields: fields,
		volume: vf,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the wall clock; used by tests to pin the
// years-to-maturity derivation.
func (e *Extractor) WithClock(now func() time.Time) *Extractor {
	e.now = now
	return e
}

// Extract builds the raw record for one ISIN.
func (e *Extractor) Extract(ctx context.Context, isin string) (model.RawRecord, error) {
	page, err := e.client.GetInstrumentPage(ctx, isin)
	if err != nil {
		return model.RawRecord{}, fmt.Errorf("fetch detail page for %s: %w", isin, err)
	}

	rec := model.RawRecord{
		ISIN:            isin,
		Values:          make(map[model.Field]string, len(fieldLabels)),
		YearsToMaturity: math.NaN(),
	}

	for _, field := range model.ScrapedFields {
		raw, ok := e.fields.Extract(fieldLabels[field], page)
		if !ok {
			rec.Values[field] = ""
			continue
		}
		rec.Values[field] = extract.NormalizeDecimal(raw)
	}

	if raw, ok := e.fields.Extract(labelMaturity, page); ok {
		maturity, err := extract.ParseDateDayFirst(raw)
		if err != nil {
			e.logger.Warn("unparseable maturity date",
				"isin", isin,
				"raw", raw,
			)
		} else {
			rec.MaturityDate = maturity
			days := maturity.Sub(e.now()).Hours() / 24
			rec.YearsToMaturity = math.Round(days/daysPerYear*100) / 100
		}
	}

	rec.Volume = e.volume.MonthlyStats(ctx, isin)

	return rec, nil
}
