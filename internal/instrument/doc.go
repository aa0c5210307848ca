// Package instrument builds one bond's record from its detail page plus
// its trailing-year volume history.
//
// Extraction is tolerant: fields missing from the page become nulls.
// A failed page fetch is an error so the batch layer can skip the ISIN
// and continue.
package instrument
