// Package model defines shared data types for the bond scanner.
//
// Conventions:
//   - Numeric fields are float64; NaN means "not available" (a missing
//     field on the source page is a null, never an error)
//   - Dates: time.Time, zero value = unknown
//   - ISINs: 12-character ISO 6166 codes; the first two characters are the
//     country/registration prefix
package model
