// Package universe loads the ISIN list a batch run covers.
//
// The canonical source is the simpletoolsforinvestors "listino" CSV
// (semicolon-separated instrument master with ISIN Code and Currency
// columns); a plain ISIN-per-line file works too.
package universe
