// Package batch drives the instrument extractor over a list of ISINs and
// assembles the combined table.
//
// Collection is tolerant (failed ISINs are logged and dropped, never
// retried); the coercion phase afterwards is strict (a column that cannot
// be parsed as a number means the page structure changed and the whole
// batch is suspect, so it aborts the run). The two phases are kept
// separate on purpose.
package batch
