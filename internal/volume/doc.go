// Package volume reduces an instrument's trailing-year volume history to
// monthly median/min/max statistics.
//
// The fetcher never returns an error: network failures, non-2xx statuses
// and malformed responses all collapse to "no volume data for this
// instrument" (a nil result), which the caller propagates as nulls into
// the record instead of aborting the batch.
package volume
