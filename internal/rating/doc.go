// Package rating assigns each record a 0-100 liquidity percentile rank
// from its median monthly trading volume.
//
// The rank is relative to one batch, not an absolute liquidity scale;
// it must be recomputed whenever the batch changes.
package rating
