// Package store persists the aggregated table.
//
// The CSV file is the contract with the browsing layer: one row per ISIN,
// a fixed header shared between writer and reader (no schema versioning,
// renames must stay in lockstep), empty cells for unavailable values.
// The optional Postgres sink keeps per-run history beyond the latest CSV.
package store
