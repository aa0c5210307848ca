// Package database manages the optional Postgres connection for run
// history.
package database
