// Package screen filters and sorts the rated table for browsing.
//
// Apply never mutates its input; it returns a fresh slice, so filtering an
// already-filtered table with the same criteria is a no-op.
package screen
