// Package idgen generates event and message identifiers.  Tests may replace
// NewFunc to get deterministic values.
package idgen
