// Package progress tracks how far a concurrent billing report has advanced.
// A tracker travels in the context so the aggregation code can report
// without a global registry.
package progress
