// Package worker provides a bounded goroutine pool.  Callers submit units of
// work; Shutdown stops accepting new work and blocks until everything already
// submitted has run.
package worker
