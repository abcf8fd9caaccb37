// Package billing holds the runtime accounting state of processes: the
// immutable allocations a process has consumed and the ledger that
// aggregates their cost and penalty.
//
// Types in this package carry no locks.  A Process is owned by exactly one
// repository entry and callers must hold that entry's lock while mutating it.
package billing
