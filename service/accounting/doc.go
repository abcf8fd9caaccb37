// Package accounting is the orchestration layer of the engine.  It validates
// requests against the policy registry, mutates process ledgers through the
// repository and aggregates billing reports sequentially or on a worker pool.
//
// Reports are not transactional snapshots: a report running next to
// concurrent AddAllocation calls may see one process after its append and
// another before.
package accounting
