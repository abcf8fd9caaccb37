package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/fluxcost/runtime/billing"
	"github.com/viant/fluxcost/service/dao"
)

// Service implements an in-memory, thread-safe process repository.  The PID
// space is split across shards whose locks guard only lookup and insertion;
// every process sits behind its own read-write lock, so ledger work on one
// PID never serialises against another.
type Service struct {
	shards     []*shard
	shardCount int
	mask       uint32
}

type shard struct {
	mux     sync.RWMutex
	entries map[billing.PID]*entry
}

type entry struct {
	mux     sync.RWMutex
	process *billing.Process
}

var _ dao.ProcessRepository = (*Service)(nil)

// New creates an empty repository.
func New(options ...Option) *Service {
	s := &Service{shardCount: DefaultShards}
	for _, opt := range options {
		opt(s)
	}
	count := 1
	for count < s.shardCount {
		count <<= 1
	}
	s.shardCount = count
	s.mask = uint32(count - 1)
	s.shards = make([]*shard, count)
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[billing.PID]*entry)}
	}
	return s
}

// Shards returns the effective shard count.
func (s *Service) Shards() int {
	return s.shardCount
}

func (s *Service) shardOf(pid billing.PID) *shard {
	// spread sequential PIDs across shards
	h := pid * 0x9E3779B1
	h ^= h >> 16
	return s.shards[h&s.mask]
}

func (s *Service) lookup(pid billing.PID) (*entry, bool) {
	sh := s.shardOf(pid)
	sh.mux.RLock()
	e, ok := sh.entries[pid]
	sh.mux.RUnlock()
	return e, ok
}

func (s *Service) Add(_ context.Context, pid billing.PID) error {
	sh := s.shardOf(pid)
	sh.mux.Lock()
	defer sh.mux.Unlock()
	if _, ok := sh.entries[pid]; ok {
		return fmt.Errorf("pid %d: %w", pid, dao.ErrAlreadyExists)
	}
	sh.entries[pid] = &entry{process: billing.NewProcess(pid)}
	return nil
}

func (s *Service) Update(_ context.Context, pid billing.PID, fn func(*billing.Process) error) error {
	e, ok := s.lookup(pid)
	if !ok {
		return fmt.Errorf("pid %d: %w", pid, dao.ErrNotFound)
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	return fn(e.process)
}

func (s *Service) View(_ context.Context, pid billing.PID, fn func(*billing.Process) error) error {
	e, ok := s.lookup(pid)
	if !ok {
		return fmt.Errorf("pid %d: %w", pid, dao.ErrNotFound)
	}
	e.mux.RLock()
	defer e.mux.RUnlock()
	return fn(e.process)
}

func (s *Service) ForEach(ctx context.Context, fn func(billing.PID, *billing.Process)) {
	for _, h := range s.Snapshot(ctx) {
		pid := h.PID()
		h.View(func(p *billing.Process) { fn(pid, p) })
	}
}

// Snapshot holds every shard's read lock at once while collecting handles,
// so the returned set matches a single point in time.  Handles are ordered
// by PID.
func (s *Service) Snapshot(_ context.Context) []dao.Handle {
	for _, sh := range s.shards {
		sh.mux.RLock()
	}
	size := 0
	for _, sh := range s.shards {
		size += len(sh.entries)
	}
	collected := make([]handle, 0, size)
	for _, sh := range s.shards {
		for pid, e := range sh.entries {
			collected = append(collected, handle{pid: pid, entry: e})
		}
	}
	for _, sh := range s.shards {
		sh.mux.RUnlock()
	}

	sort.Slice(collected, func(i, j int) bool { return collected[i].pid < collected[j].pid })
	ret := make([]dao.Handle, len(collected))
	for i := range collected {
		ret[i] = collected[i]
	}
	return ret
}

func (s *Service) Len() int {
	size := 0
	for _, sh := range s.shards {
		sh.mux.RLock()
		size += len(sh.entries)
		sh.mux.RUnlock()
	}
	return size
}

func (s *Service) Clear() {
	for _, sh := range s.shards {
		sh.mux.Lock()
		sh.entries = make(map[billing.PID]*entry)
		sh.mux.Unlock()
	}
}

type handle struct {
	pid   billing.PID
	entry *entry
}

func (h handle) PID() billing.PID {
	return h.pid
}

func (h handle) View(fn func(*billing.Process)) {
	h.entry.mux.RLock()
	defer h.entry.mux.RUnlock()
	fn(h.entry.process)
}
