package store

import "sync"

// guard serializes access to the record table, the free list and
// maxRecid. All three mutate together, so they share one lock rather
// than carrying independent lock-free semantics.
type guard interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// noGuard is the degenerate guard used when a store is configured
// thread-unsafe for single-threaded performance.
type noGuard struct{}

func (noGuard) Lock()    {}
func (noGuard) Unlock()  {}
func (noGuard) RLock()   {}
func (noGuard) RUnlock() {}

func newGuard(threadSafe bool) guard {
	if threadSafe {
		return &sync.RWMutex{}
	}
	return noGuard{}
}
