package store

// allocator owns recid allocation: a LIFO free list of reclaimed
// recids plus the high-water mark. Recid 0 is the end-of-stream marker
// in the serialized format and is never handed out.
//
// The free list is backed by a membership set so that releasing a
// recid twice is detected instead of silently corrupting the
// table/free-list disjointness invariant.
type allocator struct {
	free    []uint64
	freeSet map[uint64]struct{}
	max     uint64
}

func newAllocator() *allocator {
	return &allocator{freeSet: make(map[uint64]struct{})}
}

// allocate pops the free list if non-empty, else extends the
// high-water mark. The returned recid is always >= 1.
func (a *allocator) allocate() uint64 {
	if n := len(a.free); n > 0 {
		recid := a.free[n-1]
		a.free = a.free[:n-1]
		delete(a.freeSet, recid)
		return recid
	}
	a.max++
	return a.max
}

// release pushes a previously allocated recid back onto the free list.
func (a *allocator) release(recid uint64) error {
	if recid == 0 || recid > a.max {
		return corruptf("released recid %d outside allocated range [1, %d]", recid, a.max)
	}
	if _, dup := a.freeSet[recid]; dup {
		return corruptf("recid %d released twice", recid)
	}
	a.free = append(a.free, recid)
	a.freeSet[recid] = struct{}{}
	return nil
}

// isFree reports whether recid is currently on the free list.
func (a *allocator) isFree(recid uint64) bool {
	_, ok := a.freeSet[recid]
	return ok
}

// freeRecids returns a copy of the free list, top of stack last.
func (a *allocator) freeRecids() []uint64 {
	out := make([]uint64, len(a.free))
	copy(out, a.free)
	return out
}

// compact discards every free recid at or above the highest live recid
// and lowers the high-water mark to it, shrinking the allocable space
// after bulk deletions.
func (a *allocator) compact(highestLive uint64) {
	kept := a.free[:0]
	for _, recid := range a.free {
		if recid >= highestLive {
			delete(a.freeSet, recid)
			continue
		}
		kept = append(kept, recid)
	}
	a.free = kept
	a.max = highestLive
}

// rebuild resets the allocator after a snapshot load: the high-water
// mark becomes maxObserved and every recid in [1, maxObserved] absent
// from live becomes free.
func (a *allocator) rebuild(maxObserved uint64, live recordTable) {
	a.clear()
	a.max = maxObserved
	for recid := uint64(1); recid <= maxObserved; recid++ {
		if _, ok := live[recid]; !ok {
			a.free = append(a.free, recid)
			a.freeSet[recid] = struct{}{}
		}
	}
}

func (a *allocator) clear() {
	a.free = nil
	a.freeSet = make(map[uint64]struct{})
	a.max = 0
}
