package store

import (
	"errors"
	"testing"
)

// Tests that deliberately break internal invariants to prove Verify
// and the allocator guards catch them.

func TestVerify_DetectsFreeAndLiveOverlap(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	recid, _ := s.Put("v", str)

	// corrupt the free list: the live recid is also marked free
	s.alloc.free = append(s.alloc.free, recid)
	s.alloc.freeSet[recid] = struct{}{}

	err := s.Verify()
	var cerr *CorruptionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CorruptionError, got %v", err)
	}
}

func TestVerify_DetectsOrphanRecid(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	s.Put("a", str)
	s.Put("b", str)

	// recid 2 vanishes from the table without entering the free list
	delete(s.tbl, 2)

	err := s.Verify()
	var cerr *CorruptionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CorruptionError for orphaned recid, got %v", err)
	}
}

func TestVerify_DetectsRecidAboveHighWaterMark(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	s.Put("a", str)
	s.tbl.write(100, BytesRecord([]byte("ghost")))

	err := s.Verify()
	var cerr *CorruptionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CorruptionError for recid above maxRecid, got %v", err)
	}
}

func TestAllocator_DoubleReleaseDetected(t *testing.T) {
	a := newAllocator()
	recid := a.allocate()

	if err := a.release(recid); err != nil {
		t.Fatalf("first release failed: %v", err)
	}
	err := a.release(recid)
	var cerr *CorruptionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CorruptionError on duplicate release, got %v", err)
	}
}

func TestAllocator_ReleaseOutOfRangeDetected(t *testing.T) {
	a := newAllocator()
	a.allocate()

	for _, recid := range []uint64{0, 5} {
		err := a.release(recid)
		var cerr *CorruptionError
		if !errors.As(err, &cerr) {
			t.Errorf("release(%d): expected CorruptionError, got %v", recid, err)
		}
	}
}

func TestParanoidClose_FailsOnCorruption(t *testing.T) {
	s := NewMemStore(Options{ThreadSafe: true, Paranoid: true})

	recid, _ := s.Put("v", str)
	s.alloc.free = append(s.alloc.free, recid)
	s.alloc.freeSet[recid] = struct{}{}

	err := s.Close()
	var cerr *CorruptionError
	if !errors.As(err, &cerr) {
		t.Fatalf("paranoid Close should surface corruption, got %v", err)
	}
	if s.IsClosed() {
		t.Error("store should not be marked closed after failed verification")
	}
}
