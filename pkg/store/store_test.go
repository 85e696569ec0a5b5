package store

import (
	"errors"
	"testing"

	"github.com/gisdevelope/mapdb/pkg/serializer"
)

var str = serializer.String{}

func newTestStore(t *testing.T) *MemStore {
	t.Helper()
	return NewMemStore(DefaultOptions())
}

func TestMemStore_PutGetDelete(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	recid, err := s.Put("hello", str)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if recid == 0 {
		t.Fatal("Put returned reserved recid 0")
	}

	v, err := s.Get(recid, str)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != "hello" {
		t.Errorf("Get mismatch: got %v, want hello", v)
	}

	if err := s.Delete(recid, str); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err = s.Get(recid, str)
	if !IsVoid(err) {
		t.Errorf("expected VoidRecordError after delete, got %v", err)
	}
}

func TestMemStore_GetVoidRecid(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	_, err := s.Get(42, str)
	if !IsVoid(err) {
		t.Errorf("expected VoidRecordError, got %v", err)
	}

	var verr *VoidRecordError
	if !errors.As(err, &verr) || verr.Recid != 42 {
		t.Errorf("error should carry the recid: %v", err)
	}
}

func TestMemStore_NullVsAbsent(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	// nil value stores the null sentinel, not an error
	recid, err := s.Put(nil, str)
	if err != nil {
		t.Fatalf("Put(nil) failed: %v", err)
	}
	v, err := s.Get(recid, str)
	if err != nil {
		t.Fatalf("Get of null record failed: %v", err)
	}
	if v != nil {
		t.Errorf("null record should read as nil, got %v", v)
	}

	// deleted recids are void, distinguishable from null
	if err := s.Delete(recid, str); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(recid, str); !IsVoid(err) {
		t.Errorf("deleted recid should be void, got %v", err)
	}
}

func TestMemStore_EmptyPayloadIsNotNull(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	recid, err := s.Put("", str)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	v, err := s.Get(recid, str)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != "" {
		t.Errorf("empty payload should read back as empty string, got %#v", v)
	}
}

func TestMemStore_Preallocate(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	recid, err := s.Preallocate()
	if err != nil {
		t.Fatalf("Preallocate failed: %v", err)
	}

	// preallocated slot holds the null sentinel
	v, err := s.Get(recid, str)
	if err != nil {
		t.Fatalf("Get of preallocated recid failed: %v", err)
	}
	if v != nil {
		t.Errorf("preallocated record should be null, got %v", v)
	}

	if err := s.Update(recid, "filled", str); err != nil {
		t.Fatalf("Update of preallocated recid failed: %v", err)
	}
	v, err = s.Get(recid, str)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != "filled" {
		t.Errorf("got %v, want filled", v)
	}
}

func TestMemStore_UpdateVoidRecid(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	if err := s.Update(7, "x", str); !IsVoid(err) {
		t.Errorf("expected VoidRecordError, got %v", err)
	}
}

func TestMemStore_RecidUniqueness(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		recid, err := s.Put("v", str)
		if err != nil {
			t.Fatalf("Put %d failed: %v", i, err)
		}
		if seen[recid] {
			t.Fatalf("recid %d handed out twice while live", recid)
		}
		seen[recid] = true
	}
}

func TestMemStore_FreeListReuse(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	r1, _ := s.Put("a", str)
	r2, _ := s.Put("b", str)

	if err := s.Delete(r2, str); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(r1, str); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// LIFO: last freed comes back first
	got, err := s.Preallocate()
	if err != nil {
		t.Fatalf("Preallocate failed: %v", err)
	}
	if got != r1 {
		t.Errorf("expected reuse of recid %d, got %d", r1, got)
	}
	got2, _ := s.Preallocate()
	if got2 != r2 {
		t.Errorf("expected reuse of recid %d, got %d", r2, got2)
	}

	// free list drained, next allocation extends the high-water mark
	got3, _ := s.Preallocate()
	if got3 != 3 {
		t.Errorf("expected fresh recid 3, got %d", got3)
	}
}

func TestMemStore_Compact(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	var recids []uint64
	for i := 0; i < 10; i++ {
		r, _ := s.Put("v", str)
		recids = append(recids, r)
	}
	// delete everything above the third record
	for _, r := range recids[3:] {
		if err := s.Delete(r, str); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
	}

	if err := s.Compact(); err != nil {
		t.Fatalf("Compact failed: %v", err)
	}

	st := s.Stats()
	if st.MaxRecid != 3 {
		t.Errorf("maxRecid after compact: got %d, want 3", st.MaxRecid)
	}
	if st.FreeRecids != 0 {
		t.Errorf("free list after compact: got %d entries, want 0", st.FreeRecids)
	}
	if err := s.Verify(); err != nil {
		t.Errorf("Verify after compact failed: %v", err)
	}

	// allocable space restarts right after the highest live recid
	r, _ := s.Preallocate()
	if r != 4 {
		t.Errorf("post-compact allocation: got %d, want 4", r)
	}
}

func TestMemStore_VerifyNeverFailsUnderNormalOps(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	var live []uint64
	for i := 0; i < 50; i++ {
		r, err := s.Put("v", str)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		live = append(live, r)
		if i%3 == 0 {
			victim := live[0]
			live = live[1:]
			if err := s.Delete(victim, str); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
		}
		if err := s.Verify(); err != nil {
			t.Fatalf("Verify failed after op %d: %v", i, err)
		}
	}
}

func TestMemStore_Recids(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	want := make(map[uint64]bool)
	for i := 0; i < 5; i++ {
		r, _ := s.Put("v", str)
		want[r] = true
	}

	recids, err := s.Recids()
	if err != nil {
		t.Fatalf("Recids failed: %v", err)
	}
	if len(recids) != len(want) {
		t.Fatalf("got %d recids, want %d", len(recids), len(want))
	}
	for _, r := range recids {
		if !want[r] {
			t.Errorf("unexpected recid %d", r)
		}
	}
}

func TestMemStore_Clear(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	r, _ := s.Put("v", str)
	s.Delete(r, str)
	s.Put("w", str)

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	st := s.Stats()
	if st.Records != 0 || st.FreeRecids != 0 || st.MaxRecid != 0 {
		t.Errorf("Clear left state behind: %+v", st)
	}

	// allocation restarts from 1
	r2, _ := s.Preallocate()
	if r2 != 1 {
		t.Errorf("post-clear allocation: got %d, want 1", r2)
	}
}

func TestMemStore_CommitIsNoOp(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	r, _ := s.Put("v", str)
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if _, err := s.Get(r, str); err != nil {
		t.Errorf("record lost across no-op commit: %v", err)
	}
}

func TestMemStore_RollbackUnsupported(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	if err := s.Rollback(); err != ErrRollbackUnsupported {
		t.Errorf("expected ErrRollbackUnsupported, got %v", err)
	}
}

func TestMemStore_CloseIdempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed false after Close")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	if _, err := s.Put("v", str); err != ErrClosed {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
	if _, err := s.Get(1, str); err != ErrClosed {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}

func TestMemStore_ThreadUnsafeOption(t *testing.T) {
	s := NewMemStore(Options{ThreadSafe: false})
	defer s.Close()

	r, err := s.Put("v", str)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	v, err := s.Get(r, str)
	if err != nil || v != "v" {
		t.Errorf("Get: got (%v, %v)", v, err)
	}
}

func TestMemStore_Equals(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)
	defer a.Close()
	defer b.Close()

	fill := func(s *MemStore) {
		r1, _ := s.Put("x", str)
		s.Put(nil, str)
		s.Put("", str)
		r4, _ := s.Put("y", str)
		s.Delete(r1, str)
		s.Delete(r4, str)
	}
	fill(a)
	fill(b)

	if !a.Equals(b) {
		t.Error("identically built stores should be equal")
	}

	// null sentinel never equals an empty payload
	c := newTestStore(t)
	d := newTestStore(t)
	defer c.Close()
	defer d.Close()
	c.Put(nil, str)
	d.Put("", str)
	if c.Equals(d) {
		t.Error("null record must not equal empty payload")
	}
}
