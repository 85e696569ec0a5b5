package store

// recordTable is the authoritative in-memory mapping from live recid
// to record. All mutation passes through here under the store's guard.
type recordTable map[uint64]Record

func newRecordTable() recordTable {
	return make(recordTable)
}

func (t recordTable) read(recid uint64) (Record, bool) {
	rec, ok := t[recid]
	return rec, ok
}

func (t recordTable) write(recid uint64, rec Record) {
	t[recid] = rec
}

// remove deletes the slot and reports whether it was present.
func (t recordTable) remove(recid uint64) bool {
	_, ok := t[recid]
	delete(t, recid)
	return ok
}

// recids returns an unordered point-in-time snapshot of the live keys.
func (t recordTable) recids() []uint64 {
	out := make([]uint64, 0, len(t))
	for recid := range t {
		out = append(out, recid)
	}
	return out
}

// highest returns the largest live recid, or 0 when empty.
func (t recordTable) highest() uint64 {
	var max uint64
	for recid := range t {
		if recid > max {
			max = recid
		}
	}
	return max
}
