package store

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by every operation on a closed store.
	ErrClosed = errors.New("store: store is closed")

	// ErrFileLocked means the backing path is already exclusively
	// locked by another process or handle. Open fails immediately;
	// there is no lock waiting.
	ErrFileLocked = errors.New("store: backing file locked by another process")

	// ErrRollbackUnsupported is returned by Rollback on the in-memory
	// variant, which has no committed state to return to.
	ErrRollbackUnsupported = errors.New("store: rollback not supported by this store")
)

// VoidRecordError reports an operation against a recid with no live
// record, distinguishing "no such record" from "record holds no value".
type VoidRecordError struct {
	Recid uint64
}

func (e *VoidRecordError) Error() string {
	return fmt.Sprintf("store: recid %d does not exist", e.Recid)
}

// IsVoid reports whether err is a VoidRecordError.
func IsVoid(err error) bool {
	var v *VoidRecordError
	return errors.As(err, &v)
}

// CorruptionError reports a violated internal invariant. It indicates
// a bug or on-disk damage, never ordinary user error.
type CorruptionError struct {
	Detail string
}

func (e *CorruptionError) Error() string {
	return "store: data corruption: " + e.Detail
}

func corruptf(format string, args ...any) *CorruptionError {
	return &CorruptionError{Detail: fmt.Sprintf(format, args...)}
}
