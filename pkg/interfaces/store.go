package interfaces

import (
	"context"
	"errors"
)

var (
	// ErrRecordNotFound reports a missing versioned record.
	ErrRecordNotFound = errors.New("store: record not found")
	// ErrRevisionConflict reports a compare-and-swap with a stale revision.
	ErrRevisionConflict = errors.New("store: revision conflict")
)

// VersionedRecord carries an opaque payload together with its revision.
type VersionedRecord struct {
	Key      string
	Value    []byte
	Revision int64
}

// RecordStore is the opaque versioned-record contract for hosts that bring
// their own storage engine. Implementations promise nothing beyond read and
// compare-and-swap semantics; both operations honor context deadlines so
// callers never hang on storage I/O.
type RecordStore interface {
	// Read returns the record stored under key, or ErrRecordNotFound.
	Read(ctx context.Context, key string) (*VersionedRecord, error)
	// CompareAndSwap writes value under key when the stored revision equals
	// expectedRevision, returning the new revision. A mismatch yields
	// ErrRevisionConflict and leaves the record untouched. expectedRevision
	// zero means "create; fail if the key exists".
	CompareAndSwap(ctx context.Context, key string, expectedRevision int64, value []byte) (int64, error)
}
