package storage

import (
	"context"
	"sync"

	"github.com/govkit/servicecatalog/pkg/interfaces"
)

// MemoryRecordStore is the in-process reference implementation of the
// versioned record contract. Hosts embedding the catalog without a relational
// database can use it directly, and its tests double as a conformance check
// for external implementations.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	records map[string]interfaces.VersionedRecord
}

// NewMemoryRecordStore constructs an empty record store.
func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{records: map[string]interfaces.VersionedRecord{}}
}

// Read returns the record stored under key.
func (s *MemoryRecordStore) Read(ctx context.Context, key string) (*interfaces.VersionedRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	if !ok {
		return nil, interfaces.ErrRecordNotFound
	}
	clone := record
	clone.Value = append([]byte(nil), record.Value...)
	return &clone, nil
}

// CompareAndSwap writes value under key when the stored revision still equals
// expectedRevision. Expected revision zero creates the key and fails when it
// already exists.
func (s *MemoryRecordStore) CompareAndSwap(ctx context.Context, key string, expectedRevision int64, value []byte) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok {
		if expectedRevision != 0 {
			return 0, interfaces.ErrRecordNotFound
		}
		s.records[key] = interfaces.VersionedRecord{
			Key:      key,
			Value:    append([]byte(nil), value...),
			Revision: 1,
		}
		return 1, nil
	}

	if record.Revision != expectedRevision {
		return 0, interfaces.ErrRevisionConflict
	}

	record.Value = append([]byte(nil), value...)
	record.Revision++
	s.records[key] = record
	return record.Revision, nil
}

var _ interfaces.RecordStore = (*MemoryRecordStore)(nil)
