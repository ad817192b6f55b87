package connections

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryConnectionRepository is an in-memory implementation for scaffolding and tests.
type MemoryConnectionRepository struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]*Connection
}

// NewMemoryConnectionRepository creates an empty in-memory connection repository.
func NewMemoryConnectionRepository() *MemoryConnectionRepository {
	return &MemoryConnectionRepository{
		connections: make(map[uuid.UUID]*Connection),
	}
}

// Create inserts the supplied connection.
func (m *MemoryConnectionRepository) Create(_ context.Context, record *Connection) (*Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneConnection(record)
	m.connections[copied.ID] = copied
	return cloneConnection(copied), nil
}

// GetByID retrieves a connection by identifier.
func (m *MemoryConnectionRepository) GetByID(_ context.Context, id uuid.UUID) (*Connection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.connections[id]
	if !ok {
		return nil, &NotFoundError{Resource: "connection", Key: id.String()}
	}
	return cloneConnection(rec), nil
}

// ListByEntity returns every connection referencing the entity as either endpoint.
func (m *MemoryConnectionRepository) ListByEntity(_ context.Context, entityID uuid.UUID) ([]*Connection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Connection, 0)
	for _, rec := range m.connections {
		if rec.ServiceID == entityID || rec.ChannelID == entityID {
			out = append(out, cloneConnection(rec))
		}
	}
	return out, nil
}

// Update replaces the stored connection.
func (m *MemoryConnectionRepository) Update(_ context.Context, record *Connection) (*Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.connections[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "connection", Key: record.ID.String()}
	}
	copied := cloneConnection(record)
	m.connections[copied.ID] = copied
	return cloneConnection(copied), nil
}

func cloneConnection(src *Connection) *Connection {
	if src == nil {
		return nil
	}
	copied := *src
	copied.ValidFrom = cloneTime(src.ValidFrom)
	copied.ValidTo = cloneTime(src.ValidTo)
	copied.StaleAt = cloneTime(src.StaleAt)
	copied.DissolvedAt = cloneTime(src.DissolvedAt)
	if len(src.Overrides) > 0 {
		copied.Overrides = make([]*OpeningHoursOverride, len(src.Overrides))
		for i, override := range src.Overrides {
			copied.Overrides[i] = cloneOverride(override)
		}
	}
	return &copied
}

func cloneOverride(src *OpeningHoursOverride) *OpeningHoursOverride {
	if src == nil {
		return nil
	}
	copied := *src
	copied.ValidFrom = cloneTime(src.ValidFrom)
	copied.ValidTo = cloneTime(src.ValidTo)
	return &copied
}

func cloneTime(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	ts := *src
	return &ts
}
