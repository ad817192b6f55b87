package versions

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryEntityRepository is an in-memory implementation for scaffolding and
// tests. All compare-and-swap semantics are enforced under a single lock so
// concurrent writers observe the same guarantees the relational store gives.
type MemoryEntityRepository struct {
	mu       sync.RWMutex
	entities map[uuid.UUID]*ContentEntity
}

// NewMemoryEntityRepository creates an empty in-memory entity repository.
func NewMemoryEntityRepository() *MemoryEntityRepository {
	return &MemoryEntityRepository{
		entities: make(map[uuid.UUID]*ContentEntity),
	}
}

// Create inserts the supplied entity.
func (m *MemoryEntityRepository) Create(_ context.Context, record *ContentEntity) (*ContentEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneEntity(record)
	m.entities[copied.ID] = copied
	return cloneEntity(copied), nil
}

// GetByID retrieves an entity and all of its language versions.
func (m *MemoryEntityRepository) GetByID(_ context.Context, id uuid.UUID) (*ContentEntity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.entities[id]
	if !ok {
		return nil, &NotFoundError{Resource: "entity", Key: id.String()}
	}
	return cloneEntity(rec), nil
}

// GetVersion retrieves one language version.
func (m *MemoryEntityRepository) GetVersion(_ context.Context, entityID uuid.UUID, languageCode string) (*LanguageVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.entities[entityID]
	if !ok {
		return nil, &NotFoundError{Resource: "entity", Key: entityID.String()}
	}
	version := rec.VersionFor(languageCode)
	if version == nil {
		return nil, &NotFoundError{Resource: "language version", Key: entityID.String() + "/" + languageCode}
	}
	return cloneVersion(version), nil
}

// CreateVersion inserts a new language version under its entity.
func (m *MemoryEntityRepository) CreateVersion(_ context.Context, version *LanguageVersion) (*LanguageVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.entities[version.EntityID]
	if !ok {
		return nil, &NotFoundError{Resource: "entity", Key: version.EntityID.String()}
	}
	if rec.VersionFor(version.LanguageCode) != nil {
		// Map-key uniqueness per language; callers go through EnsureVersion.
		return nil, &ConcurrencyConflictError{
			EntityID:     version.EntityID,
			LanguageCode: version.LanguageCode,
			Expected:     0,
			Actual:       rec.VersionFor(version.LanguageCode).Revision,
		}
	}
	copied := cloneVersion(version)
	rec.Versions = append(rec.Versions, copied)
	rec.AggregateRevision++
	return cloneVersion(copied), nil
}

// UpdateVersion commits the version when the stored revision matches
// expectedRevision. The stored revision and the aggregate revision advance
// together; a mismatch leaves everything untouched.
func (m *MemoryEntityRepository) UpdateVersion(_ context.Context, version *LanguageVersion, expectedRevision int64) (*LanguageVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.entities[version.EntityID]
	if !ok {
		return nil, &NotFoundError{Resource: "entity", Key: version.EntityID.String()}
	}
	stored := rec.VersionFor(version.LanguageCode)
	if stored == nil {
		return nil, &NotFoundError{Resource: "language version", Key: version.EntityID.String() + "/" + version.LanguageCode}
	}
	if stored.Revision != expectedRevision {
		return nil, &ConcurrencyConflictError{
			EntityID:     version.EntityID,
			LanguageCode: version.LanguageCode,
			Expected:     expectedRevision,
			Actual:       stored.Revision,
		}
	}

	copied := cloneVersion(version)
	copied.Revision = expectedRevision + 1
	*stored = *copied
	rec.AggregateRevision++
	rec.UpdatedAt = copied.UpdatedAt
	return cloneVersion(stored), nil
}

// UpdateEntityVersions atomically commits every supplied version when the
// aggregate revision still matches. No version changes on a conflict.
func (m *MemoryEntityRepository) UpdateEntityVersions(_ context.Context, entityID uuid.UUID, updated []*LanguageVersion, expectedAggregateRevision int64) (*ContentEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.entities[entityID]
	if !ok {
		return nil, &NotFoundError{Resource: "entity", Key: entityID.String()}
	}
	if rec.AggregateRevision != expectedAggregateRevision {
		return nil, &ConcurrencyConflictError{
			EntityID: entityID,
			Expected: expectedAggregateRevision,
			Actual:   rec.AggregateRevision,
		}
	}

	// Resolve every target before touching any of them so a missing version
	// cannot leave a partial write behind.
	targets := make([]*LanguageVersion, len(updated))
	for i, next := range updated {
		stored := rec.VersionFor(next.LanguageCode)
		if stored == nil {
			return nil, &NotFoundError{Resource: "language version", Key: entityID.String() + "/" + next.LanguageCode}
		}
		targets[i] = stored
	}
	for i, next := range updated {
		copied := cloneVersion(next)
		copied.Revision = targets[i].Revision + 1
		*targets[i] = *copied
	}
	rec.AggregateRevision++
	return cloneEntity(rec), nil
}

func cloneEntity(src *ContentEntity) *ContentEntity {
	if src == nil {
		return nil
	}
	copied := *src
	if len(src.Versions) > 0 {
		copied.Versions = make([]*LanguageVersion, len(src.Versions))
		for i, version := range src.Versions {
			copied.Versions[i] = cloneVersion(version)
		}
	}
	return &copied
}

func cloneVersion(src *LanguageVersion) *LanguageVersion {
	if src == nil {
		return nil
	}
	copied := *src
	if src.PublishedAt != nil {
		ts := *src.PublishedAt
		copied.PublishedAt = &ts
	}
	if src.ArchivedAt != nil {
		ts := *src.ArchivedAt
		copied.ArchivedAt = &ts
	}
	if src.ReviewedAt != nil {
		ts := *src.ReviewedAt
		copied.ReviewedAt = &ts
	}
	if src.ReviewedBy != nil {
		id := *src.ReviewedBy
		copied.ReviewedBy = &id
	}
	return &copied
}
