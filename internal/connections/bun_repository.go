package connections

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunConnectionRepository persists connections and their opening-hours
// overrides with bun.
type BunConnectionRepository struct {
	db            *bun.DB
	repo          repository.Repository[*Connection]
	overrides     repository.Repository[*OpeningHoursOverride]
	cacheService  cache.CacheService
	cachePrefixes []string
}

const (
	connectionNamespace = "connection"
	overrideNamespace   = "opening_hours_override"
)

func NewBunConnectionRepository(db *bun.DB) *BunConnectionRepository {
	return NewBunConnectionRepositoryWithCache(db, nil, nil)
}

// NewBunConnectionRepositoryWithCache constructs a ConnectionRepository backed
// by bun with optional caching on read paths. Committed writes invalidate the
// connection and override namespaces.
func NewBunConnectionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunConnectionRepository {
	r := &BunConnectionRepository{
		db:        db,
		repo:      wrapWithCache(NewConnectionRecordRepository(db), cacheService, keySerializer),
		overrides: wrapWithCache(NewOverrideRecordRepository(db), cacheService, keySerializer),
	}
	if cacheService != nil && keySerializer != nil {
		r.cacheService = cacheService
		r.cachePrefixes = []string{
			cachePrefix(connectionNamespace),
			cachePrefix(overrideNamespace),
		}
	}
	return r
}

func (r *BunConnectionRepository) Create(ctx context.Context, record *Connection) (*Connection, error) {
	if r.db == nil {
		return nil, fmt.Errorf("connection repository: database not configured")
	}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return fmt.Errorf("insert connection: %w", err)
		}
		if len(record.Overrides) == 0 {
			return nil
		}
		for _, override := range record.Overrides {
			if override.ID == uuid.Nil {
				override.ID = uuid.New()
			}
			override.ConnectionID = record.ID
		}
		if _, err := tx.NewInsert().Model(&record.Overrides).Exec(ctx); err != nil {
			return fmt.Errorf("insert overrides: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunConnectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Connection, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "connection", id.String())
	}
	if err := r.loadOverrides(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *BunConnectionRepository) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*Connection, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("?TableAlias.service_id = ?", entityID).
					WhereOr("?TableAlias.channel_id = ?", entityID)
			})
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "connection", entityID.String())
	}
	for _, record := range records {
		if err := r.loadOverrides(ctx, record); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (r *BunConnectionRepository) Update(ctx context.Context, record *Connection) (*Connection, error) {
	now := time.Now().UTC()
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = now
	}
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"organization_scope",
			"valid_from",
			"valid_to",
			"stale",
			"stale_at",
			"stale_reason",
			"dissolved_at",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "connection", record.ID.String())
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	updated.Overrides = record.Overrides
	return updated, nil
}

// InvalidateCache drops every cached connection and override entry.
func (r *BunConnectionRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil {
		return nil
	}
	for _, prefix := range r.cachePrefixes {
		if err := r.cacheService.DeleteByPrefix(ctx, prefix); err != nil {
			return err
		}
	}
	return nil
}

func (r *BunConnectionRepository) loadOverrides(ctx context.Context, record *Connection) error {
	overrides, _, err := r.overrides.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.connection_id = ?", record.ID).Order("position ASC")
		}),
	)
	if err != nil {
		return mapRepositoryError(err, "opening hours override", record.ID.String())
	}
	record.Overrides = overrides
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}
