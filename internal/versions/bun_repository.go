package versions

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunEntityRepository persists entities and language versions with bun. The
// compare-and-swap updates run as guarded UPDATE statements inside a single
// transaction so the relational store gives the same guarantees as the memory
// implementation.
type BunEntityRepository struct {
	db               *bun.DB
	entities         repository.Repository[*ContentEntity]
	languageVersions repository.Repository[*LanguageVersion]
	cacheService     cache.CacheService
	cachePrefixes    []string
}

const (
	entityNamespace          = "content_entity"
	languageVersionNamespace = "language_version"
)

func NewBunEntityRepository(db *bun.DB) *BunEntityRepository {
	return NewBunEntityRepositoryWithCache(db, nil, nil)
}

// NewBunEntityRepositoryWithCache constructs an EntityRepository backed by bun
// with optional caching on read paths. Every committed write invalidates the
// entity and language version namespaces so cached reads never serve state
// from before the write.
func NewBunEntityRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunEntityRepository {
	r := &BunEntityRepository{
		db:               db,
		entities:         wrapWithCache(NewEntityRecordRepository(db), cacheService, keySerializer),
		languageVersions: wrapWithCache(NewLanguageVersionRecordRepository(db), cacheService, keySerializer),
	}
	if cacheService != nil && keySerializer != nil {
		r.cacheService = cacheService
		r.cachePrefixes = []string{
			cachePrefix(entityNamespace),
			cachePrefix(languageVersionNamespace),
		}
	}
	return r
}

func (r *BunEntityRepository) Create(ctx context.Context, record *ContentEntity) (*ContentEntity, error) {
	created, err := r.entities.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunEntityRepository) GetByID(ctx context.Context, id uuid.UUID) (*ContentEntity, error) {
	result, err := r.entities.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "entity", id.String())
	}
	records, _, err := r.languageVersions.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.entity_id = ?", id).Order("language_code ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "language version", id.String())
	}
	result.Versions = records
	return result, nil
}

func (r *BunEntityRepository) GetVersion(ctx context.Context, entityID uuid.UUID, languageCode string) (*LanguageVersion, error) {
	records, _, err := r.languageVersions.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.entity_id = ?", entityID).
				Where("?TableAlias.language_code = ?", languageCode)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "language version", entityID.String()+"/"+languageCode)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "language version", Key: entityID.String() + "/" + languageCode}
	}
	return records[0], nil
}

func (r *BunEntityRepository) CreateVersion(ctx context.Context, version *LanguageVersion) (*LanguageVersion, error) {
	created, err := r.languageVersions.Create(ctx, version)
	if err != nil {
		return nil, err
	}
	if err := r.bumpAggregate(ctx, version.EntityID); err != nil {
		return nil, err
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunEntityRepository) UpdateVersion(ctx context.Context, version *LanguageVersion, expectedRevision int64) (*LanguageVersion, error) {
	if r.db == nil {
		return nil, fmt.Errorf("entity repository: database not configured")
	}

	var committed *LanguageVersion
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		next := cloneVersion(version)
		next.Revision = expectedRevision + 1

		res, err := tx.NewUpdate().
			Model(next).
			Where("?TableAlias.id = ?", next.ID).
			Where("?TableAlias.revision = ?", expectedRevision).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update language version: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update language version: %w", err)
		}
		if affected == 0 {
			stored := &LanguageVersion{}
			actual := int64(0)
			if err := tx.NewSelect().Model(stored).Where("?TableAlias.id = ?", next.ID).Scan(ctx); err == nil {
				actual = stored.Revision
			}
			return &ConcurrencyConflictError{
				EntityID:     next.EntityID,
				LanguageCode: next.LanguageCode,
				Expected:     expectedRevision,
				Actual:       actual,
			}
		}

		if _, err := tx.NewUpdate().
			Model((*ContentEntity)(nil)).
			Set("aggregate_revision = aggregate_revision + 1").
			Set("updated_at = ?", next.UpdatedAt).
			Where("id = ?", next.EntityID).
			Exec(ctx); err != nil {
			return fmt.Errorf("bump aggregate revision: %w", err)
		}

		committed = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return committed, nil
}

func (r *BunEntityRepository) UpdateEntityVersions(ctx context.Context, entityID uuid.UUID, updated []*LanguageVersion, expectedAggregateRevision int64) (*ContentEntity, error) {
	if r.db == nil {
		return nil, fmt.Errorf("entity repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// The aggregate guard makes the whole multi-version write atomic: when
		// it trips, nothing below runs and the transaction rolls back.
		res, err := tx.NewUpdate().
			Model((*ContentEntity)(nil)).
			Set("aggregate_revision = aggregate_revision + 1").
			Where("id = ?", entityID).
			Where("aggregate_revision = ?", expectedAggregateRevision).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("guard aggregate revision: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("guard aggregate revision: %w", err)
		}
		if affected == 0 {
			return &ConcurrencyConflictError{
				EntityID: entityID,
				Expected: expectedAggregateRevision,
			}
		}

		for _, version := range updated {
			next := cloneVersion(version)
			next.Revision = version.Revision + 1
			if _, err := tx.NewUpdate().
				Model(next).
				Where("?TableAlias.id = ?", next.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("update language version %s: %w", next.LanguageCode, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Invalidate before the re-read so the returned aggregate reflects the
	// transaction just committed.
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, entityID)
}

func (r *BunEntityRepository) bumpAggregate(ctx context.Context, entityID uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("entity repository: database not configured")
	}
	_, err := r.db.NewUpdate().
		Model((*ContentEntity)(nil)).
		Set("aggregate_revision = aggregate_revision + 1").
		Where("id = ?", entityID).
		Exec(ctx)
	return err
}

// InvalidateCache drops every cached entity and language version entry.
func (r *BunEntityRepository) InvalidateCache(ctx context.Context) error {
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

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
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
