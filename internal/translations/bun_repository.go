package translations

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

// BunOrderRepository persists translation orders with bun. Finalize runs as a
// guarded UPDATE against the pending status so at-least-once callbacks commit
// a terminal state exactly once.
type BunOrderRepository struct {
	db           *bun.DB
	orders       repository.Repository[*TranslationOrder]
	cacheService cache.CacheService
	cachePrefix  string
}

const orderNamespace = "translation_order"

func NewBunOrderRepository(db *bun.DB) *BunOrderRepository {
	return NewBunOrderRepositoryWithCache(db, nil, nil)
}

// NewBunOrderRepositoryWithCache constructs an OrderRepository backed by bun
// with optional caching on read paths. Committed writes invalidate the order
// namespace.
func NewBunOrderRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunOrderRepository {
	r := &BunOrderRepository{
		db:     db,
		orders: wrapWithCache(NewOrderRecordRepository(db), cacheService, keySerializer),
	}
	if cacheService != nil && keySerializer != nil {
		r.cacheService = cacheService
		r.cachePrefix = orderNamespace + cache.KeySeparator
	}
	return r
}

func (r *BunOrderRepository) Create(ctx context.Context, order *TranslationOrder) (*TranslationOrder, error) {
	created, err := r.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create translation order: %w", err)
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*TranslationOrder, error) {
	order, err := r.orders.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id)
	}
	return order, nil
}

func (r *BunOrderRepository) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*TranslationOrder, error) {
	records, _, err := r.orders.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.entity_id = ?", entityID).Order("created_at ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("list translation orders: %w", err)
	}
	return records, nil
}

func (r *BunOrderRepository) Update(ctx context.Context, order *TranslationOrder) (*TranslationOrder, error) {
	updated, err := r.orders.Update(ctx, order,
		repository.UpdateByID(order.ID.String()),
		repository.UpdateColumns("vendor_ref", "detail", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, order.ID)
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BunOrderRepository) Finalize(ctx context.Context, order *TranslationOrder) (*TranslationOrder, error) {
	if r.db == nil {
		return nil, fmt.Errorf("order repository: database not configured")
	}

	res, err := r.db.NewUpdate().
		Model(order).
		Where("?TableAlias.id = ?", order.ID).
		Where("?TableAlias.status = ?", OrderStatusPending).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("finalize translation order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("finalize translation order: %w", err)
	}
	if affected == 0 {
		stored, getErr := r.GetByID(ctx, order.ID)
		if getErr != nil {
			return nil, getErr
		}
		if stored.Status.Terminal() {
			return nil, ErrOrderTerminal
		}
		return nil, fmt.Errorf("finalize translation order: no rows updated")
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

// InvalidateCache drops every cached translation order entry.
func (r *BunOrderRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func mapRepositoryError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{OrderID: id}
	}
	return fmt.Errorf("translation order repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
