package translations

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryOrderRepository is an in-memory OrderRepository for tests and
// zero-dependency runs.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*TranslationOrder
}

// NewMemoryOrderRepository constructs an empty in-memory repository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[uuid.UUID]*TranslationOrder),
	}
}

func (r *MemoryOrderRepository) Create(_ context.Context, order *TranslationOrder) (*TranslationOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneOrder(order)
	r.orders[stored.ID] = stored
	return cloneOrder(stored), nil
}

func (r *MemoryOrderRepository) GetByID(_ context.Context, id uuid.UUID) (*TranslationOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, &NotFoundError{OrderID: id}
	}
	return cloneOrder(order), nil
}

func (r *MemoryOrderRepository) ListByEntity(_ context.Context, entityID uuid.UUID) ([]*TranslationOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*TranslationOrder
	for _, order := range r.orders {
		if order.EntityID == entityID {
			out = append(out, cloneOrder(order))
		}
	}
	return out, nil
}

func (r *MemoryOrderRepository) Update(_ context.Context, order *TranslationOrder) (*TranslationOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return nil, &NotFoundError{OrderID: order.ID}
	}
	stored := cloneOrder(order)
	r.orders[stored.ID] = stored
	return cloneOrder(stored), nil
}

func (r *MemoryOrderRepository) Finalize(_ context.Context, order *TranslationOrder) (*TranslationOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.orders[order.ID]
	if !ok {
		return nil, &NotFoundError{OrderID: order.ID}
	}
	if current.Status.Terminal() {
		return nil, ErrOrderTerminal
	}
	stored := cloneOrder(order)
	r.orders[stored.ID] = stored
	return cloneOrder(stored), nil
}

func cloneOrder(order *TranslationOrder) *TranslationOrder {
	if order == nil {
		return nil
	}
	out := *order
	out.TargetLanguages = append([]string(nil), order.TargetLanguages...)
	out.Warnings = append([]string(nil), order.Warnings...)
	out.CompletedAt = cloneTime(order.CompletedAt)
	return &out
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
