package translations

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/govkit/servicecatalog/internal/domain"
)

// OrderStatus is the lifecycle of a translation order: Pending until the
// vendor reports, then Completed or Failed, both terminal.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

// Terminal reports whether the order accepts no further callbacks.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed
}

// TranslationOrder is a request to the external vendor to produce additional
// target-language versions of an entity. After termination it is immutable.
type TranslationOrder struct {
	bun.BaseModel `bun:"table:translation_orders,alias:to"`

	ID                uuid.UUID         `bun:",pk,type:uuid"      json:"id"`
	Reference         string            `bun:"reference,notnull"  json:"reference"`
	EntityID          uuid.UUID         `bun:"entity_id,notnull,type:uuid" json:"entity_id"`
	EntityType        domain.EntityType `bun:"entity_type,notnull" json:"entity_type"`
	SourceLanguage    string            `bun:"source_language,notnull" json:"source_language"`
	TargetLanguages   []string          `bun:"target_languages,type:jsonb,notnull" json:"target_languages"`
	Status            OrderStatus       `bun:"status,notnull,default:'pending'" json:"status"`
	SubscriberContact string            `bun:"subscriber_contact,notnull" json:"subscriber_contact"`
	VendorRef         string            `bun:"vendor_ref"         json:"vendor_ref,omitempty"`
	// Warnings records per-language transition rejections observed while
	// applying a successful callback; they never fail the order.
	Warnings    []string   `bun:"warnings,type:jsonb"  json:"warnings,omitempty"`
	Detail      string     `bun:"detail"               json:"detail,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	CompletedAt *time.Time `bun:"completed_at,nullzero" json:"completed_at,omitempty"`
}

// Targets returns the target languages as a lookup set.
func (o *TranslationOrder) Targets() map[string]struct{} {
	out := make(map[string]struct{}, len(o.TargetLanguages))
	for _, lang := range o.TargetLanguages {
		out[lang] = struct{}{}
	}
	return out
}
