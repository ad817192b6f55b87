package versions

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/govkit/servicecatalog/internal/domain"
)

// ContentEntity is the aggregate root owning every language version of one
// catalog entity. Entities are created on first save and never physically
// deleted; removal is a logical status on the language versions.
type ContentEntity struct {
	bun.BaseModel `bun:"table:content_entities,alias:ce"`

	ID   uuid.UUID         `bun:",pk,type:uuid"   json:"id"`
	Type domain.EntityType `bun:"type,notnull"    json:"type"`
	// AggregateRevision guards multi-version writes (RemoveEntity); it moves
	// on every committed write touching any language version of the entity.
	AggregateRevision int64     `bun:"aggregate_revision,notnull,default:0" json:"aggregate_revision"`
	CreatedAt         time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Versions []*LanguageVersion `bun:"rel:has-many,join:id=entity_id" json:"versions,omitempty"`
}

// VersionFor returns the language version for the supplied code, or nil.
func (e *ContentEntity) VersionFor(languageCode string) *LanguageVersion {
	if e == nil {
		return nil
	}
	for _, version := range e.Versions {
		if version != nil && version.LanguageCode == languageCode {
			return version
		}
	}
	return nil
}

// HasLiveVersion reports whether at least one language version is still an
// eligible connection endpoint (not deleted, not removed).
func (e *ContentEntity) HasLiveVersion() bool {
	if e == nil {
		return false
	}
	for _, version := range e.Versions {
		if version != nil && version.Status.IsLive() {
			return true
		}
	}
	return false
}

// LanguageVersion is the per-language editable and publishable instance of a
// catalog entity. Status only changes through validator-approved transitions;
// Revision strictly increases with every committed write.
type LanguageVersion struct {
	bun.BaseModel `bun:"table:language_versions,alias:lv"`

	ID           uuid.UUID     `bun:",pk,type:uuid"            json:"id"`
	EntityID     uuid.UUID     `bun:"entity_id,notnull,type:uuid" json:"entity_id"`
	LanguageCode string        `bun:"language_code,notnull"    json:"language_code"`
	Status       domain.Status `bun:"status,notnull,default:'draft'" json:"status"`
	Revision     int64         `bun:"revision,notnull,default:1" json:"revision"`
	PublishedAt  *time.Time    `bun:"published_at,nullzero"    json:"published_at,omitempty"`
	ArchivedAt   *time.Time    `bun:"archived_at,nullzero"     json:"archived_at,omitempty"`
	ReviewedAt   *time.Time    `bun:"reviewed_at,nullzero"     json:"reviewed_at,omitempty"`
	ReviewedBy   *uuid.UUID    `bun:"reviewed_by,nullzero,type:uuid" json:"reviewed_by,omitempty"`
	CreatedAt    time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
