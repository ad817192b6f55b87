package connections

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/govkit/servicecatalog/internal/domain"
)

// OverrideKind classifies an opening-hours override. Specificity order is
// Exceptional > Special > Normal; within one kind overlapping coverage is a
// configuration error rejected at write time.
type OverrideKind string

const (
	OverrideKindNormal      OverrideKind = "normal"
	OverrideKindSpecial     OverrideKind = "special"
	OverrideKindExceptional OverrideKind = "exceptional"
)

// NormalizeOverrideKind coerces arbitrary kind strings.
func NormalizeOverrideKind(input string) OverrideKind {
	return OverrideKind(strings.ToLower(strings.TrimSpace(input)))
}

// Valid reports whether the kind is one of the three known override kinds.
func (k OverrideKind) Valid() bool {
	switch k {
	case OverrideKindNormal, OverrideKindSpecial, OverrideKindExceptional:
		return true
	default:
		return false
	}
}

// DayOfWeekMask is a bit set over weekdays, bit 0 = Monday through bit 6 = Sunday.
type DayOfWeekMask uint8

// DayMaskAll covers every weekday.
const DayMaskAll DayOfWeekMask = 0x7f

// Contains reports whether the mask covers the supplied weekday.
func (m DayOfWeekMask) Contains(day time.Weekday) bool {
	// time.Weekday counts Sunday=0; the mask counts Monday=0.
	idx := (int(day) + 6) % 7
	return m&(1<<uint(idx)) != 0
}

// OpeningHoursOverride is one schedule fragment attached to a connection.
// ValidFrom/ValidTo bound the dates the override covers; zero values mean
// unbounded on that side (typical for the Normal base schedule).
type OpeningHoursOverride struct {
	bun.BaseModel `bun:"table:opening_hours_overrides,alias:oho"`

	ID           uuid.UUID     `bun:",pk,type:uuid"          json:"id"`
	ConnectionID uuid.UUID     `bun:"connection_id,notnull,type:uuid" json:"connection_id"`
	Kind         OverrideKind  `bun:"kind,notnull"           json:"kind"`
	ValidFrom    *time.Time    `bun:"valid_from,nullzero"    json:"valid_from,omitempty"`
	ValidTo      *time.Time    `bun:"valid_to,nullzero"      json:"valid_to,omitempty"`
	Days         DayOfWeekMask `bun:"day_mask,notnull"       json:"day_mask"`
	Opens        string        `bun:"opens"                  json:"opens,omitempty"`
	Closes       string        `bun:"closes"                 json:"closes,omitempty"`
	Closed       bool          `bun:"closed,notnull,default:false" json:"closed"`
	Position     int           `bun:"position,notnull,default:0"   json:"position"`
}

// Covers reports whether the override's validity interval includes the date.
func (o *OpeningHoursOverride) Covers(date time.Time) bool {
	if o == nil {
		return false
	}
	day := date.Truncate(24 * time.Hour)
	if o.ValidFrom != nil && day.Before(o.ValidFrom.Truncate(24*time.Hour)) {
		return false
	}
	if o.ValidTo != nil && day.After(o.ValidTo.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

// Connection links a service to a channel, scoped to an organization,
// carrying its own opening-hours overrides. Its lifetime is independent of
// either endpoint's language versions except for the staleness invariant.
type Connection struct {
	bun.BaseModel `bun:"table:connections,alias:cn"`

	ID                uuid.UUID             `bun:",pk,type:uuid"       json:"id"`
	ServiceID         uuid.UUID             `bun:"service_id,notnull,type:uuid" json:"service_id"`
	ChannelID         uuid.UUID             `bun:"channel_id,notnull,type:uuid" json:"channel_id"`
	ConnectionType    domain.ConnectionType `bun:"connection_type,notnull"      json:"connection_type"`
	OrganizationScope string                `bun:"organization_scope,notnull"   json:"organization_scope"`
	ValidFrom         *time.Time            `bun:"valid_from,nullzero" json:"valid_from,omitempty"`
	ValidTo           *time.Time            `bun:"valid_to,nullzero"   json:"valid_to,omitempty"`
	Stale             bool                  `bun:"stale,notnull,default:false" json:"stale"`
	StaleAt           *time.Time            `bun:"stale_at,nullzero"   json:"stale_at,omitempty"`
	StaleReason       string                `bun:"stale_reason"        json:"stale_reason,omitempty"`
	DissolvedAt       *time.Time            `bun:"dissolved_at,nullzero" json:"dissolved_at,omitempty"`
	CreatedAt         time.Time             `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time             `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Overrides []*OpeningHoursOverride `bun:"rel:has-many,join:id=connection_id" json:"overrides,omitempty"`
}

// Active reports whether the connection is neither dissolved nor stale.
func (c *Connection) Active() bool {
	return c != nil && c.DissolvedAt == nil && !c.Stale
}

// Interval is a single open span within one date.
type Interval struct {
	Opens  string `json:"opens"`
	Closes string `json:"closes"`
}

// EffectiveHours is the resolved schedule for one connection and date.
type EffectiveHours struct {
	Date      time.Time    `json:"date"`
	Closed    bool         `json:"closed"`
	Intervals []Interval   `json:"intervals,omitempty"`
	Source    OverrideKind `json:"source,omitempty"`
}
