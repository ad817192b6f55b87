package interfaces

import "time"

// LanguageVersionRecord is the read-only projection of a language version
// consumed by presentation layers to enable or disable UI actions. It never
// exposes mutation paths.
type LanguageVersionRecord struct {
	EntityID     string     `json:"entity_id"`
	EntityType   string     `json:"entity_type"`
	LanguageCode string     `json:"language_code"`
	Status       string     `json:"status"`
	Revision     int64      `json:"revision"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	ArchivedAt   *time.Time `json:"archived_at,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy   string     `json:"reviewed_by,omitempty"`
}

// ConnectionRecord is the read-only projection of a service↔channel
// connection, including soft-flag history fields.
type ConnectionRecord struct {
	ID                string     `json:"id"`
	ServiceID         string     `json:"service_id"`
	ChannelID         string     `json:"channel_id"`
	ConnectionType    string     `json:"connection_type"`
	OrganizationScope string     `json:"organization_scope"`
	ValidFrom         *time.Time `json:"valid_from,omitempty"`
	ValidTo           *time.Time `json:"valid_to,omitempty"`
	Stale             bool       `json:"stale"`
	StaleAt           *time.Time `json:"stale_at,omitempty"`
	StaleReason       string     `json:"stale_reason,omitempty"`
	DissolvedAt       *time.Time `json:"dissolved_at,omitempty"`
}
