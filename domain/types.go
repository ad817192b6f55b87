package domain

import internaldomain "github.com/govkit/servicecatalog/internal/domain"

// Status represents the publishing lifecycle stage of a language version.
type Status = internaldomain.Status

const (
	// StatusDraft indicates a language version still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusModified marks a published version with unpublished edits on top.
	StatusModified = internaldomain.StatusModified
	// StatusPublished identifies a language version visible to consumers.
	StatusPublished = internaldomain.StatusPublished
	// StatusOldPublished marks a previously published version superseded by a newer one.
	StatusOldPublished = internaldomain.StatusOldPublished
	// StatusDeleted marks an archived language version retained for history.
	StatusDeleted = internaldomain.StatusDeleted
	// StatusRemoved is terminal; no further transitions are permitted.
	StatusRemoved = internaldomain.StatusRemoved
)

// EntityType identifies the kind of catalog entity a record belongs to.
type EntityType = internaldomain.EntityType

const (
	EntityTypeService            = internaldomain.EntityTypeService
	EntityTypeChannel            = internaldomain.EntityTypeChannel
	EntityTypeGeneralDescription = internaldomain.EntityTypeGeneralDescription
	EntityTypeOrganization       = internaldomain.EntityTypeOrganization
)

// ConnectionType categorizes a service↔channel connection.
type ConnectionType = internaldomain.ConnectionType
