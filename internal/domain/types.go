package domain

import "strings"

// EntityType identifies the kind of catalog entity a record belongs to.
type EntityType string

const (
	EntityTypeService            EntityType = "service"
	EntityTypeChannel            EntityType = "channel"
	EntityTypeGeneralDescription EntityType = "general_description"
	EntityTypeOrganization       EntityType = "organization"
)

// KnownEntityTypes lists every entity type the catalog manages.
func KnownEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeService,
		EntityTypeChannel,
		EntityTypeGeneralDescription,
		EntityTypeOrganization,
	}
}

// NormalizeEntityType coerces arbitrary type strings into the canonical representation.
func NormalizeEntityType(input string) EntityType {
	return EntityType(strings.ToLower(strings.TrimSpace(input)))
}

// Valid reports whether the entity type is one of the known catalog types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityTypeService, EntityTypeChannel, EntityTypeGeneralDescription, EntityTypeOrganization:
		return true
	default:
		return false
	}
}

// ConnectionType categorizes a service↔channel connection. The legacy
// "common_for" value is rejected at the boundary and never stored.
type ConnectionType string

const (
	ConnectionTypeAppointment       ConnectionType = "appointment"
	ConnectionTypeServiceLocation   ConnectionType = "service_location"
	ConnectionTypeElectronicChannel ConnectionType = "electronic_channel"
	ConnectionTypePhoneChannel      ConnectionType = "phone_channel"
	ConnectionTypePrintableForm     ConnectionType = "printable_form"
	ConnectionTypeWebPage           ConnectionType = "web_page"
	connectionTypeCommonForRetired  ConnectionType = "common_for"
)

// NormalizeConnectionType coerces arbitrary connection type strings.
func NormalizeConnectionType(input string) ConnectionType {
	return ConnectionType(strings.ToLower(strings.TrimSpace(input)))
}

// Valid reports whether the connection type is accepted for new connections.
// The retired "common_for" value fails here on purpose.
func (t ConnectionType) Valid() bool {
	switch t {
	case ConnectionTypeAppointment,
		ConnectionTypeServiceLocation,
		ConnectionTypeElectronicChannel,
		ConnectionTypePhoneChannel,
		ConnectionTypePrintableForm,
		ConnectionTypeWebPage:
		return true
	default:
		return false
	}
}

// Retired reports whether the connection type is a legacy value that existing
// data may still carry but new writes must not.
func (t ConnectionType) Retired() bool {
	return t == connectionTypeCommonForRetired
}

// OrganizationScopeAny is the sentinel organization scope meaning the
// connection is not limited to a single organization.
const OrganizationScopeAny = "any"
