package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// LanguageVersionUUID derives the stable identifier for one language version
// of a catalog entity.
func LanguageVersionUUID(entityID uuid.UUID, languageCode string) uuid.UUID {
	return UUID("catalog:language_version:" + entityID.String() + ":" + strings.ToLower(strings.TrimSpace(languageCode)))
}

// ConnectionUUID derives the stable identifier for a service↔channel connection.
func ConnectionUUID(serviceID, channelID uuid.UUID, connectionType string) uuid.UUID {
	return UUID("catalog:connection:" + serviceID.String() + ":" + channelID.String() + ":" + strings.ToLower(strings.TrimSpace(connectionType)))
}

// OrderReference derives the short vendor-facing reference for a translation
// order. The vendor sees this value instead of the internal order id.
func OrderReference(orderID uuid.UUID) string {
	derived := UUID("catalog:translation_order:" + orderID.String())
	return strings.ToUpper(strings.ReplaceAll(derived.String(), "-", "")[:12])
}
