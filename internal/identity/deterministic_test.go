package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	a := UUID("catalog:test:key")
	b := UUID("catalog:test:key")
	if a == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if a != b {
		t.Fatalf("expected stable derivation, got %s and %s", a, b)
	}
}

func TestUUIDEmptyKeyYieldsNil(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for blank key, got %s", got)
	}
}

func TestLanguageVersionUUIDNormalizesLanguage(t *testing.T) {
	entityID := uuid.New()
	if LanguageVersionUUID(entityID, "FI") != LanguageVersionUUID(entityID, " fi ") {
		t.Fatal("expected language code normalization")
	}
	if LanguageVersionUUID(entityID, "fi") == LanguageVersionUUID(entityID, "sv") {
		t.Fatal("expected distinct ids per language")
	}
}

func TestOrderReferenceShape(t *testing.T) {
	ref := OrderReference(uuid.New())
	if len(ref) != 12 {
		t.Fatalf("expected 12 character reference, got %q", ref)
	}
}
