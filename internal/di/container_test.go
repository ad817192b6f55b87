package di_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/govkit/servicecatalog/internal/di"
	"github.com/govkit/servicecatalog/internal/domain"
	"github.com/govkit/servicecatalog/internal/runtimeconfig"
	"github.com/govkit/servicecatalog/internal/translations"
	"github.com/govkit/servicecatalog/internal/versions"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

func fullConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Translations = true
	cfg.Translation.Vendor = "loopback"
	return cfg
}

func TestNewContainerDefaultsToMemoryServices(t *testing.T) {
	container, err := di.NewContainer(fullConfig())
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}

	if container.VersionService() == nil {
		t.Fatal("VersionService() is nil")
	}
	if container.ConnectionService() == nil {
		t.Fatal("ConnectionService() is nil")
	}
	if container.TranslationService() == nil {
		t.Fatal("TranslationService() is nil")
	}
	if container.Capabilities() == nil {
		t.Fatal("Capabilities() is nil")
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "mongo"

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("NewContainer() error = %v, want %v", err, runtimeconfig.ErrStorageProviderUnknown)
	}
}

func TestNewContainerRequiresBunDBForBunStorage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"

	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatal("expected error for bun storage without database binding")
	}
}

func TestNewContainerRequiresVendorWhenTranslationsEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Translations = true
	cfg.Translation.Vendor = ""

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrTranslationsRequireVendor) {
		t.Fatalf("NewContainer() error = %v, want %v", err, runtimeconfig.ErrTranslationsRequireVendor)
	}
}

func TestArchivingLastLiveVersionFlagsConnections(t *testing.T) {
	container, err := di.NewContainer(fullConfig())
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}

	ctx := context.Background()
	store := container.VersionService()
	engine := container.ConnectionService()

	serviceID := uuid.New()
	channelID := uuid.New()

	publish := func(entityID uuid.UUID, entityType domain.EntityType) {
		t.Helper()
		version, err := store.EnsureVersion(ctx, versions.EnsureVersionRequest{
			EntityID:     entityID,
			EntityType:   entityType,
			LanguageCode: "fi",
		})
		if err != nil {
			t.Fatalf("EnsureVersion() error = %v", err)
		}
		if _, err := store.ApplyTransition(ctx, versions.ApplyTransitionRequest{
			EntityID:         entityID,
			LanguageCode:     "fi",
			Action:           lifecyclePublish,
			ExpectedRevision: version.Revision,
		}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	publish(serviceID, domain.EntityTypeService)
	publish(channelID, domain.EntityTypeChannel)

	commands := container.Commands()
	if commands.CreateConnection == nil {
		t.Fatal("CreateConnection handler not wired")
	}

	if err := commands.CreateConnection.Execute(ctx, createConnectionCommand(serviceID, channelID)); err != nil {
		t.Fatalf("create connection: %v", err)
	}

	// Archiving the channel's only published version makes the channel dead;
	// the connection stays fresh while the service side is still live.
	if err := commands.ArchiveVersion.Execute(ctx, archiveCommand(channelID, 2)); err != nil {
		t.Fatalf("archive channel: %v", err)
	}
	listed, err := engine.ListForEntity(ctx, serviceID)
	if err != nil {
		t.Fatalf("ListForEntity() error = %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(listed))
	}
	if listed[0].Stale {
		t.Fatal("connection stale after losing one endpoint, want fresh")
	}

	// Losing the service side too flags the connection.
	if err := commands.ArchiveVersion.Execute(ctx, archiveCommand(serviceID, 2)); err != nil {
		t.Fatalf("archive service: %v", err)
	}
	listed, err = engine.ListForEntity(ctx, serviceID)
	if err != nil {
		t.Fatalf("ListForEntity() error = %v", err)
	}
	if !listed[0].Stale {
		t.Fatal("connection fresh after losing both endpoints, want stale")
	}
}

func TestTranslationFlowThroughContainer(t *testing.T) {
	container, err := di.NewContainer(fullConfig())
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}

	ctx := context.Background()
	store := container.VersionService()
	coordinator := container.TranslationService()

	entityID := uuid.New()
	if _, err := store.EnsureVersion(ctx, versions.EnsureVersionRequest{
		EntityID:     entityID,
		EntityType:   domain.EntityTypeService,
		LanguageCode: "fi",
	}); err != nil {
		t.Fatalf("EnsureVersion() error = %v", err)
	}

	order, err := coordinator.Submit(ctx, translations.SubmitRequest{
		EntityID:          entityID,
		SourceLanguage:    "fi",
		TargetLanguages:   []string{"sv"},
		SubscriberContact: "translations@example.test",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if order.VendorRef != "loopback-"+order.Reference {
		t.Errorf("VendorRef = %q, want loopback ref derived from %q", order.VendorRef, order.Reference)
	}

	completed, err := coordinator.OnVendorCallback(ctx, order.ID, interfaces.VendorResult{Success: true})
	if err != nil {
		t.Fatalf("OnVendorCallback() error = %v", err)
	}
	if completed.Status != translations.OrderStatusCompleted {
		t.Errorf("order status = %q, want completed", completed.Status)
	}

	version, err := store.GetVersion(ctx, entityID, "sv")
	if err != nil {
		t.Fatalf("GetVersion(sv) error = %v", err)
	}
	if version.Status != domain.StatusPublished {
		t.Errorf("sv status = %q, want published", version.Status)
	}
}

func TestContainerUsesInjectedLoggerProvider(t *testing.T) {
	cfg := fullConfig()
	cfg.Features.Logger = true

	rec := newRecordingProvider()
	container, err := di.NewContainer(cfg, di.WithLoggerProvider(rec))
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}

	ctx := context.Background()
	entityID := uuid.New()
	if _, err := container.VersionService().EnsureVersion(ctx, versions.EnsureVersionRequest{
		EntityID:     entityID,
		EntityType:   domain.EntityTypeService,
		LanguageCode: "fi",
	}); err != nil {
		t.Fatalf("EnsureVersion() error = %v", err)
	}

	entry := rec.find("version.created")
	if entry == nil {
		t.Fatalf("expected version.created log entry, got %#v", rec.entries)
	}
	if got := entry.fields["module"]; got != "catalog.versions" {
		t.Fatalf("expected module field to be catalog.versions, got %v", got)
	}
}
