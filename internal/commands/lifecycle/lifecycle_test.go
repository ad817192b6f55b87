package lifecyclecmd_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	lifecyclecmd "github.com/govkit/servicecatalog/internal/commands/lifecycle"
	"github.com/govkit/servicecatalog/internal/domain"
	"github.com/govkit/servicecatalog/internal/versions"
)

func seedDraft(t *testing.T) (versions.Service, uuid.UUID) {
	t.Helper()

	service := versions.NewService(versions.NewMemoryEntityRepository())
	entityID := uuid.New()
	if _, err := service.EnsureVersion(context.Background(), versions.EnsureVersionRequest{
		EntityID:     entityID,
		EntityType:   domain.EntityTypeService,
		LanguageCode: "fi",
	}); err != nil {
		t.Fatalf("seed draft: %v", err)
	}
	return service, entityID
}

func TestPublishVersionCommandValidation(t *testing.T) {
	service, _ := seedDraft(t)
	handler := lifecyclecmd.NewPublishVersionHandler(service, nil)

	err := handler.Execute(context.Background(), lifecyclecmd.PublishVersionCommand{})
	if err == nil {
		t.Fatal("expected validation error for empty command")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestPublishVersionCommandPublishesDraft(t *testing.T) {
	service, entityID := seedDraft(t)
	handler := lifecyclecmd.NewPublishVersionHandler(service, nil)

	err := handler.Execute(context.Background(), lifecyclecmd.PublishVersionCommand{
		EntityID:         entityID,
		LanguageCode:     "fi",
		ExpectedRevision: 1,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	version, err := service.GetVersion(context.Background(), entityID, "fi")
	if err != nil {
		t.Fatalf("GetVersion() error = %v", err)
	}
	if version.Status != domain.StatusPublished {
		t.Errorf("status = %q, want published", version.Status)
	}
}

func TestRestoreCommandRejectsArchivedVersion(t *testing.T) {
	service, entityID := seedDraft(t)
	archive := lifecyclecmd.NewArchiveVersionHandler(service, nil)
	restore := lifecyclecmd.NewRestoreVersionHandler(service, nil)

	if err := archive.Execute(context.Background(), lifecyclecmd.ArchiveVersionCommand{
		EntityID:         entityID,
		LanguageCode:     "fi",
		ExpectedRevision: 1,
	}); err != nil {
		t.Fatalf("archive Execute() error = %v", err)
	}

	// Restore only accepts drafts; archiving is a one-way door.
	err := restore.Execute(context.Background(), lifecyclecmd.RestoreVersionCommand{
		EntityID:         entityID,
		LanguageCode:     "fi",
		ExpectedRevision: 2,
	})
	if err == nil {
		t.Fatal("expected restore of archived version to fail")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}

	version, err := service.GetVersion(context.Background(), entityID, "fi")
	if err != nil {
		t.Fatalf("GetVersion() error = %v", err)
	}
	if version.Status != domain.StatusDeleted {
		t.Errorf("status = %q, want deleted after rejected restore", version.Status)
	}
}

func TestRemoveEntityCommandRejectsIneligibleVersions(t *testing.T) {
	service, entityID := seedDraft(t)
	handler := lifecyclecmd.NewRemoveEntityHandler(service, nil)

	// The seeded version is a draft, which remove does not accept.
	err := handler.Execute(context.Background(), lifecyclecmd.RemoveEntityCommand{EntityID: entityID})
	if err == nil {
		t.Fatal("expected remove of draft version to fail")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestRemoveEntityCommandRemovesArchivedVersions(t *testing.T) {
	service, entityID := seedDraft(t)
	archive := lifecyclecmd.NewArchiveVersionHandler(service, nil)
	remove := lifecyclecmd.NewRemoveEntityHandler(service, nil)

	if err := archive.Execute(context.Background(), lifecyclecmd.ArchiveVersionCommand{
		EntityID:         entityID,
		LanguageCode:     "fi",
		ExpectedRevision: 1,
	}); err != nil {
		t.Fatalf("archive Execute() error = %v", err)
	}

	if err := remove.Execute(context.Background(), lifecyclecmd.RemoveEntityCommand{EntityID: entityID}); err != nil {
		t.Fatalf("remove Execute() error = %v", err)
	}

	version, err := service.GetVersion(context.Background(), entityID, "fi")
	if err != nil {
		t.Fatalf("GetVersion() error = %v", err)
	}
	if version.Status != domain.StatusRemoved {
		t.Errorf("status = %q, want removed", version.Status)
	}
}
