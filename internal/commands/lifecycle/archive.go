package lifecyclecmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/govkit/servicecatalog/internal/commands"
	"github.com/govkit/servicecatalog/internal/lifecycle"
	"github.com/govkit/servicecatalog/internal/logging"
	"github.com/govkit/servicecatalog/internal/versions"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

const archiveVersionMessageType = "catalog.versions.archive"

// ArchiveVersionCommand requests archival of one language version at a known
// revision.
type ArchiveVersionCommand struct {
	EntityID         uuid.UUID `json:"entity_id"`
	LanguageCode     string    `json:"language_code"`
	ExpectedRevision int64     `json:"expected_revision"`
	ActorID          uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (ArchiveVersionCommand) Type() string { return archiveVersionMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m ArchiveVersionCommand) Validate() error {
	errs := validation.Errors{}
	if m.EntityID == uuid.Nil {
		errs["entity_id"] = validation.NewError("catalog.versions.archive.entity_id_required", "entity_id is required")
	}
	if strings.TrimSpace(m.LanguageCode) == "" {
		errs["language_code"] = validation.NewError("catalog.versions.archive.language_code_required", "language_code is required")
	}
	if m.ExpectedRevision <= 0 {
		errs["expected_revision"] = validation.NewError("catalog.versions.archive.expected_revision_invalid", "expected_revision must be greater than zero")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ArchiveVersionHandler archives language versions via the version service.
type ArchiveVersionHandler struct {
	inner *commands.Handler[ArchiveVersionCommand]
}

// NewArchiveVersionHandler constructs a handler wired to the provided version service.
func NewArchiveVersionHandler(service versions.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ArchiveVersionCommand]) *ArchiveVersionHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ArchiveVersionCommand) error {
		_, err := service.ApplyTransition(ctx, versions.ApplyTransitionRequest{
			EntityID:         msg.EntityID,
			LanguageCode:     msg.LanguageCode,
			Action:           lifecycle.ActionArchive,
			ExpectedRevision: msg.ExpectedRevision,
			ActorID:          msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[ArchiveVersionCommand]{
		commands.WithLogger[ArchiveVersionCommand](baseLogger),
		commands.WithOperation[ArchiveVersionCommand]("versions.archive"),
		commands.WithMessageFields(transitionFields[ArchiveVersionCommand](func(msg ArchiveVersionCommand) (uuid.UUID, string, int64) {
			return msg.EntityID, msg.LanguageCode, msg.ExpectedRevision
		})),
		commands.WithTelemetry(commands.DefaultTelemetry[ArchiveVersionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ArchiveVersionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ArchiveVersionCommand].Execute.
func (h *ArchiveVersionHandler) Execute(ctx context.Context, msg ArchiveVersionCommand) error {
	return h.inner.Execute(ctx, msg)
}
