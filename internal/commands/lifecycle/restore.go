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

const restoreVersionMessageType = "catalog.versions.restore"

// RestoreVersionCommand requests restoration of an archived draft language
// version at a known revision.
type RestoreVersionCommand struct {
	EntityID         uuid.UUID `json:"entity_id"`
	LanguageCode     string    `json:"language_code"`
	ExpectedRevision int64     `json:"expected_revision"`
	ActorID          uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (RestoreVersionCommand) Type() string { return restoreVersionMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m RestoreVersionCommand) Validate() error {
	errs := validation.Errors{}
	if m.EntityID == uuid.Nil {
		errs["entity_id"] = validation.NewError("catalog.versions.restore.entity_id_required", "entity_id is required")
	}
	if strings.TrimSpace(m.LanguageCode) == "" {
		errs["language_code"] = validation.NewError("catalog.versions.restore.language_code_required", "language_code is required")
	}
	if m.ExpectedRevision <= 0 {
		errs["expected_revision"] = validation.NewError("catalog.versions.restore.expected_revision_invalid", "expected_revision must be greater than zero")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RestoreVersionHandler restores language versions via the version service.
type RestoreVersionHandler struct {
	inner *commands.Handler[RestoreVersionCommand]
}

// NewRestoreVersionHandler constructs a handler wired to the provided version service.
func NewRestoreVersionHandler(service versions.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RestoreVersionCommand]) *RestoreVersionHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RestoreVersionCommand) error {
		_, err := service.ApplyTransition(ctx, versions.ApplyTransitionRequest{
			EntityID:         msg.EntityID,
			LanguageCode:     msg.LanguageCode,
			Action:           lifecycle.ActionRestore,
			ExpectedRevision: msg.ExpectedRevision,
			ActorID:          msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[RestoreVersionCommand]{
		commands.WithLogger[RestoreVersionCommand](baseLogger),
		commands.WithOperation[RestoreVersionCommand]("versions.restore"),
		commands.WithMessageFields(transitionFields[RestoreVersionCommand](func(msg RestoreVersionCommand) (uuid.UUID, string, int64) {
			return msg.EntityID, msg.LanguageCode, msg.ExpectedRevision
		})),
		commands.WithTelemetry(commands.DefaultTelemetry[RestoreVersionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RestoreVersionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RestoreVersionCommand].Execute.
func (h *RestoreVersionHandler) Execute(ctx context.Context, msg RestoreVersionCommand) error {
	return h.inner.Execute(ctx, msg)
}
