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

const publishVersionMessageType = "catalog.versions.publish"

// PublishVersionCommand requests publication of one language version at a
// known revision.
type PublishVersionCommand struct {
	EntityID         uuid.UUID `json:"entity_id"`
	LanguageCode     string    `json:"language_code"`
	ExpectedRevision int64     `json:"expected_revision"`
	ActorID          uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (PublishVersionCommand) Type() string { return publishVersionMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m PublishVersionCommand) Validate() error {
	errs := validation.Errors{}
	if m.EntityID == uuid.Nil {
		errs["entity_id"] = validation.NewError("catalog.versions.publish.entity_id_required", "entity_id is required")
	}
	if strings.TrimSpace(m.LanguageCode) == "" {
		errs["language_code"] = validation.NewError("catalog.versions.publish.language_code_required", "language_code is required")
	}
	if m.ExpectedRevision <= 0 {
		errs["expected_revision"] = validation.NewError("catalog.versions.publish.expected_revision_invalid", "expected_revision must be greater than zero")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishVersionHandler publishes language versions via the version service
// using the shared command handler foundation.
type PublishVersionHandler struct {
	inner *commands.Handler[PublishVersionCommand]
}

// NewPublishVersionHandler constructs a handler wired to the provided version service.
func NewPublishVersionHandler(service versions.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishVersionCommand]) *PublishVersionHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PublishVersionCommand) error {
		_, err := service.ApplyTransition(ctx, versions.ApplyTransitionRequest{
			EntityID:         msg.EntityID,
			LanguageCode:     msg.LanguageCode,
			Action:           lifecycle.ActionPublish,
			ExpectedRevision: msg.ExpectedRevision,
			ActorID:          msg.ActorID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishVersionCommand]{
		commands.WithLogger[PublishVersionCommand](baseLogger),
		commands.WithOperation[PublishVersionCommand]("versions.publish"),
		commands.WithMessageFields(transitionFields[PublishVersionCommand](func(msg PublishVersionCommand) (uuid.UUID, string, int64) {
			return msg.EntityID, msg.LanguageCode, msg.ExpectedRevision
		})),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishVersionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishVersionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishVersionCommand].Execute.
func (h *PublishVersionHandler) Execute(ctx context.Context, msg PublishVersionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// transitionFields builds the shared log fields for version transition commands.
func transitionFields[T any](extract func(T) (uuid.UUID, string, int64)) func(T) map[string]any {
	return func(msg T) map[string]any {
		entityID, languageCode, revision := extract(msg)
		fields := map[string]any{}
		if entityID != uuid.Nil {
			fields["entity_id"] = entityID
		}
		if trimmed := strings.TrimSpace(languageCode); trimmed != "" {
			fields["language_code"] = trimmed
		}
		if revision > 0 {
			fields["expected_revision"] = revision
		}
		if len(fields) == 0 {
			return nil
		}
		return fields
	}
}
