package translationscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/govkit/servicecatalog/internal/commands"
	"github.com/govkit/servicecatalog/internal/logging"
	"github.com/govkit/servicecatalog/internal/translations"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

const submitOrderMessageType = "catalog.translations.submit"

// SubmitOrderCommand requests a new translation order for an entity.
type SubmitOrderCommand struct {
	EntityID          uuid.UUID `json:"entity_id"`
	SourceLanguage    string    `json:"source_language"`
	TargetLanguages   []string  `json:"target_languages"`
	SubscriberContact string    `json:"subscriber_contact"`
}

// Type implements command.Message.
func (SubmitOrderCommand) Type() string { return submitOrderMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m SubmitOrderCommand) Validate() error {
	errs := validation.Errors{}
	if m.EntityID == uuid.Nil {
		errs["entity_id"] = validation.NewError("catalog.translations.submit.entity_id_required", "entity_id is required")
	}
	if strings.TrimSpace(m.SourceLanguage) == "" {
		errs["source_language"] = validation.NewError("catalog.translations.submit.source_language_required", "source_language is required")
	}
	if len(m.TargetLanguages) == 0 {
		errs["target_languages"] = validation.NewError("catalog.translations.submit.target_languages_required", "at least one target language is required")
	}
	if strings.TrimSpace(m.SubscriberContact) == "" {
		errs["subscriber_contact"] = validation.NewError("catalog.translations.submit.subscriber_contact_required", "subscriber_contact is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubmitOrderHandler submits translation orders via the coordinator service.
type SubmitOrderHandler struct {
	inner *commands.Handler[SubmitOrderCommand]
}

// NewSubmitOrderHandler constructs a handler wired to the provided coordinator.
func NewSubmitOrderHandler(service translations.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SubmitOrderCommand]) *SubmitOrderHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SubmitOrderCommand) error {
		_, err := service.Submit(ctx, translations.SubmitRequest{
			EntityID:          msg.EntityID,
			SourceLanguage:    msg.SourceLanguage,
			TargetLanguages:   msg.TargetLanguages,
			SubscriberContact: msg.SubscriberContact,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[SubmitOrderCommand]{
		commands.WithLogger[SubmitOrderCommand](baseLogger),
		commands.WithOperation[SubmitOrderCommand]("translations.submit"),
		commands.WithMessageFields(func(msg SubmitOrderCommand) map[string]any {
			fields := map[string]any{}
			if msg.EntityID != uuid.Nil {
				fields["entity_id"] = msg.EntityID
			}
			if trimmed := strings.TrimSpace(msg.SourceLanguage); trimmed != "" {
				fields["source_language"] = trimmed
			}
			if len(msg.TargetLanguages) > 0 {
				fields["target_count"] = len(msg.TargetLanguages)
			}
			if len(fields) == 0 {
				return nil
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SubmitOrderCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SubmitOrderHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SubmitOrderCommand].Execute.
func (h *SubmitOrderHandler) Execute(ctx context.Context, msg SubmitOrderCommand) error {
	return h.inner.Execute(ctx, msg)
}
