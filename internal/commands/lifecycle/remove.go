package lifecyclecmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/govkit/servicecatalog/internal/commands"
	"github.com/govkit/servicecatalog/internal/logging"
	"github.com/govkit/servicecatalog/internal/versions"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

const removeEntityMessageType = "catalog.versions.remove"

// RemoveEntityCommand requests the terminal remove of an entity across every
// one of its language versions.
type RemoveEntityCommand struct {
	EntityID uuid.UUID `json:"entity_id"`
	ActorID  uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (RemoveEntityCommand) Type() string { return removeEntityMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m RemoveEntityCommand) Validate() error {
	errs := validation.Errors{}
	if m.EntityID == uuid.Nil {
		errs["entity_id"] = validation.NewError("catalog.versions.remove.entity_id_required", "entity_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RemoveEntityHandler removes entities via the version service.
type RemoveEntityHandler struct {
	inner *commands.Handler[RemoveEntityCommand]
}

// NewRemoveEntityHandler constructs a handler wired to the provided version service.
func NewRemoveEntityHandler(service versions.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RemoveEntityCommand]) *RemoveEntityHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RemoveEntityCommand) error {
		return service.RemoveEntity(ctx, versions.RemoveEntityRequest{
			EntityID: msg.EntityID,
			ActorID:  msg.ActorID,
		})
	}

	handlerOpts := []commands.HandlerOption[RemoveEntityCommand]{
		commands.WithLogger[RemoveEntityCommand](baseLogger),
		commands.WithOperation[RemoveEntityCommand]("versions.remove"),
		commands.WithMessageFields(func(msg RemoveEntityCommand) map[string]any {
			if msg.EntityID == uuid.Nil {
				return nil
			}
			return map[string]any{"entity_id": msg.EntityID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RemoveEntityCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RemoveEntityHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RemoveEntityCommand].Execute.
func (h *RemoveEntityHandler) Execute(ctx context.Context, msg RemoveEntityCommand) error {
	return h.inner.Execute(ctx, msg)
}
