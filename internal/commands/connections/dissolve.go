package connectionscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/govkit/servicecatalog/internal/commands"
	"github.com/govkit/servicecatalog/internal/connections"
	"github.com/govkit/servicecatalog/internal/logging"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

const dissolveConnectionMessageType = "catalog.connections.dissolve"

// DissolveConnectionCommand requests dissolution of an existing connection.
type DissolveConnectionCommand struct {
	ConnectionID uuid.UUID `json:"connection_id"`
}

// Type implements command.Message.
func (DissolveConnectionCommand) Type() string { return dissolveConnectionMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m DissolveConnectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.ConnectionID == uuid.Nil {
		errs["connection_id"] = validation.NewError("catalog.connections.dissolve.connection_id_required", "connection_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DissolveConnectionHandler dissolves connections via the connection service.
type DissolveConnectionHandler struct {
	inner *commands.Handler[DissolveConnectionCommand]
}

// NewDissolveConnectionHandler constructs a handler wired to the provided connection service.
func NewDissolveConnectionHandler(service connections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DissolveConnectionCommand]) *DissolveConnectionHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DissolveConnectionCommand) error {
		_, err := service.DissolveConnection(ctx, connections.DissolveConnectionRequest{
			ConnectionID: msg.ConnectionID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[DissolveConnectionCommand]{
		commands.WithLogger[DissolveConnectionCommand](baseLogger),
		commands.WithOperation[DissolveConnectionCommand]("connections.dissolve"),
		commands.WithMessageFields(func(msg DissolveConnectionCommand) map[string]any {
			if msg.ConnectionID == uuid.Nil {
				return nil
			}
			return map[string]any{"connection_id": msg.ConnectionID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DissolveConnectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DissolveConnectionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DissolveConnectionCommand].Execute.
func (h *DissolveConnectionHandler) Execute(ctx context.Context, msg DissolveConnectionCommand) error {
	return h.inner.Execute(ctx, msg)
}
