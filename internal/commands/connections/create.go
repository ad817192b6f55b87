package connectionscmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/govkit/servicecatalog/internal/commands"
	"github.com/govkit/servicecatalog/internal/connections"
	"github.com/govkit/servicecatalog/internal/domain"
	"github.com/govkit/servicecatalog/internal/logging"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

const createConnectionMessageType = "catalog.connections.create"

// OverridePayload mirrors a single opening-hours override in the create message.
type OverridePayload struct {
	Kind      connections.OverrideKind  `json:"kind"`
	ValidFrom *time.Time                `json:"valid_from,omitempty"`
	ValidTo   *time.Time                `json:"valid_to,omitempty"`
	Days      connections.DayOfWeekMask `json:"days"`
	Opens     string                    `json:"opens,omitempty"`
	Closes    string                    `json:"closes,omitempty"`
	Closed    bool                      `json:"closed,omitempty"`
}

// CreateConnectionCommand requests a new service/channel connection.
type CreateConnectionCommand struct {
	ServiceID         uuid.UUID             `json:"service_id"`
	ChannelID         uuid.UUID             `json:"channel_id"`
	ConnectionType    domain.ConnectionType `json:"connection_type"`
	OrganizationScope string                `json:"organization_scope,omitempty"`
	ValidFrom         *time.Time            `json:"valid_from,omitempty"`
	ValidTo           *time.Time            `json:"valid_to,omitempty"`
	Overrides         []OverridePayload     `json:"overrides,omitempty"`
}

// Type implements command.Message.
func (CreateConnectionCommand) Type() string { return createConnectionMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m CreateConnectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.ServiceID == uuid.Nil {
		errs["service_id"] = validation.NewError("catalog.connections.create.service_id_required", "service_id is required")
	}
	if m.ChannelID == uuid.Nil {
		errs["channel_id"] = validation.NewError("catalog.connections.create.channel_id_required", "channel_id is required")
	}
	if !m.ConnectionType.Valid() {
		errs["connection_type"] = validation.NewError("catalog.connections.create.connection_type_invalid", "connection_type is not a recognised value")
	}
	if m.ValidFrom != nil && m.ValidTo != nil && m.ValidTo.Before(*m.ValidFrom) {
		errs["valid_to"] = validation.NewError("catalog.connections.create.validity_window_invalid", "valid_to must not precede valid_from")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateConnectionHandler creates connections via the connection service using
// the shared command handler foundation.
type CreateConnectionHandler struct {
	inner *commands.Handler[CreateConnectionCommand]
}

// NewCreateConnectionHandler constructs a handler wired to the provided connection service.
func NewCreateConnectionHandler(service connections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateConnectionCommand]) *CreateConnectionHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CreateConnectionCommand) error {
		overrides := make([]connections.OverrideInput, 0, len(msg.Overrides))
		for _, payload := range msg.Overrides {
			overrides = append(overrides, connections.OverrideInput{
				Kind:      payload.Kind,
				ValidFrom: payload.ValidFrom,
				ValidTo:   payload.ValidTo,
				Days:      payload.Days,
				Opens:     payload.Opens,
				Closes:    payload.Closes,
				Closed:    payload.Closed,
			})
		}
		_, err := service.CreateConnection(ctx, connections.CreateConnectionRequest{
			ServiceID:         msg.ServiceID,
			ChannelID:         msg.ChannelID,
			ConnectionType:    msg.ConnectionType,
			OrganizationScope: msg.OrganizationScope,
			ValidFrom:         msg.ValidFrom,
			ValidTo:           msg.ValidTo,
			Overrides:         overrides,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CreateConnectionCommand]{
		commands.WithLogger[CreateConnectionCommand](baseLogger),
		commands.WithOperation[CreateConnectionCommand]("connections.create"),
		commands.WithMessageFields(func(msg CreateConnectionCommand) map[string]any {
			fields := map[string]any{}
			if msg.ServiceID != uuid.Nil {
				fields["service_id"] = msg.ServiceID
			}
			if msg.ChannelID != uuid.Nil {
				fields["channel_id"] = msg.ChannelID
			}
			if msg.ConnectionType != "" {
				fields["connection_type"] = msg.ConnectionType
			}
			if len(fields) == 0 {
				return nil
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CreateConnectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateConnectionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CreateConnectionCommand].Execute.
func (h *CreateConnectionHandler) Execute(ctx context.Context, msg CreateConnectionCommand) error {
	return h.inner.Execute(ctx, msg)
}
