package translationscmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/govkit/servicecatalog/internal/commands"
	"github.com/govkit/servicecatalog/internal/logging"
	"github.com/govkit/servicecatalog/internal/translations"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

const vendorCallbackMessageType = "catalog.translations.vendor_callback"

// VendorCallbackCommand carries a vendor delivery report for a translation
// order. Deliveries are at-least-once; replays on terminal orders are no-ops.
type VendorCallbackCommand struct {
	OrderID     uuid.UUID `json:"order_id"`
	Success     bool      `json:"success"`
	Detail      string    `json:"detail,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// Type implements command.Message.
func (VendorCallbackCommand) Type() string { return vendorCallbackMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m VendorCallbackCommand) Validate() error {
	errs := validation.Errors{}
	if m.OrderID == uuid.Nil {
		errs["order_id"] = validation.NewError("catalog.translations.vendor_callback.order_id_required", "order_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// VendorCallbackHandler applies vendor delivery reports via the coordinator.
type VendorCallbackHandler struct {
	inner *commands.Handler[VendorCallbackCommand]
}

// NewVendorCallbackHandler constructs a handler wired to the provided coordinator.
func NewVendorCallbackHandler(service translations.Service, logger interfaces.Logger, opts ...commands.HandlerOption[VendorCallbackCommand]) *VendorCallbackHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg VendorCallbackCommand) error {
		_, err := service.OnVendorCallback(ctx, msg.OrderID, interfaces.VendorResult{
			Success:     msg.Success,
			Detail:      msg.Detail,
			CompletedAt: msg.CompletedAt,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[VendorCallbackCommand]{
		commands.WithLogger[VendorCallbackCommand](baseLogger),
		commands.WithOperation[VendorCallbackCommand]("translations.vendor_callback"),
		commands.WithMessageFields(func(msg VendorCallbackCommand) map[string]any {
			fields := map[string]any{"success": msg.Success}
			if msg.OrderID != uuid.Nil {
				fields["order_id"] = msg.OrderID
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[VendorCallbackCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &VendorCallbackHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[VendorCallbackCommand].Execute.
func (h *VendorCallbackHandler) Execute(ctx context.Context, msg VendorCallbackCommand) error {
	return h.inner.Execute(ctx, msg)
}
