package interfaces

import (
	"context"
	"time"
)

// VendorOrder is the outbound view of a translation order handed to the
// external translation vendor.
type VendorOrder struct {
	OrderID           string
	Reference         string
	EntityID          string
	EntityType        string
	SourceLanguage    string
	TargetLanguages   []string
	SubscriberContact string
}

// VendorResult reports the terminal outcome of a translation order as
// delivered by the vendor callback channel. Deliveries are at-least-once and
// may arrive out of order across orders.
type VendorResult struct {
	Success     bool
	Detail      string
	CompletedAt time.Time
}

// TranslationVendor dispatches orders to the external translation provider.
// DispatchOrder must respect the context deadline; an order accepted by the
// vendor is not retracted when the local caller gives up waiting.
type TranslationVendor interface {
	DispatchOrder(ctx context.Context, order VendorOrder) (vendorRef string, err error)
}
