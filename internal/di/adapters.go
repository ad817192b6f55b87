package di

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/govkit/servicecatalog/internal/versions"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

// endpointResolverAdapter lets the connection engine ask the version store
// whether an endpoint still has a live language version.
type endpointResolverAdapter struct {
	container *Container
}

func (a *endpointResolverAdapter) HasLiveVersion(ctx context.Context, entityID uuid.UUID) (bool, error) {
	entity, err := a.container.versionSvc.GetEntity(ctx, entityID)
	if err != nil {
		// An entity the store has never seen has no live versions.
		if errors.Is(err, versions.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return entity.HasLiveVersion(), nil
}

// consistencyNotifierAdapter forwards version store notifications to the
// connection engine so stale connections are flagged synchronously.
type consistencyNotifierAdapter struct {
	container *Container
}

func (a *consistencyNotifierAdapter) Revalidate(ctx context.Context, entityID uuid.UUID) error {
	if a.container.connectionSvc == nil {
		return nil
	}
	return a.container.connectionSvc.Revalidate(ctx, entityID)
}

// loopbackVendor accepts every order without leaving the process. It stands in
// for the real vendor integration in development and test configurations.
type loopbackVendor struct{}

func newLoopbackVendor() interfaces.TranslationVendor {
	return loopbackVendor{}
}

func (loopbackVendor) DispatchOrder(_ context.Context, order interfaces.VendorOrder) (string, error) {
	return "loopback-" + order.Reference, nil
}
