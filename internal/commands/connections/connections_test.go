package connectionscmd_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	connectionscmd "github.com/govkit/servicecatalog/internal/commands/connections"
	"github.com/govkit/servicecatalog/internal/connections"
	"github.com/govkit/servicecatalog/internal/domain"
)

type liveEndpoints struct{}

func (liveEndpoints) HasLiveVersion(context.Context, uuid.UUID) (bool, error) { return true, nil }

func newService() connections.Service {
	return connections.NewService(connections.NewMemoryConnectionRepository(), liveEndpoints{})
}

func TestCreateConnectionCommandValidation(t *testing.T) {
	handler := connectionscmd.NewCreateConnectionHandler(newService(), nil)

	err := handler.Execute(context.Background(), connectionscmd.CreateConnectionCommand{})
	if err == nil {
		t.Fatal("expected validation error for empty command")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestCreateThenDissolveConnection(t *testing.T) {
	service := newService()
	create := connectionscmd.NewCreateConnectionHandler(service, nil)
	dissolve := connectionscmd.NewDissolveConnectionHandler(service, nil)

	serviceID := uuid.New()
	channelID := uuid.New()

	if err := create.Execute(context.Background(), connectionscmd.CreateConnectionCommand{
		ServiceID:      serviceID,
		ChannelID:      channelID,
		ConnectionType: domain.ConnectionTypeServiceLocation,
	}); err != nil {
		t.Fatalf("create Execute() error = %v", err)
	}

	listed, err := service.ListForEntity(context.Background(), serviceID)
	if err != nil {
		t.Fatalf("ListForEntity() error = %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("ListForEntity() returned %d connections, want 1", len(listed))
	}

	if err := dissolve.Execute(context.Background(), connectionscmd.DissolveConnectionCommand{
		ConnectionID: listed[0].ID,
	}); err != nil {
		t.Fatalf("dissolve Execute() error = %v", err)
	}

	stored, err := service.GetConnection(context.Background(), listed[0].ID)
	if err != nil {
		t.Fatalf("GetConnection() error = %v", err)
	}
	if stored.DissolvedAt == nil {
		t.Error("DissolvedAt is nil, want dissolution timestamp")
	}
}

func TestDissolveConnectionCommandValidation(t *testing.T) {
	handler := connectionscmd.NewDissolveConnectionHandler(newService(), nil)

	err := handler.Execute(context.Background(), connectionscmd.DissolveConnectionCommand{})
	if err == nil {
		t.Fatal("expected validation error for missing connection id")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
