package connections

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/govkit/servicecatalog/internal/domain"
	"github.com/govkit/servicecatalog/internal/identity"
	"github.com/govkit/servicecatalog/internal/logging"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

// Service owns service↔channel connection records and the consistency rules
// tying them to the language versions of their endpoints.
type Service interface {
	CreateConnection(ctx context.Context, req CreateConnectionRequest) (*Connection, error)
	DissolveConnection(ctx context.Context, req DissolveConnectionRequest) (*Connection, error)
	GetConnection(ctx context.Context, id uuid.UUID) (*Connection, error)
	ListForEntity(ctx context.Context, entityID uuid.UUID) ([]*Connection, error)
	// Revalidate flags connections whose endpoints both lost their last live
	// language version. Invoked synchronously by the version store.
	Revalidate(ctx context.Context, entityID uuid.UUID) error
	ResolveEffectiveOpeningHours(ctx context.Context, connectionID uuid.UUID, date time.Time) (*EffectiveHours, error)
	ConnectionRecords(ctx context.Context, entityID uuid.UUID) ([]interfaces.ConnectionRecord, error)
}

// OverrideInput describes one opening-hours fragment supplied at create time.
type OverrideInput struct {
	Kind      OverrideKind
	ValidFrom *time.Time
	ValidTo   *time.Time
	Days      DayOfWeekMask
	Opens     string
	Closes    string
	Closed    bool
}

// CreateConnectionRequest captures a user-initiated connection create.
// Connections are never auto-created.
type CreateConnectionRequest struct {
	ServiceID         uuid.UUID
	ChannelID         uuid.UUID
	ConnectionType    domain.ConnectionType
	OrganizationScope string
	ValidFrom         *time.Time
	ValidTo           *time.Time
	Overrides         []OverrideInput
}

// DissolveConnectionRequest captures a user-initiated dissolve. The record is
// kept with a dissolution timestamp so history remains inspectable.
type DissolveConnectionRequest struct {
	ConnectionID uuid.UUID
}

// ConnectionRepository abstracts storage for connection records.
type ConnectionRepository interface {
	Create(ctx context.Context, record *Connection) (*Connection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Connection, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*Connection, error)
	Update(ctx context.Context, record *Connection) (*Connection, error)
}

// EndpointResolver answers whether a catalog entity still has at least one
// live (non-removed, non-deleted) language version.
type EndpointResolver interface {
	HasLiveVersion(ctx context.Context, entityID uuid.UUID) (bool, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator used for new records.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger injects the module logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	connections ConnectionRepository
	endpoints   EndpointResolver
	now         func() time.Time
	id          func() uuid.UUID
	logger      interfaces.Logger
}

// NewService constructs the connection consistency engine.
func NewService(connections ConnectionRepository, endpoints EndpointResolver, opts ...ServiceOption) Service {
	s := &service{
		connections: connections,
		endpoints:   endpoints,
		now:         time.Now,
		id:          uuid.New,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateConnection(ctx context.Context, req CreateConnectionRequest) (*Connection, error) {
	if req.ServiceID == uuid.Nil {
		return nil, ErrServiceIDRequired
	}
	if req.ChannelID == uuid.Nil {
		return nil, ErrChannelIDRequired
	}
	if !req.ConnectionType.Valid() {
		return nil, ErrConnectionTypeInvalid
	}
	if req.ValidFrom != nil && req.ValidTo != nil && !req.ValidFrom.Before(*req.ValidTo) {
		return nil, ErrValidityWindowInvalid
	}

	// Either endpoint without a live language version blocks the create.
	for _, endpointID := range []uuid.UUID{req.ServiceID, req.ChannelID} {
		live, err := s.endpoints.HasLiveVersion(ctx, endpointID)
		if err != nil {
			return nil, err
		}
		if !live {
			return nil, &ConnectionConflictError{
				ServiceID: req.ServiceID,
				ChannelID: req.ChannelID,
				EntityID:  endpointID,
			}
		}
	}

	now := s.now()
	record := &Connection{
		ID:                identity.ConnectionUUID(req.ServiceID, req.ChannelID, string(req.ConnectionType)),
		ServiceID:         req.ServiceID,
		ChannelID:         req.ChannelID,
		ConnectionType:    req.ConnectionType,
		OrganizationScope: normalizeScope(req.OrganizationScope),
		ValidFrom:         req.ValidFrom,
		ValidTo:           req.ValidTo,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for i, input := range req.Overrides {
		record.Overrides = append(record.Overrides, &OpeningHoursOverride{
			ID:           s.id(),
			ConnectionID: record.ID,
			Kind:         input.Kind,
			ValidFrom:    input.ValidFrom,
			ValidTo:      input.ValidTo,
			Days:         input.Days,
			Opens:        input.Opens,
			Closes:       input.Closes,
			Closed:       input.Closed,
			Position:     i,
		})
	}

	// Override conflicts surface now, not at resolution time.
	if err := validateOverrides(record.Overrides); err != nil {
		return nil, err
	}

	created, err := s.connections.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("connection.created",
		"connection_id", created.ID,
		"service_id", created.ServiceID,
		"channel_id", created.ChannelID,
		"connection_type", created.ConnectionType,
	)
	return cloneConnection(created), nil
}

func (s *service) DissolveConnection(ctx context.Context, req DissolveConnectionRequest) (*Connection, error) {
	if req.ConnectionID == uuid.Nil {
		return nil, ErrConnectionIDRequired
	}
	record, err := s.connections.GetByID(ctx, req.ConnectionID)
	if err != nil {
		return nil, err
	}
	if record.DissolvedAt != nil {
		return nil, ErrAlreadyDissolved
	}

	now := s.now()
	updated := cloneConnection(record)
	updated.DissolvedAt = &now
	updated.UpdatedAt = now

	committed, err := s.connections.Update(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.logger.Info("connection.dissolved", "connection_id", committed.ID)
	return cloneConnection(committed), nil
}

func (s *service) GetConnection(ctx context.Context, id uuid.UUID) (*Connection, error) {
	if id == uuid.Nil {
		return nil, ErrConnectionIDRequired
	}
	record, err := s.connections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return cloneConnection(record), nil
}

func (s *service) ListForEntity(ctx context.Context, entityID uuid.UUID) ([]*Connection, error) {
	records, err := s.connections.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	out := make([]*Connection, 0, len(records))
	for _, record := range records {
		out = append(out, cloneConnection(record))
	}
	return out, nil
}

func (s *service) Revalidate(ctx context.Context, entityID uuid.UUID) error {
	if entityID == uuid.Nil {
		return nil
	}
	records, err := s.connections.ListByEntity(ctx, entityID)
	if err != nil {
		return err
	}

	for _, record := range records {
		if record == nil || record.Stale || record.DissolvedAt != nil {
			continue
		}
		serviceLive, err := s.endpoints.HasLiveVersion(ctx, record.ServiceID)
		if err != nil {
			return err
		}
		channelLive, err := s.endpoints.HasLiveVersion(ctx, record.ChannelID)
		if err != nil {
			return err
		}
		// One live endpoint keeps the connection valid; both gone flags it.
		if serviceLive || channelLive {
			continue
		}

		now := s.now()
		updated := cloneConnection(record)
		updated.Stale = true
		updated.StaleAt = &now
		updated.StaleReason = "both endpoints lost their last live language version"
		updated.UpdatedAt = now
		if _, err := s.connections.Update(ctx, updated); err != nil {
			return err
		}
		s.logger.Warn("connection.stale", "connection_id", record.ID, "entity_id", entityID)
	}
	return nil
}

func (s *service) ResolveEffectiveOpeningHours(ctx context.Context, connectionID uuid.UUID, date time.Time) (*EffectiveHours, error) {
	record, err := s.GetConnection(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	resolved := resolveEffectiveHours(record.Overrides, date)
	return &resolved, nil
}

func (s *service) ConnectionRecords(ctx context.Context, entityID uuid.UUID) ([]interfaces.ConnectionRecord, error) {
	records, err := s.connections.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	out := make([]interfaces.ConnectionRecord, 0, len(records))
	for _, record := range records {
		out = append(out, interfaces.ConnectionRecord{
			ID:                record.ID.String(),
			ServiceID:         record.ServiceID.String(),
			ChannelID:         record.ChannelID.String(),
			ConnectionType:    string(record.ConnectionType),
			OrganizationScope: record.OrganizationScope,
			ValidFrom:         record.ValidFrom,
			ValidTo:           record.ValidTo,
			Stale:             record.Stale,
			StaleAt:           record.StaleAt,
			StaleReason:       record.StaleReason,
			DissolvedAt:       record.DissolvedAt,
		})
	}
	return out, nil
}

func normalizeScope(scope string) string {
	trimmed := strings.TrimSpace(scope)
	if trimmed == "" {
		return domain.OrganizationScopeAny
	}
	return trimmed
}
