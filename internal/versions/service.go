package versions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/govkit/servicecatalog/internal/domain"
	"github.com/govkit/servicecatalog/internal/identity"
	"github.com/govkit/servicecatalog/internal/lifecycle"
	"github.com/govkit/servicecatalog/internal/logging"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

// Service owns the authoritative per-language version records of catalog
// entities. Every status change funnels through ApplyTransition or
// RemoveEntity so the lifecycle validator and the revision compare-and-swap
// guard every write.
type Service interface {
	EnsureVersion(ctx context.Context, req EnsureVersionRequest) (*LanguageVersion, error)
	GetVersion(ctx context.Context, entityID uuid.UUID, languageCode string) (*LanguageVersion, error)
	GetEntity(ctx context.Context, entityID uuid.UUID) (*ContentEntity, error)
	ApplyTransition(ctx context.Context, req ApplyTransitionRequest) (*LanguageVersion, error)
	RemoveEntity(ctx context.Context, req RemoveEntityRequest) error
	VersionRecords(ctx context.Context, entityID uuid.UUID) ([]interfaces.LanguageVersionRecord, error)
}

// EnsureVersionRequest captures the first-save payload for a language version.
// Ensure is idempotent: an existing version is returned unchanged.
type EnsureVersionRequest struct {
	EntityID     uuid.UUID
	EntityType   domain.EntityType
	LanguageCode string
}

// ApplyTransitionRequest captures a lifecycle transition on one language version.
type ApplyTransitionRequest struct {
	EntityID         uuid.UUID
	LanguageCode     string
	Action           lifecycle.Action
	ExpectedRevision int64
	ActorID          uuid.UUID
}

// RemoveEntityRequest captures the entity-level remove operation. The remove
// applies to every language version atomically or not at all.
type RemoveEntityRequest struct {
	EntityID uuid.UUID
	ActorID  uuid.UUID
}

// EntityRepository abstracts storage for entities and their language versions.
// Update operations carry compare-and-swap semantics; implementations must not
// retry conflicts on their own.
type EntityRepository interface {
	Create(ctx context.Context, record *ContentEntity) (*ContentEntity, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ContentEntity, error)
	GetVersion(ctx context.Context, entityID uuid.UUID, languageCode string) (*LanguageVersion, error)
	CreateVersion(ctx context.Context, version *LanguageVersion) (*LanguageVersion, error)
	// UpdateVersion commits the supplied version when the stored revision still
	// equals expectedRevision, incrementing both the version revision and the
	// entity aggregate revision. A mismatch yields *ConcurrencyConflictError.
	UpdateVersion(ctx context.Context, version *LanguageVersion, expectedRevision int64) (*LanguageVersion, error)
	// UpdateEntityVersions atomically commits every supplied version when the
	// entity aggregate revision still equals expectedAggregateRevision.
	UpdateEntityVersions(ctx context.Context, entityID uuid.UUID, updated []*LanguageVersion, expectedAggregateRevision int64) (*ContentEntity, error)
}

// CapabilityResolver answers which languages an entity type supports.
type CapabilityResolver interface {
	LanguageEnabled(entityType domain.EntityType, languageCode string) bool
}

// ConsistencyNotifier receives synchronous notification whenever a committed
// transition leaves a language version in a non-live status, so stale
// connections are flagged before the next read.
type ConsistencyNotifier interface {
	Revalidate(ctx context.Context, entityID uuid.UUID) error
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

// WithConsistencyNotifier wires the connection engine notification hook.
func WithConsistencyNotifier(notifier ConsistencyNotifier) ServiceOption {
	return func(s *service) {
		s.notifier = notifier
	}
}

// WithCapabilities wires the entity-type language capability table.
func WithCapabilities(capabilities CapabilityResolver) ServiceOption {
	return func(s *service) {
		s.capabilities = capabilities
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
	entities     EntityRepository
	capabilities CapabilityResolver
	notifier     ConsistencyNotifier
	now          func() time.Time
	id           func() uuid.UUID
	logger       interfaces.Logger
}

// NewService constructs the version store service.
func NewService(entities EntityRepository, opts ...ServiceOption) Service {
	s := &service{
		entities: entities,
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) EnsureVersion(ctx context.Context, req EnsureVersionRequest) (*LanguageVersion, error) {
	if req.EntityID == uuid.Nil {
		return nil, ErrEntityIDRequired
	}
	if !req.EntityType.Valid() {
		return nil, ErrEntityTypeInvalid
	}
	languageCode := normalizeLanguage(req.LanguageCode)
	if languageCode == "" {
		return nil, ErrLanguageRequired
	}
	if s.capabilities != nil && !s.capabilities.LanguageEnabled(req.EntityType, languageCode) {
		return nil, fmt.Errorf("%w: %s/%s", ErrLanguageNotEnabled, req.EntityType, languageCode)
	}

	entity, err := s.entities.GetByID(ctx, req.EntityID)
	if err != nil {
		if _, missing := asNotFound(err); !missing {
			return nil, err
		}
		entity, err = s.entities.Create(ctx, &ContentEntity{
			ID:        req.EntityID,
			Type:      req.EntityType,
			CreatedAt: s.now(),
			UpdatedAt: s.now(),
		})
		if err != nil {
			return nil, err
		}
	}

	if existing := entity.VersionFor(languageCode); existing != nil {
		return cloneVersion(existing), nil
	}

	now := s.now()
	version := &LanguageVersion{
		ID:           identity.LanguageVersionUUID(entity.ID, languageCode),
		EntityID:     entity.ID,
		LanguageCode: languageCode,
		Status:       domain.StatusDraft,
		Revision:     1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := s.entities.CreateVersion(ctx, version)
	if err != nil {
		return nil, err
	}

	s.logger.Info("version.created", "entity_id", entity.ID, "language_code", languageCode)
	return cloneVersion(created), nil
}

func (s *service) GetVersion(ctx context.Context, entityID uuid.UUID, languageCode string) (*LanguageVersion, error) {
	if entityID == uuid.Nil {
		return nil, ErrEntityIDRequired
	}
	languageCode = normalizeLanguage(languageCode)
	if languageCode == "" {
		return nil, ErrLanguageRequired
	}
	version, err := s.entities.GetVersion(ctx, entityID, languageCode)
	if err != nil {
		return nil, err
	}
	return cloneVersion(version), nil
}

func (s *service) GetEntity(ctx context.Context, entityID uuid.UUID) (*ContentEntity, error) {
	if entityID == uuid.Nil {
		return nil, ErrEntityIDRequired
	}
	entity, err := s.entities.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return cloneEntity(entity), nil
}

func (s *service) ApplyTransition(ctx context.Context, req ApplyTransitionRequest) (*LanguageVersion, error) {
	if req.EntityID == uuid.Nil {
		return nil, ErrEntityIDRequired
	}
	languageCode := normalizeLanguage(req.LanguageCode)
	if languageCode == "" {
		return nil, ErrLanguageRequired
	}

	current, err := s.entities.GetVersion(ctx, req.EntityID, languageCode)
	if err != nil {
		return nil, err
	}

	// Legality first: an illegal action never consumes the revision.
	if err := lifecycle.Validate(req.Action, current.Status); err != nil {
		return nil, err
	}
	if req.ExpectedRevision != current.Revision {
		return nil, &ConcurrencyConflictError{
			EntityID:     req.EntityID,
			LanguageCode: languageCode,
			Expected:     req.ExpectedRevision,
			Actual:       current.Revision,
		}
	}

	updated := cloneVersion(current)
	s.applyEffects(updated, req.Action, req.ActorID)

	committed, err := s.entities.UpdateVersion(ctx, updated, req.ExpectedRevision)
	if err != nil {
		return nil, err
	}

	logger := logging.WithVersionContext(s.logger, req.EntityID.String(), languageCode)
	logger.Info("version.transition", "action", req.Action, "status", committed.Status, "revision", committed.Revision)

	if !committed.Status.IsLive() {
		if err := s.notifyRevalidate(ctx, req.EntityID); err != nil {
			return nil, err
		}
	}
	return cloneVersion(committed), nil
}

func (s *service) RemoveEntity(ctx context.Context, req RemoveEntityRequest) error {
	if req.EntityID == uuid.Nil {
		return ErrEntityIDRequired
	}

	entity, err := s.entities.GetByID(ctx, req.EntityID)
	if err != nil {
		return err
	}
	if len(entity.Versions) == 0 {
		return &NotFoundError{Resource: "language version", Key: req.EntityID.String()}
	}

	// All-or-nothing: one ineligible language version fails the whole remove
	// before anything is written.
	for _, version := range entity.Versions {
		if err := lifecycle.Validate(lifecycle.ActionRemove, version.Status); err != nil {
			return err
		}
	}

	now := s.now()
	updated := make([]*LanguageVersion, 0, len(entity.Versions))
	for _, version := range entity.Versions {
		next := cloneVersion(version)
		next.Status = domain.StatusRemoved
		next.UpdatedAt = now
		updated = append(updated, next)
	}

	if _, err := s.entities.UpdateEntityVersions(ctx, entity.ID, updated, entity.AggregateRevision); err != nil {
		return err
	}

	s.logger.Info("entity.removed", "entity_id", entity.ID, "languages", len(updated))
	return s.notifyRevalidate(ctx, entity.ID)
}

func (s *service) VersionRecords(ctx context.Context, entityID uuid.UUID) ([]interfaces.LanguageVersionRecord, error) {
	entity, err := s.entities.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	records := make([]interfaces.LanguageVersionRecord, 0, len(entity.Versions))
	for _, version := range entity.Versions {
		record := interfaces.LanguageVersionRecord{
			EntityID:     entity.ID.String(),
			EntityType:   string(entity.Type),
			LanguageCode: version.LanguageCode,
			Status:       string(version.Status),
			Revision:     version.Revision,
			PublishedAt:  version.PublishedAt,
			ArchivedAt:   version.ArchivedAt,
			ReviewedAt:   version.ReviewedAt,
		}
		if version.ReviewedBy != nil {
			record.ReviewedBy = version.ReviewedBy.String()
		}
		records = append(records, record)
	}
	return records, nil
}

// applyEffects mutates the clone with the action's transition effects. The
// revision itself advances inside the repository compare-and-swap.
func (s *service) applyEffects(version *LanguageVersion, action lifecycle.Action, actorID uuid.UUID) {
	now := s.now()
	version.Status = lifecycle.Target(action)
	version.UpdatedAt = now

	switch action {
	case lifecycle.ActionPublish:
		version.PublishedAt = &now
		if actorID != uuid.Nil {
			version.ReviewedAt = &now
			reviewer := actorID
			version.ReviewedBy = &reviewer
		}
	case lifecycle.ActionArchive:
		version.ArchivedAt = &now
	case lifecycle.ActionRestore:
		version.ArchivedAt = nil
	}
}

func (s *service) notifyRevalidate(ctx context.Context, entityID uuid.UUID) error {
	if s.notifier == nil {
		return nil
	}
	if err := s.notifier.Revalidate(ctx, entityID); err != nil {
		return fmt.Errorf("versions: connection revalidation failed: %w", err)
	}
	return nil
}

func normalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func asNotFound(err error) (*NotFoundError, bool) {
	if err == nil {
		return nil, false
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return notFound, true
	}
	return nil, false
}
