package translations

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
	"github.com/govkit/servicecatalog/internal/versions"
	"github.com/govkit/servicecatalog/pkg/interfaces"
)

// Service coordinates translation orders between the version store and the
// external vendor. Callbacks are at-least-once; OnVendorCallback is idempotent
// on terminal orders.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*TranslationOrder, error)
	OnVendorCallback(ctx context.Context, orderID uuid.UUID, result interfaces.VendorResult) (*TranslationOrder, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*TranslationOrder, error)
	ListForEntity(ctx context.Context, entityID uuid.UUID) ([]*TranslationOrder, error)
}

// SubmitRequest captures a new translation order submission.
type SubmitRequest struct {
	EntityID          uuid.UUID
	SourceLanguage    string
	TargetLanguages   []string
	SubscriberContact string
}

// VersionStore is the slice of the version service the coordinator needs:
// resolving the source version and creating and publishing target versions.
type VersionStore interface {
	GetEntity(ctx context.Context, entityID uuid.UUID) (*versions.ContentEntity, error)
	GetVersion(ctx context.Context, entityID uuid.UUID, languageCode string) (*versions.LanguageVersion, error)
	EnsureVersion(ctx context.Context, req versions.EnsureVersionRequest) (*versions.LanguageVersion, error)
	ApplyTransition(ctx context.Context, req versions.ApplyTransitionRequest) (*versions.LanguageVersion, error)
}

// CapabilityResolver answers which languages an entity type supports.
type CapabilityResolver interface {
	LanguageEnabled(entityType domain.EntityType, languageCode string) bool
}

// OrderRepository abstracts translation order storage. Finalize commits a
// terminal status only while the stored order is still pending, so duplicate
// callback deliveries collapse to a single terminal write.
type OrderRepository interface {
	Create(ctx context.Context, order *TranslationOrder) (*TranslationOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TranslationOrder, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*TranslationOrder, error)
	Update(ctx context.Context, order *TranslationOrder) (*TranslationOrder, error)
	Finalize(ctx context.Context, order *TranslationOrder) (*TranslationOrder, error)
}

// ServiceOption configures the coordinator at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator used for new orders.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithCapabilities wires the entity-type language capability table.
func WithCapabilities(capabilities CapabilityResolver) ServiceOption {
	return func(s *service) {
		s.capabilities = capabilities
	}
}

// WithDispatchTimeout bounds the vendor dispatch call made during Submit.
func WithDispatchTimeout(timeout time.Duration) ServiceOption {
	return func(s *service) {
		if timeout > 0 {
			s.dispatchTimeout = timeout
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
	orders          OrderRepository
	store           VersionStore
	vendor          interfaces.TranslationVendor
	capabilities    CapabilityResolver
	now             func() time.Time
	id              func() uuid.UUID
	dispatchTimeout time.Duration
	logger          interfaces.Logger
}

const defaultDispatchTimeout = 10 * time.Second

// NewService constructs the translation order coordinator.
func NewService(orders OrderRepository, store VersionStore, vendor interfaces.TranslationVendor, opts ...ServiceOption) Service {
	s := &service{
		orders:          orders,
		store:           store,
		vendor:          vendor,
		now:             time.Now,
		id:              uuid.New,
		dispatchTimeout: defaultDispatchTimeout,
		logger:          logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*TranslationOrder, error) {
	if req.EntityID == uuid.Nil {
		return nil, ErrEntityIDRequired
	}
	source := normalizeLanguage(req.SourceLanguage)
	if source == "" {
		return nil, ErrSourceLanguageRequired
	}
	if strings.TrimSpace(req.SubscriberContact) == "" {
		return nil, ErrSubscriberContactRequired
	}

	targets, err := normalizeTargets(req.TargetLanguages, source)
	if err != nil {
		return nil, err
	}

	entity, err := s.store.GetEntity(ctx, req.EntityID)
	if err != nil {
		return nil, err
	}
	// The source must already exist as a language version of the entity.
	if _, err := s.store.GetVersion(ctx, req.EntityID, source); err != nil {
		return nil, err
	}
	if s.capabilities != nil {
		for _, lang := range targets {
			if !s.capabilities.LanguageEnabled(entity.Type, lang) {
				return nil, &TargetLanguageError{LanguageCode: lang, Reason: ErrTargetLanguageNotEnabled}
			}
		}
	}

	now := s.now()
	order := &TranslationOrder{
		ID:                s.id(),
		EntityID:          entity.ID,
		EntityType:        entity.Type,
		SourceLanguage:    source,
		TargetLanguages:   targets,
		Status:            OrderStatusPending,
		SubscriberContact: strings.TrimSpace(req.SubscriberContact),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	order.Reference = identity.OrderReference(order.ID)

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	logger := logging.WithOrderContext(s.logger, created.ID.String())
	logger.Info("order.submitted", "entity_id", created.EntityID, "source", source, "targets", len(targets))

	vendorRef, err := s.dispatch(ctx, created)
	if err != nil {
		logger.Error("order.dispatch_failed", "error", err)
		return created, fmt.Errorf("%w: %v", ErrVendorDispatch, err)
	}

	created.VendorRef = vendorRef
	created.UpdatedAt = s.now()
	updated, err := s.orders.Update(ctx, created)
	if err != nil {
		return nil, err
	}
	logger.Info("order.dispatched", "vendor_ref", vendorRef)
	return updated, nil
}

func (s *service) OnVendorCallback(ctx context.Context, orderID uuid.UUID, result interfaces.VendorResult) (*TranslationOrder, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	logger := logging.WithOrderContext(s.logger, order.ID.String())

	// At-least-once delivery: a terminal order already absorbed this result.
	if order.Status.Terminal() {
		logger.Debug("order.callback_replayed", "status", order.Status)
		return order, nil
	}

	now := s.now()
	completedAt := result.CompletedAt
	if completedAt.IsZero() {
		completedAt = now
	}

	if !result.Success {
		order.Status = OrderStatusFailed
		order.Detail = result.Detail
		order.UpdatedAt = now
		order.CompletedAt = &completedAt
		return s.finalize(ctx, order, logger)
	}

	// Successful delivery: every target language gets a version and a publish
	// attempt. Rejections degrade to warnings; they never fail the order.
	for _, lang := range order.TargetLanguages {
		if err := s.publishTarget(ctx, order, lang); err != nil {
			if !transitionRejected(err) {
				return nil, err
			}
			order.Warnings = append(order.Warnings, fmt.Sprintf("%s: %v", lang, err))
			logger.Warn("order.target_skipped", "language_code", lang, "error", err)
		}
	}

	order.Status = OrderStatusCompleted
	order.Detail = result.Detail
	order.UpdatedAt = now
	order.CompletedAt = &completedAt
	return s.finalize(ctx, order, logger)
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*TranslationOrder, error) {
	if orderID == uuid.Nil {
		return nil, &NotFoundError{OrderID: orderID}
	}
	return s.orders.GetByID(ctx, orderID)
}

func (s *service) ListForEntity(ctx context.Context, entityID uuid.UUID) ([]*TranslationOrder, error) {
	if entityID == uuid.Nil {
		return nil, ErrEntityIDRequired
	}
	return s.orders.ListByEntity(ctx, entityID)
}

func (s *service) dispatch(ctx context.Context, order *TranslationOrder) (string, error) {
	if s.vendor == nil {
		return "", errors.New("no vendor configured")
	}
	dispatchCtx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	return s.vendor.DispatchOrder(dispatchCtx, interfaces.VendorOrder{
		OrderID:           order.ID.String(),
		Reference:         order.Reference,
		EntityID:          order.EntityID.String(),
		EntityType:        string(order.EntityType),
		SourceLanguage:    order.SourceLanguage,
		TargetLanguages:   append([]string(nil), order.TargetLanguages...),
		SubscriberContact: order.SubscriberContact,
	})
}

// publishTarget ensures the target language version exists and publishes it at
// its current revision.
func (s *service) publishTarget(ctx context.Context, order *TranslationOrder, languageCode string) error {
	version, err := s.store.EnsureVersion(ctx, versions.EnsureVersionRequest{
		EntityID:     order.EntityID,
		EntityType:   order.EntityType,
		LanguageCode: languageCode,
	})
	if err != nil {
		return err
	}
	_, err = s.store.ApplyTransition(ctx, versions.ApplyTransitionRequest{
		EntityID:         order.EntityID,
		LanguageCode:     languageCode,
		Action:           lifecycle.ActionPublish,
		ExpectedRevision: version.Revision,
	})
	return err
}

func (s *service) finalize(ctx context.Context, order *TranslationOrder, logger interfaces.Logger) (*TranslationOrder, error) {
	final, err := s.orders.Finalize(ctx, order)
	if err != nil {
		// A concurrent delivery terminated the order first; return its outcome.
		if errors.Is(err, ErrOrderTerminal) {
			return s.orders.GetByID(ctx, order.ID)
		}
		return nil, err
	}
	logger.Info("order.finalized", "status", final.Status, "warnings", len(final.Warnings))
	return final, nil
}

// transitionRejected reports whether a publish attempt failed for a reason the
// order absorbs as a warning rather than an error.
func transitionRejected(err error) bool {
	if errors.Is(err, lifecycle.ErrInvalidTransition) {
		return true
	}
	var conflict *versions.ConcurrencyConflictError
	if errors.As(err, &conflict) {
		return true
	}
	return errors.Is(err, versions.ErrLanguageNotEnabled)
}

func normalizeTargets(raw []string, source string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	targets := make([]string, 0, len(raw))
	for _, lang := range raw {
		normalized := normalizeLanguage(lang)
		if normalized == "" {
			continue
		}
		if normalized == source {
			return nil, ErrTargetEqualsSource
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		targets = append(targets, normalized)
	}
	if len(targets) == 0 {
		return nil, ErrTargetLanguagesRequired
	}
	return targets, nil
}

func normalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
