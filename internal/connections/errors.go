package connections

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrServiceIDRequired     = errors.New("connections: service id required")
	ErrChannelIDRequired     = errors.New("connections: channel id required")
	ErrConnectionIDRequired  = errors.New("connections: connection id required")
	ErrConnectionTypeInvalid = errors.New("connections: connection type not accepted")
	ErrValidityWindowInvalid = errors.New("connections: validity window start must precede end")
	ErrOverrideKindInvalid   = errors.New("connections: override kind unknown")
	ErrConnectionConflict    = errors.New("connections: endpoint has no live language version")
	ErrOverrideConflict      = errors.New("connections: overlapping overrides of the same kind")
	ErrAlreadyDissolved      = errors.New("connections: connection already dissolved")
	ErrNotFound              = errors.New("connections: not found")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ConnectionConflictError reports a connection write referencing an endpoint
// with no live language version. No partial connection is created.
type ConnectionConflictError struct {
	ServiceID uuid.UUID
	ChannelID uuid.UUID
	EntityID  uuid.UUID
}

func (e *ConnectionConflictError) Error() string {
	if e == nil {
		return ErrConnectionConflict.Error()
	}
	return fmt.Sprintf("%s: entity=%s", ErrConnectionConflict.Error(), e.EntityID)
}

func (e *ConnectionConflictError) Unwrap() error {
	return ErrConnectionConflict
}

// OverrideConflictError reports two same-kind overrides overlapping on at
// least one covered date. Rejected at write time, never at resolution time.
type OverrideConflictError struct {
	Kind OverrideKind
}

func (e *OverrideConflictError) Error() string {
	if e == nil {
		return ErrOverrideConflict.Error()
	}
	return fmt.Sprintf("%s: kind=%s", ErrOverrideConflict.Error(), e.Kind)
}

func (e *OverrideConflictError) Unwrap() error {
	return ErrOverrideConflict
}
