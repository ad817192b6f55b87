package versions

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrEntityIDRequired    = errors.New("versions: entity id required")
	ErrEntityTypeInvalid   = errors.New("versions: entity type invalid")
	ErrLanguageRequired    = errors.New("versions: language code required")
	ErrLanguageNotEnabled  = errors.New("versions: language not enabled for entity type")
	ErrNotFound            = errors.New("versions: not found")
	ErrConcurrencyConflict = errors.New("versions: revision conflict")
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

// ConcurrencyConflictError reports a write attempted with a stale revision.
// The store never retries; the caller decides whether to re-read and retry.
type ConcurrencyConflictError struct {
	EntityID     uuid.UUID
	LanguageCode string
	Expected     int64
	Actual       int64
}

func (e *ConcurrencyConflictError) Error() string {
	if e == nil {
		return ErrConcurrencyConflict.Error()
	}
	return fmt.Sprintf("%s: entity=%s language=%s expected=%d actual=%d",
		ErrConcurrencyConflict.Error(), e.EntityID, e.LanguageCode, e.Expected, e.Actual)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}
