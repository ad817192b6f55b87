package translations

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrEntityIDRequired is returned when an order submission names no entity.
	ErrEntityIDRequired = errors.New("translations: entity id is required")

	// ErrSourceLanguageRequired is returned when the source language is empty.
	ErrSourceLanguageRequired = errors.New("translations: source language is required")

	// ErrTargetLanguagesRequired is returned when the target set is empty.
	ErrTargetLanguagesRequired = errors.New("translations: at least one target language is required")

	// ErrTargetEqualsSource is returned when the target set contains the
	// source language.
	ErrTargetEqualsSource = errors.New("translations: target languages must be disjoint from the source language")

	// ErrSubscriberContactRequired is returned when no completion contact is
	// supplied.
	ErrSubscriberContactRequired = errors.New("translations: subscriber contact is required")

	// ErrTargetLanguageNotEnabled is returned when a target language is not
	// enabled for the entity type.
	ErrTargetLanguageNotEnabled = errors.New("translations: target language is not enabled for entity type")

	// ErrNotFound is returned when an order cannot be located.
	ErrNotFound = errors.New("translations: order not found")

	// ErrOrderTerminal is returned by repositories when a finalize races a
	// delivery that already terminated the order.
	ErrOrderTerminal = errors.New("translations: order already terminal")

	// ErrVendorDispatch is returned when the vendor rejects or times out the
	// dispatch call. The order is persisted and the submission can be retried.
	ErrVendorDispatch = errors.New("translations: vendor dispatch failed")
)

// NotFoundError carries the order key that failed to resolve.
type NotFoundError struct {
	OrderID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("translations: order %s not found", e.OrderID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// TargetLanguageError identifies which target language was rejected and why.
type TargetLanguageError struct {
	LanguageCode string
	Reason       error
}

func (e *TargetLanguageError) Error() string {
	return fmt.Sprintf("translations: target language %q rejected: %v", e.LanguageCode, e.Reason)
}

func (e *TargetLanguageError) Unwrap() error { return e.Reason }
