package lifecycle

import (
	"errors"
	"fmt"

	"github.com/govkit/servicecatalog/internal/domain"
)

// ErrInvalidTransition indicates the requested action is not legal from the
// current status. Structured details travel on *InvalidTransitionError.
var ErrInvalidTransition = errors.New("lifecycle: transition not allowed")

// InvalidTransitionError captures a rejected lifecycle transition.
type InvalidTransitionError struct {
	Action Action
	From   domain.Status
}

func (e *InvalidTransitionError) Error() string {
	if e == nil {
		return ErrInvalidTransition.Error()
	}
	return fmt.Sprintf("%s: action=%s from=%s", ErrInvalidTransition.Error(), e.Action, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
