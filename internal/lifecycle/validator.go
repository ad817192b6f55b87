package lifecycle

import (
	"strings"

	"github.com/govkit/servicecatalog/internal/domain"
)

// Action names a lifecycle transition a caller may request on a language version.
type Action string

const (
	// ActionArchive moves a language version into the deleted (archived) state.
	ActionArchive Action = "archive"
	// ActionPublish makes a language version visible to consumers.
	ActionPublish Action = "publish"
	// ActionRestore returns an archived draft to the editable draft state.
	ActionRestore Action = "restore"
	// ActionRemove retires a language version permanently. Entity-level only.
	ActionRemove Action = "remove"
)

// NormalizeAction coerces arbitrary action strings into the canonical representation.
func NormalizeAction(input string) Action {
	return Action(strings.ToLower(strings.TrimSpace(input)))
}

// Valid reports whether the action is one the lifecycle understands.
func (a Action) Valid() bool {
	switch a {
	case ActionArchive, ActionPublish, ActionRestore, ActionRemove:
		return true
	default:
		return false
	}
}

// legalSources encodes the allow-list of source statuses per action. The
// asymmetry between Archive and Restore is a business rule, not an oversight:
// archiving a published version is a one-way door.
var legalSources = map[Action][]domain.Status{
	ActionArchive: {domain.StatusDraft, domain.StatusPublished, domain.StatusOldPublished, domain.StatusModified},
	ActionPublish: {domain.StatusDraft, domain.StatusModified, domain.StatusPublished},
	ActionRestore: {domain.StatusDraft},
	ActionRemove:  {domain.StatusModified, domain.StatusDeleted},
}

// targets maps each action to the status it produces on success.
var targets = map[Action]domain.Status{
	ActionArchive: domain.StatusDeleted,
	ActionPublish: domain.StatusPublished,
	ActionRestore: domain.StatusDraft,
	ActionRemove:  domain.StatusRemoved,
}

// CanArchive reports whether Archive is legal from the supplied status.
func CanArchive(current domain.Status) bool { return allowed(ActionArchive, current) }

// CanPublish reports whether Publish is legal from the supplied status.
func CanPublish(current domain.Status) bool { return allowed(ActionPublish, current) }

// CanRestore reports whether Restore is legal from the supplied status.
func CanRestore(current domain.Status) bool { return allowed(ActionRestore, current) }

// CanRemove reports whether Remove is legal from the supplied status.
func CanRemove(current domain.Status) bool { return allowed(ActionRemove, current) }

// Can reports whether the named action is legal from the supplied status.
func Can(action Action, current domain.Status) bool {
	return allowed(action, current)
}

// Validate checks legality without mutating anything. On rejection it returns
// an *InvalidTransitionError describing the attempt.
func Validate(action Action, current domain.Status) error {
	if !action.Valid() {
		return &InvalidTransitionError{Action: action, From: current}
	}
	if !allowed(action, current) {
		return &InvalidTransitionError{Action: action, From: current}
	}
	return nil
}

// Target returns the status the action produces. Callers must Validate first;
// unknown actions yield the zero status.
func Target(action Action) domain.Status {
	return targets[action]
}

func allowed(action Action, current domain.Status) bool {
	for _, status := range legalSources[action] {
		if status == current {
			return true
		}
	}
	return false
}
