package domain

import "strings"

// Status represents the publishing lifecycle stage of a language version.
type Status string

const (
	// StatusDraft indicates a language version still under preparation.
	StatusDraft Status = "draft"
	// StatusModified marks a published version with unpublished edits on top.
	StatusModified Status = "modified"
	// StatusPublished identifies a language version visible to consumers.
	StatusPublished Status = "published"
	// StatusOldPublished marks a previously published version superseded by a newer one.
	StatusOldPublished Status = "old_published"
	// StatusDeleted marks an archived language version retained for history.
	StatusDeleted Status = "deleted"
	// StatusRemoved is terminal; no further transitions are permitted.
	StatusRemoved Status = "removed"
)

// KnownStatuses lists every status the lifecycle understands, in no particular order.
func KnownStatuses() []Status {
	return []Status{
		StatusDraft,
		StatusModified,
		StatusPublished,
		StatusOldPublished,
		StatusDeleted,
		StatusRemoved,
	}
}

// NormalizeStatus coerces arbitrary status strings into the canonical representation.
// Unknown inputs are returned trimmed and lowercased so callers can report them.
func NormalizeStatus(input string) Status {
	if strings.TrimSpace(input) == "" {
		return StatusDraft
	}
	return Status(strings.ToLower(strings.TrimSpace(input)))
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusRemoved
}

// IsLive reports whether a language version in this status still counts as an
// eligible connection endpoint.
func (s Status) IsLive() bool {
	return s != StatusRemoved && s != StatusDeleted
}
