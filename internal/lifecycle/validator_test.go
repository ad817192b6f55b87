package lifecycle_test

import (
	"errors"
	"testing"

	"github.com/govkit/servicecatalog/internal/domain"
	"github.com/govkit/servicecatalog/internal/lifecycle"
)

func TestLegalitySets(t *testing.T) {
	cases := []struct {
		action  lifecycle.Action
		allowed map[domain.Status]bool
	}{
		{
			action: lifecycle.ActionArchive,
			allowed: map[domain.Status]bool{
				domain.StatusDraft:        true,
				domain.StatusPublished:    true,
				domain.StatusOldPublished: true,
				domain.StatusModified:     true,
				domain.StatusDeleted:      false,
				domain.StatusRemoved:      false,
			},
		},
		{
			action: lifecycle.ActionPublish,
			allowed: map[domain.Status]bool{
				domain.StatusDraft:        true,
				domain.StatusModified:     true,
				domain.StatusPublished:    true,
				domain.StatusOldPublished: false,
				domain.StatusDeleted:      false,
				domain.StatusRemoved:      false,
			},
		},
		{
			action: lifecycle.ActionRestore,
			allowed: map[domain.Status]bool{
				domain.StatusDraft:        true,
				domain.StatusModified:     false,
				domain.StatusPublished:    false,
				domain.StatusOldPublished: false,
				domain.StatusDeleted:      false,
				domain.StatusRemoved:      false,
			},
		},
		{
			action: lifecycle.ActionRemove,
			allowed: map[domain.Status]bool{
				domain.StatusDraft:        false,
				domain.StatusModified:     true,
				domain.StatusPublished:    false,
				domain.StatusOldPublished: false,
				domain.StatusDeleted:      true,
				domain.StatusRemoved:      false,
			},
		},
	}

	for _, tc := range cases {
		for status, want := range tc.allowed {
			if got := lifecycle.Can(tc.action, status); got != want {
				t.Errorf("Can(%s, %s) = %v, want %v", tc.action, status, got, want)
			}
		}
	}
}

func TestValidateRejectsWithInvalidTransition(t *testing.T) {
	err := lifecycle.Validate(lifecycle.ActionRestore, domain.StatusDeleted)
	if err == nil {
		t.Fatal("expected error restoring a deleted version")
	}
	if !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	var typed *lifecycle.InvalidTransitionError
	if !errors.As(err, &typed) {
		t.Fatalf("expected *InvalidTransitionError, got %T", err)
	}
	if typed.Action != lifecycle.ActionRestore || typed.From != domain.StatusDeleted {
		t.Fatalf("unexpected error detail: %+v", typed)
	}
}

func TestValidateRejectsUnknownAction(t *testing.T) {
	if err := lifecycle.Validate(lifecycle.NormalizeAction("promote"), domain.StatusDraft); err == nil {
		t.Fatal("expected unknown action to be rejected")
	}
}

func TestRemovedIsTerminal(t *testing.T) {
	for _, action := range []lifecycle.Action{
		lifecycle.ActionArchive,
		lifecycle.ActionPublish,
		lifecycle.ActionRestore,
		lifecycle.ActionRemove,
	} {
		if lifecycle.Can(action, domain.StatusRemoved) {
			t.Errorf("Can(%s, removed) = true, want false", action)
		}
	}
}

func TestTargets(t *testing.T) {
	targets := map[lifecycle.Action]domain.Status{
		lifecycle.ActionArchive: domain.StatusDeleted,
		lifecycle.ActionPublish: domain.StatusPublished,
		lifecycle.ActionRestore: domain.StatusDraft,
		lifecycle.ActionRemove:  domain.StatusRemoved,
	}
	for action, want := range targets {
		if got := lifecycle.Target(action); got != want {
			t.Errorf("Target(%s) = %s, want %s", action, got, want)
		}
	}
}
