package connections

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	ts := date(y, m, d)
	return &ts
}

func normalWeekdays(opens, closes string) *OpeningHoursOverride {
	return &OpeningHoursOverride{
		Kind:  OverrideKindNormal,
		Days:  DayOfWeekMask(0x1f), // Monday through Friday
		Opens: opens, Closes: closes,
	}
}

func TestResolveBaseScheduleApplies(t *testing.T) {
	overrides := []*OpeningHoursOverride{normalWeekdays("09:00", "17:00")}

	// 2024-12-23 is a Monday.
	got := resolveEffectiveHours(overrides, date(2024, 12, 23))
	if got.Closed {
		t.Fatal("expected open day")
	}
	if got.Source != OverrideKindNormal {
		t.Fatalf("expected normal source, got %s", got.Source)
	}
	if len(got.Intervals) != 1 || got.Intervals[0].Opens != "09:00" || got.Intervals[0].Closes != "17:00" {
		t.Fatalf("unexpected intervals: %+v", got.Intervals)
	}
}

func TestResolveExceptionalClosureWins(t *testing.T) {
	overrides := []*OpeningHoursOverride{
		normalWeekdays("09:00", "17:00"),
		{
			Kind:      OverrideKindSpecial,
			Days:      DayMaskAll,
			ValidFrom: datePtr(2024, 12, 20),
			ValidTo:   datePtr(2024, 12, 31),
			Opens:     "10:00", Closes: "14:00",
		},
		{
			Kind:      OverrideKindExceptional,
			Days:      DayMaskAll,
			ValidFrom: datePtr(2024, 12, 24),
			ValidTo:   datePtr(2024, 12, 24),
			Closed:    true,
		},
	}

	// Christmas Eve 2024 falls on a Tuesday; the exceptional closure beats
	// both the special season hours and the weekday base schedule.
	got := resolveEffectiveHours(overrides, date(2024, 12, 24))
	if !got.Closed {
		t.Fatalf("expected closed, got %+v", got)
	}
	if got.Source != OverrideKindExceptional {
		t.Fatalf("expected exceptional source, got %s", got.Source)
	}

	// The day before, the special override applies instead of the base hours.
	before := resolveEffectiveHours(overrides, date(2024, 12, 23))
	if before.Closed || before.Source != OverrideKindSpecial {
		t.Fatalf("expected special hours on the 23rd, got %+v", before)
	}
	if before.Intervals[0].Opens != "10:00" {
		t.Fatalf("unexpected special hours: %+v", before.Intervals)
	}

	// Outside both windows the base schedule is back.
	after := resolveEffectiveHours(overrides, date(2025, 1, 6))
	if after.Source != OverrideKindNormal {
		t.Fatalf("expected normal hours in January, got %+v", after)
	}
}

func TestResolveWithoutCoverageIsClosed(t *testing.T) {
	overrides := []*OpeningHoursOverride{normalWeekdays("09:00", "17:00")}

	// 2024-12-22 is a Sunday, outside the weekday mask.
	got := resolveEffectiveHours(overrides, date(2024, 12, 22))
	if !got.Closed {
		t.Fatalf("expected closed sunday, got %+v", got)
	}
}

func TestValidateOverridesRejectsSameKindOverlap(t *testing.T) {
	overrides := []*OpeningHoursOverride{
		{
			Kind:      OverrideKindSpecial,
			Days:      DayMaskAll,
			ValidFrom: datePtr(2024, 12, 20),
			ValidTo:   datePtr(2024, 12, 28),
		},
		{
			Kind:      OverrideKindSpecial,
			Days:      DayMaskAll,
			ValidFrom: datePtr(2024, 12, 26),
			ValidTo:   datePtr(2024, 12, 31),
		},
	}

	err := validateOverrides(overrides)
	if err == nil {
		t.Fatal("expected overlap rejection")
	}
	var conflict *OverrideConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *OverrideConflictError, got %T", err)
	}
	if conflict.Kind != OverrideKindSpecial {
		t.Fatalf("unexpected kind: %s", conflict.Kind)
	}
}

func TestValidateOverridesAllowsDisjointDays(t *testing.T) {
	overrides := []*OpeningHoursOverride{
		{Kind: OverrideKindNormal, Days: DayOfWeekMask(0x1f), Opens: "09:00", Closes: "17:00"},
		{Kind: OverrideKindNormal, Days: DayOfWeekMask(0x60), Opens: "10:00", Closes: "14:00"}, // weekend
	}
	if err := validateOverrides(overrides); err != nil {
		t.Fatalf("expected disjoint weekday masks to pass, got %v", err)
	}
}

func TestValidateOverridesAllowsDifferentKinds(t *testing.T) {
	overrides := []*OpeningHoursOverride{
		normalWeekdays("09:00", "17:00"),
		{
			Kind:      OverrideKindExceptional,
			Days:      DayMaskAll,
			ValidFrom: datePtr(2024, 12, 24),
			ValidTo:   datePtr(2024, 12, 24),
			Closed:    true,
		},
	}
	if err := validateOverrides(overrides); err != nil {
		t.Fatalf("different kinds never conflict, got %v", err)
	}
}

func TestValidateOverridesRejectsUnknownKind(t *testing.T) {
	overrides := []*OpeningHoursOverride{{Kind: NormalizeOverrideKind("seasonal"), Days: DayMaskAll}}
	if err := validateOverrides(overrides); !errors.Is(err, ErrOverrideKindInvalid) {
		t.Fatalf("expected ErrOverrideKindInvalid, got %v", err)
	}
}

func TestDayOfWeekMaskContains(t *testing.T) {
	mask := DayOfWeekMask(0x01) // Monday only
	if !mask.Contains(time.Monday) {
		t.Fatal("expected monday")
	}
	if mask.Contains(time.Sunday) {
		t.Fatal("did not expect sunday")
	}
	if !DayMaskAll.Contains(time.Sunday) {
		t.Fatal("full mask must include sunday")
	}
}
