package connections

import (
	"sort"
	"time"
)

// resolveEffectiveHours applies the override-precedence rule for one date:
// an Exceptional override covering the date fully replaces the base schedule,
// otherwise a covering Special override replaces it, otherwise the Normal
// base schedule applies. Overlap within one kind was rejected at write time,
// so at most one override per kind can cover the date here.
func resolveEffectiveHours(overrides []*OpeningHoursOverride, date time.Time) EffectiveHours {
	result := EffectiveHours{Date: date.Truncate(24 * time.Hour), Closed: true}

	if winner := coveringOverride(overrides, OverrideKindExceptional, date); winner != nil {
		return overrideHours(winner, result)
	}
	if winner := coveringOverride(overrides, OverrideKindSpecial, date); winner != nil {
		return overrideHours(winner, result)
	}
	if base := coveringOverride(overrides, OverrideKindNormal, date); base != nil {
		return overrideHours(base, result)
	}
	return result
}

func coveringOverride(overrides []*OpeningHoursOverride, kind OverrideKind, date time.Time) *OpeningHoursOverride {
	for _, override := range sortedByPosition(overrides) {
		if override == nil || override.Kind != kind {
			continue
		}
		if !override.Covers(date) {
			continue
		}
		if !override.Days.Contains(date.Weekday()) {
			continue
		}
		return override
	}
	return nil
}

func overrideHours(override *OpeningHoursOverride, base EffectiveHours) EffectiveHours {
	base.Source = override.Kind
	if override.Closed {
		base.Closed = true
		base.Intervals = nil
		return base
	}
	base.Closed = false
	base.Intervals = []Interval{{Opens: override.Opens, Closes: override.Closes}}
	return base
}

// validateOverrides rejects unknown kinds and same-kind overlapping coverage.
// Called from the write path; resolution assumes the invariant holds.
func validateOverrides(overrides []*OpeningHoursOverride) error {
	byKind := make(map[OverrideKind][]*OpeningHoursOverride)
	for _, override := range overrides {
		if override == nil {
			continue
		}
		if !override.Kind.Valid() {
			return ErrOverrideKindInvalid
		}
		byKind[override.Kind] = append(byKind[override.Kind], override)
	}

	for kind, group := range byKind {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if overlaps(group[i], group[j]) {
					return &OverrideConflictError{Kind: kind}
				}
			}
		}
	}
	return nil
}

// overlaps reports whether two overrides of the same kind can cover the same
// date: their validity intervals intersect and they share a weekday.
func overlaps(a, b *OpeningHoursOverride) bool {
	if a.Days&b.Days == 0 {
		return false
	}
	return intervalIntersects(a.ValidFrom, a.ValidTo, b.ValidFrom, b.ValidTo)
}

func intervalIntersects(aFrom, aTo, bFrom, bTo *time.Time) bool {
	// nil bounds are open-ended.
	if aTo != nil && bFrom != nil && aTo.Before(*bFrom) {
		return false
	}
	if bTo != nil && aFrom != nil && bTo.Before(*aFrom) {
		return false
	}
	return true
}

func sortedByPosition(overrides []*OpeningHoursOverride) []*OpeningHoursOverride {
	out := make([]*OpeningHoursOverride, len(overrides))
	copy(out, overrides)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i] == nil || out[j] == nil {
			return out[j] == nil
		}
		return out[i].Position < out[j].Position
	})
	return out
}
