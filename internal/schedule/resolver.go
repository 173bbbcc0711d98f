package schedule

// Decision is the outcome of a reservation attempt. A rejection is a normal
// outcome, not an error: Conflicts carries every existing interval that
// blocks the candidate so the caller can show them to the user.
type Decision struct {
	Accepted  bool
	Conflicts []Interval
}

// FindConflicts returns, in input order, every element of existing that
// overlaps the candidate. Entries for other rooms are skipped before the
// time comparison. The input slice is never mutated.
//
// The scan is deliberately linear: a room accumulates at most a handful of
// business-hours reservations per day, so anything fancier than O(n) here
// would cost more than it saves.
func FindConflicts(candidate Interval, existing []Interval) []Interval {
	var conflicts []Interval
	for _, iv := range existing {
		if iv.Room != candidate.Room {
			continue
		}
		if Overlaps(candidate, iv) {
			conflicts = append(conflicts, iv)
		}
	}
	return conflicts
}

// TryReserve decides whether the candidate may be confirmed against the
// reservations already held for its room. It accepts exactly when no
// existing interval overlaps the candidate.
func TryReserve(candidate Interval, existing []Interval) Decision {
	conflicts := FindConflicts(candidate, existing)
	return Decision{
		Accepted:  len(conflicts) == 0,
		Conflicts: conflicts,
	}
}
