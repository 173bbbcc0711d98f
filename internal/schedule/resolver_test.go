package schedule

import (
	"testing"
)

func existingSet(t *testing.T) []Interval {
	t.Helper()
	a := mustInterval(t, "Amarilla", "2024-06-10", "09:00", "10:00")
	a.ID, a.Area = "res-1", "Finanzas"
	b := mustInterval(t, "Amarilla", "2024-06-10", "11:00", "12:00")
	b.ID, b.Area = "res-2", "Ventas"
	c := mustInterval(t, "Morada", "2024-06-10", "09:00", "10:00")
	c.ID, c.Area = "res-3", "Recursos Humanos"
	return []Interval{a, b, c}
}

func TestFindConflicts_PreservesInputOrder(t *testing.T) {
	existing := existingSet(t)
	candidate := mustInterval(t, "Amarilla", "2024-06-10", "09:30", "11:30")

	conflicts := FindConflicts(candidate, existing)
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(conflicts))
	}
	if conflicts[0].ID != "res-1" || conflicts[1].ID != "res-2" {
		t.Errorf("conflicts out of input order: %s, %s", conflicts[0].ID, conflicts[1].ID)
	}
}

func TestFindConflicts_SkipsOtherRooms(t *testing.T) {
	existing := existingSet(t)
	candidate := mustInterval(t, "Morada", "2024-06-10", "09:00", "10:00")

	conflicts := FindConflicts(candidate, existing)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].ID != "res-3" {
		t.Errorf("expected conflict with res-3, got %s", conflicts[0].ID)
	}
}

func TestFindConflicts_Idempotent(t *testing.T) {
	existing := existingSet(t)
	candidate := mustInterval(t, "Amarilla", "2024-06-10", "09:30", "11:30")

	first := FindConflicts(candidate, existing)
	second := FindConflicts(candidate, existing)

	if len(first) != len(second) {
		t.Fatalf("result size changed between calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("element %d changed between calls: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}

	// The existing slice must not be mutated by the scan.
	if existing[0].ID != "res-1" || existing[1].ID != "res-2" || existing[2].ID != "res-3" {
		t.Errorf("existing slice was mutated")
	}
}

func TestTryReserve_Scenario(t *testing.T) {
	existing := []Interval{mustInterval(t, "Amarilla", "2024-06-10", "09:00", "10:00")}
	existing[0].ID = "res-1"

	overlapping := mustInterval(t, "Amarilla", "2024-06-10", "09:30", "10:30")
	decision := TryReserve(overlapping, existing)
	if decision.Accepted {
		t.Fatalf("overlapping candidate accepted")
	}
	if len(decision.Conflicts) != 1 || decision.Conflicts[0].ID != "res-1" {
		t.Errorf("expected conflict set [res-1], got %v", decision.Conflicts)
	}

	touching := mustInterval(t, "Amarilla", "2024-06-10", "10:00", "11:00")
	if decision := TryReserve(touching, existing); !decision.Accepted {
		t.Errorf("touching candidate rejected, conflicts: %v", decision.Conflicts)
	}

	otherRoom := mustInterval(t, "Morada", "2024-06-10", "09:30", "10:30")
	if decision := TryReserve(otherRoom, existing); !decision.Accepted {
		t.Errorf("other-room candidate rejected, conflicts: %v", decision.Conflicts)
	}
}

func TestTryReserve_AcceptanceImpliesDisjointness(t *testing.T) {
	existing := existingSet(t)

	accepted := mustInterval(t, "Amarilla", "2024-06-10", "10:00", "11:00")
	accepted.ID = "res-new"
	if decision := TryReserve(accepted, existing); !decision.Accepted {
		t.Fatalf("setup: candidate should be accepted")
	}
	grown := append(append([]Interval{}, existing...), accepted)

	// A third candidate not touching the new reservation sees the same
	// conflict set before and after the insertion.
	third := mustInterval(t, "Amarilla", "2024-06-10", "09:15", "09:45")
	before := FindConflicts(third, existing)
	after := FindConflicts(third, grown)
	if len(before) != len(after) {
		t.Fatalf("insertion changed unrelated conflict set: %d vs %d", len(before), len(after))
	}

	// A third candidate overlapping the new reservation differs exactly by it.
	overlapsNew := mustInterval(t, "Amarilla", "2024-06-10", "10:30", "10:45")
	before = FindConflicts(overlapsNew, existing)
	after = FindConflicts(overlapsNew, grown)
	if len(after) != len(before)+1 {
		t.Fatalf("expected exactly one extra conflict, before %d after %d", len(before), len(after))
	}
	if after[len(after)-1].ID != "res-new" {
		t.Errorf("extra conflict should be the inserted reservation, got %s", after[len(after)-1].ID)
	}
}

func TestTryReserve_EmptyExisting(t *testing.T) {
	candidate := mustInterval(t, "Amarilla", "2024-06-10", "09:00", "10:00")
	decision := TryReserve(candidate, nil)
	if !decision.Accepted {
		t.Fatalf("candidate against empty set rejected")
	}
	if len(decision.Conflicts) != 0 {
		t.Errorf("expected no conflicts, got %v", decision.Conflicts)
	}
}
