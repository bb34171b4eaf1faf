package service

// ReconcilePlan is the minimal set of changes that turns current into desired
type ReconcilePlan[C any, D any] struct {
	ToDelete  []C
	ToCreate  []D
	Unchanged []C
}

// Empty reports whether the plan changes nothing
func (p ReconcilePlan[C, D]) Empty() bool {
	return len(p.ToDelete) == 0 && len(p.ToCreate) == 0
}

// Reconcile diffs a stored child collection against the desired one by natural key.
// Matched items are left as stored. Among desired items sharing a key the first wins.
func Reconcile[C any, D any](current []C, desired []D, currentKey func(C) string, desiredKey func(D) string) ReconcilePlan[C, D] {
	wanted := make(map[string]struct{}, len(desired))
	for _, d := range desired {
		wanted[desiredKey(d)] = struct{}{}
	}

	plan := ReconcilePlan[C, D]{}
	stored := make(map[string]struct{}, len(current))
	for _, c := range current {
		key := currentKey(c)
		stored[key] = struct{}{}
		if _, ok := wanted[key]; ok {
			plan.Unchanged = append(plan.Unchanged, c)
		} else {
			plan.ToDelete = append(plan.ToDelete, c)
		}
	}

	for _, d := range desired {
		key := desiredKey(d)
		if _, ok := stored[key]; ok {
			continue
		}
		stored[key] = struct{}{}
		plan.ToCreate = append(plan.ToCreate, d)
	}

	return plan
}
