package store

// Plan is the set of mask mutations that converge a masking directory to
// shadow exactly the store paths the whitelist does not require.
type Plan struct {
	// Unmask holds masked paths the whitelist now requires; their
	// markers must be removed.
	Unmask PathSet
	// Stale holds markers whose path is gone from the store entirely.
	Stale PathSet
	// Mask holds store paths that must gain a marker.
	Mask PathSet
}

// Empty reports whether the plan carries no mutations.
func (p Plan) Empty() bool {
	return len(p.Unmask) == 0 && len(p.Stale) == 0 && len(p.Mask) == 0
}

// Reconcile computes the mutations that make the masked set converge to
// present \ needed. The three output sets are pairwise disjoint and the
// function is idempotent: reconciling the converged state again yields
// an empty plan. Pure, no filesystem access.
func Reconcile(present, needed, masked PathSet) Plan {
	plan := Plan{
		Unmask: PathSet{},
		Stale:  PathSet{},
		Mask:   PathSet{},
	}
	for id := range masked {
		// A marker whose path left the store is stale even if the
		// path is also wanted; either way it is removed exactly once.
		switch {
		case !present.Has(id):
			plan.Stale.Add(id)
		case needed.Has(id):
			plan.Unmask.Add(id)
		}
	}
	for id := range present {
		if !masked.Has(id) && !needed.Has(id) {
			plan.Mask.Add(id)
		}
	}
	return plan
}
