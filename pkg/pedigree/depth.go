package pedigree

// MaxDepth returns the maximum number of ancestor generations reachable from
// id before the records run out. An individual with no record, or whose sire
// and dam are both unrecorded, has depth 0.
//
// The walk memoizes per-identifier depths across sibling calls and keeps a
// per-path visiting set: an identifier that recurs on its own ancestry path
// contributes depth 0 from that point, which bounds the recursion on cyclic
// data. This is a safety valve, not cycle detection; the rest of the graph
// is still traversed normally.
func MaxDepth(store Store, id string) int {
	if id == "" {
		return 0
	}
	w := depthWalker{
		store:    store,
		memo:     make(map[string]int),
		visiting: make(map[string]struct{}),
	}
	return w.depth(id)
}

// ClampGenerations limits a requested generation count to what the data for
// id actually supports: max(0, min(MaxDepth, requested)). Callers use this to
// avoid building columns of nothing but placeholders.
func ClampGenerations(store Store, id string, requested int) int {
	maxDepth := MaxDepth(store, id)
	if requested > maxDepth {
		requested = maxDepth
	}
	if requested < 0 {
		requested = 0
	}
	return requested
}

// depthWalker carries the traversal state for one MaxDepth call. The state is
// never shared across calls, so independent analyses cannot interfere.
type depthWalker struct {
	store    Store
	memo     map[string]int
	visiting map[string]struct{}
}

func (w *depthWalker) depth(id string) int {
	if d, ok := w.memo[id]; ok {
		return d
	}
	if _, onPath := w.visiting[id]; onPath {
		return 0 // cyclic parentage: treat the repeated link as absent
	}
	w.visiting[id] = struct{}{}
	defer delete(w.visiting, id)

	rec, ok := w.store.Lookup(id)
	if !ok {
		w.memo[id] = 0
		return 0
	}

	d := 0
	if rec.SireID != "" {
		if s := 1 + w.depth(rec.SireID); s > d {
			d = s
		}
	}
	if rec.DamID != "" {
		if s := 1 + w.depth(rec.DamID); s > d {
			d = s
		}
	}
	w.memo[id] = d
	return d
}
