package pedigree

// Node is one position in the expanded ancestry tree. A node owns its two
// child nodes exclusively and holds no back-reference to its parent, so the
// structure is acyclic by construction even when the underlying record graph
// is not.
//
// The same identifier can legitimately appear in several positions (that is
// exactly what makes inbreeding measurable), so the builder never
// deduplicates: every occurrence is a distinct Node.
//
// Nodes are created once by [Build] and mutated exactly once by
// [AssignSpans], which fills the Span fields. They are never shared between
// trees.
type Node struct {
	Individual Individual
	Generation int // 0 = subject, increasing toward ancestors

	Sire *Node // paternal subtree, nil at the generation bound
	Dam  *Node // maternal subtree, nil at the generation bound

	// Span is the contiguous layout range assigned by [AssignSpans], in leaf
	// units. For a flat grid these are row indices; the wheel renderer
	// reinterprets them as fractions of the full circle.
	SpanStart int
	SpanEnd   int
}

// SpanLen returns the number of leaf units the node covers.
// It is zero until [AssignSpans] has run.
func (n *Node) SpanLen() int {
	if n == nil {
		return 0
	}
	return n.SpanEnd - n.SpanStart + 1
}

// IsLeaf reports whether the node has no children, either because the
// generation bound cut it off or because the data ran out.
func (n *Node) IsLeaf() bool { return n.Sire == nil && n.Dam == nil }

// Walk visits the node and its subtree in pre-order, sire side before dam
// side. The traversal order matches span assignment order, so visiting rows
// top to bottom.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	n.Sire.Walk(visit)
	n.Dam.Walk(visit)
}

// Build expands the individual identified by id into a binary ancestry tree
// with the given number of generations: the subject occupies generation 0 and
// expansion stops at generation generations-1, regardless of whether further
// ancestry exists in the data.
//
// A parent identifier with no matching record becomes a placeholder node, so
// every non-terminal node has exactly two children and the layout keeps its
// binary shape. If the subject itself has no record the root carries an
// [UnknownRoot] individual instead, visible in output rather than blanked.
//
// Build returns [ErrEmptyID] if id is empty and [ErrInvalidGenerations] if
// generations < 1. No cycle guard is needed here: depth is bounded by the
// generation count, and a bounded walk over cyclic records simply repeats
// ancestors, same as legitimate inbreeding does.
func Build(store Store, id string, generations int) (*Node, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if generations < 1 {
		return nil, ErrInvalidGenerations
	}

	root, ok := store.Lookup(id)
	if !ok {
		root = UnknownRoot(id)
	}
	return expand(store, root, 0, generations), nil
}

func expand(store Store, rec Individual, depth, generations int) *Node {
	n := &Node{Individual: rec, Generation: depth}
	if depth >= generations-1 {
		return n
	}

	n.Sire = expand(store, parentRecord(store, rec.SireID), depth+1, generations)
	n.Dam = expand(store, parentRecord(store, rec.DamID), depth+1, generations)
	return n
}

func parentRecord(store Store, id string) Individual {
	if id == "" {
		return Placeholder()
	}
	rec, ok := store.Lookup(id)
	if !ok {
		return Placeholder()
	}
	return rec
}
