package pedigree

// AssignSpans walks the built tree and assigns every node a contiguous span
// sized by its subtree's leaf count. Leaves, whether cut off by the
// generation bound or by the data running out, occupy exactly one unit, in
// traversal order with the sire subtree before the dam subtree. An internal
// node's span is the union of its children's spans: start from the sire side,
// end from the dam side, falling back to the single present child when one
// side is absent.
//
// AssignSpans returns the total number of leaf units, which is the row count
// for a grid layout and the sector divisor for a radial one. It mutates only
// the SpanStart/SpanEnd fields and is the single mutation a built tree ever
// sees. Calling it on a nil root returns 0.
func AssignSpans(root *Node) int {
	if root == nil {
		return 0
	}
	return assign(root, 0)
}

func assign(n *Node, next int) int {
	if n.IsLeaf() {
		n.SpanStart = next
		n.SpanEnd = next
		return next + 1
	}

	if n.Sire != nil {
		next = assign(n.Sire, next)
	}
	if n.Dam != nil {
		next = assign(n.Dam, next)
	}

	if n.Sire != nil {
		n.SpanStart = n.Sire.SpanStart
	} else {
		n.SpanStart = n.Dam.SpanStart
	}
	if n.Dam != nil {
		n.SpanEnd = n.Dam.SpanEnd
	} else {
		n.SpanEnd = n.Sire.SpanEnd
	}
	return next
}

// Cell addresses one grid position: the top row of a node's span and its
// generation column. Together with the span length this is everything a
// rowspan-merging table renderer needs.
type Cell struct {
	Row        int
	Generation int
}

// CollectCells indexes every node of a span-assigned tree by its top-left
// grid cell. Each node occupies exactly one cell key, because sibling spans
// never overlap and generations are distinct columns.
func CollectCells(root *Node) map[Cell]*Node {
	cells := make(map[Cell]*Node)
	root.Walk(func(n *Node) {
		cells[Cell{Row: n.SpanStart, Generation: n.Generation}] = n
	})
	return cells
}
