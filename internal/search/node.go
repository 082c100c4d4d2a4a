package search

// node is one point in the decode graph: a text reached by applying
// transformID to the parent's text. The root has no parent and depth zero.
type node struct {
	text        string
	depth       int
	transformID string
	parent      *node
	priority    float64
}

// path reconstructs the transform chain from the root to this node, in
// application order. The root yields an empty, non-nil slice.
func (n *node) path() []string {
	ids := make([]string, n.depth)
	for cur := n; cur.parent != nil; cur = cur.parent {
		ids[cur.depth-1] = cur.transformID
	}
	return ids
}
