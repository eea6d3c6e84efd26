package tree

// Order selects how a traversal emits nodes relative to their children.
type Order int

const (
	// ChildrenFirst emits a node only after all of its children.
	ChildrenFirst Order = iota
	// SelfFirst emits a node before visiting its children.
	SelfFirst
)

// String returns the order's name.
func (o Order) String() string {
	if o == SelfFirst {
		return "self-first"
	}
	return "children-first"
}

// Descendants returns n and every node below it in the given order.
// Children are visited in stored order.
func (n *Node) Descendants(order Order) []*Node {
	var out []*Node
	n.Walk(order, func(d *Node) { out = append(out, d) })
	return out
}

// DescendantLeaves returns the tips below n (n itself if it is a tip) in the
// given order.
func (n *Node) DescendantLeaves(order Order) []*Node {
	var out []*Node
	n.Walk(order, func(d *Node) {
		if d.IsExternal() {
			out = append(out, d)
		}
	})
	return out
}

// Walk calls fn for n and every node below it in the given order.
func (n *Node) Walk(order Order, fn func(*Node)) {
	if order == SelfFirst {
		fn(n)
	}
	for _, c := range n.children {
		c.Walk(order, fn)
	}
	if order == ChildrenFirst {
		fn(n)
	}
}
