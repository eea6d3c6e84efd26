package tree

import (
	"errors"
	"slices"

	tmerrors "github.com/letolabs/treemachine/pkg/errors"
)

// ErrChildIndexOutOfRange is returned by [Node.Child] for an index outside
// the child list.
var ErrChildIndexOutOfRange = errors.New("child index out of range")

// Node is a vertex of a rooted tree.
// The zero value is a usable unnamed root with no children.
type Node struct {
	name            string
	branchLength    float64
	distanceToTip   float64
	distanceFromTip float64
	parent          *Node
	children        []*Node
	assoc           []association
}

// New creates an unnamed root.
func New() *Node { return &Node{} }

// NewNamed creates a parentless node with a name and branch length.
func NewNamed(name string, branchLength float64) *Node {
	return &Node{name: name, branchLength: branchLength}
}

// NewChild creates a node whose parent pointer is set to parent. It is not
// added to parent's children; call parent.AddChild for that.
func NewChild(parent *Node) *Node { return &Node{parent: parent} }

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// SetName sets the node's name.
func (n *Node) SetName(s string) { n.name = s }

// BranchLength returns the length of the branch to the parent.
func (n *Node) BranchLength() float64 { return n.branchLength }

// SetBranchLength sets the length of the branch to the parent.
func (n *Node) SetBranchLength(bl float64) { n.branchLength = bl }

// DistanceToTip returns the stored distance to the nearest tip. It is not
// computed automatically.
func (n *Node) DistanceToTip() float64 { return n.distanceToTip }

// SetDistanceToTip stores the distance to the nearest tip.
func (n *Node) SetDistanceToTip(d float64) { n.distanceToTip = d }

// DistanceFromTip returns the stored distance from the tips. It is not
// computed automatically.
func (n *Node) DistanceFromTip() float64 { return n.distanceFromTip }

// SetDistanceFromTip stores the distance from the tips.
func (n *Node) SetDistanceFromTip(d float64) { n.distanceFromTip = d }

// Parent returns the parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// SetParent overwrites the parent pointer without touching either child list.
func (n *Node) SetParent(p *Node) { n.parent = p }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// HasParent reports whether the node has a parent.
func (n *Node) HasParent() bool { return n.parent != nil }

// IsExternal reports whether the node is a tip.
func (n *Node) IsExternal() bool { return len(n.children) == 0 }

// IsInternal reports whether the node has at least one child.
func (n *Node) IsInternal() bool { return len(n.children) > 0 }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// Children returns a copy of the child list in stored order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// HasChild reports whether c is a direct child of n.
func (n *Node) HasChild(c *Node) bool { return slices.Contains(n.children, c) }

// Child returns the i-th child.
func (n *Node) Child(i int) (*Node, error) {
	if i < 0 || i >= len(n.children) {
		return nil, tmerrors.Wrap(tmerrors.ErrCodeOutOfRange, ErrChildIndexOutOfRange,
			"index %d with %d children", i, len(n.children))
	}
	return n.children[i], nil
}

// AddChild appends c and points its parent at n. It reports false, leaving
// the tree unchanged, when c is nil or already a child of n.
func (n *Node) AddChild(c *Node) bool {
	if c == nil || n.HasChild(c) {
		return false
	}
	n.children = append(n.children, c)
	c.parent = n
	return true
}

// RemoveChild detaches c from n and clears its parent pointer. It reports
// false, leaving the tree unchanged, when c is not a child of n.
func (n *Node) RemoveChild(c *Node) bool {
	i := slices.Index(n.children, c)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	if c.parent == n {
		c.parent = nil
	}
	return true
}

// Tips returns every tip in the subtree rooted at n, including n itself if
// it has no children.
func (n *Node) Tips() []*Node {
	var tips []*Node
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, cur.children...)
		if cur.IsExternal() {
			tips = append(tips, cur)
		}
	}
	return tips
}

// TipCount returns the number of tips in the subtree rooted at n.
func (n *Node) TipCount() int {
	count := 0
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, cur.children...)
		if cur.IsExternal() {
			count++
		}
	}
	return count
}

// MaxDepth returns the largest number of edges between n and any tip below
// it, found by walking parent pointers up from each tip.
func (n *Node) MaxDepth() int {
	maxDepth := 0
	for _, tip := range n.Tips() {
		depth := 0
		for cur := tip; cur != n && cur != nil; cur = cur.parent {
			depth++
		}
		maxDepth = max(maxDepth, depth)
	}
	return maxDepth
}
