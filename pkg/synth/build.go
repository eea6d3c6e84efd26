package synth

import (
	"fmt"

	"github.com/letolabs/treemachine/pkg/errors"
	"github.com/letolabs/treemachine/pkg/lineage"
	"github.com/letolabs/treemachine/pkg/tree"
)

// Association keys set by Build.
const (
	KeyNodeID       = "nodeid"
	KeyEdgeID       = "edgeid"
	KeyNDescendants = "ndescendants"
	KeyNodeDepth    = "nodedepth"
)

// Build attaches the accepted edges into a tree.
//
// It fails with INVALID_INPUT when an edge references a node missing from
// snap, when one child is given two different parents, or when the edges
// form a cycle. An empty edge list yields an empty unnamed root.
func Build(snap *lineage.Snapshot, accepted []lineage.Edge) (*tree.Node, error) {
	b := &builder{
		snap:   snap,
		nodes:  make(map[int64]*tree.Node),
		parent: make(map[int64]int64),
	}
	for _, e := range accepted {
		if err := b.attach(e); err != nil {
			return nil, err
		}
	}

	roots := b.roots()
	if len(roots) == 0 && len(b.order) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "accepted edges form a cycle")
	}

	var root *tree.Node
	if len(roots) == 1 {
		root = roots[0]
	} else {
		root = tree.New()
		for _, r := range roots {
			root.AddChild(r)
		}
	}

	if reached := len(root.Descendants(tree.SelfFirst)); reached < len(b.nodes) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"accepted edges form a cycle: %d of %d nodes unreachable from a root", len(b.nodes)-reached, len(b.nodes))
	}

	annotateDepth(root)
	return root, nil
}

type builder struct {
	snap   *lineage.Snapshot
	nodes  map[int64]*tree.Node
	order  []int64 // node ids in first-seen order
	parent map[int64]int64
}

func (b *builder) attach(e lineage.Edge) error {
	if prev, ok := b.parent[e.Child]; ok {
		if prev == e.Parent {
			return nil
		}
		return errors.New(errors.ErrCodeInvalidInput,
			"edge %d gives node %d a second parent %d (already under %d)", e.ID, e.Child, e.Parent, prev)
	}
	if e.Child == e.Parent {
		return errors.New(errors.ErrCodeInvalidInput, "edge %d is a self-loop on node %d", e.ID, e.Child)
	}

	p, err := b.node(e.Parent)
	if err != nil {
		return fmt.Errorf("edge %d: %w", e.ID, err)
	}
	c, err := b.node(e.Child)
	if err != nil {
		return fmt.Errorf("edge %d: %w", e.ID, err)
	}

	b.parent[e.Child] = e.Parent
	c.SetAssociation(KeyEdgeID, e.ID)
	p.AddChild(c)
	return nil
}

func (b *builder) node(id int64) (*tree.Node, error) {
	if n, ok := b.nodes[id]; ok {
		return n, nil
	}
	src, ok := b.snap.Node(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "node %d not in snapshot", id)
	}
	n := tree.NewNamed(src.Name, 0)
	n.SetAssociation(KeyNodeID, src.ID)
	n.SetAssociation(KeyNDescendants, src.Descendants.Len())
	b.nodes[id] = n
	b.order = append(b.order, id)
	return n, nil
}

func (b *builder) roots() []*tree.Node {
	var roots []*tree.Node
	for _, id := range b.order {
		if _, isChild := b.parent[id]; !isChild {
			roots = append(roots, b.nodes[id])
		}
	}
	return roots
}

func annotateDepth(root *tree.Node) {
	root.Walk(tree.SelfFirst, func(n *tree.Node) {
		d := n.MaxDepth()
		n.SetAssociation(KeyNodeDepth, d)
		n.SetDistanceFromTip(float64(d))
	})
}
