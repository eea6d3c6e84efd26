package lineage

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateNodeID is returned by [Snapshot.AddNode] when the id is
	// already present.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateEdgeID is returned by [Snapshot.AddEdge] when an edge with
	// the same id was already added. Edge identity drives removal, so ids
	// must be unique.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrUnknownChild is returned by [Snapshot.AddEdge] when the child node
	// does not exist.
	ErrUnknownChild = errors.New("unknown child node")

	// ErrUnknownParent is returned by [Snapshot.AddEdge] when the parent node
	// does not exist.
	ErrUnknownParent = errors.New("unknown parent node")
)

// Node is a vertex of the source graph with its precomputed descendant set.
// A nil Descendants means the set was never computed, which the resolver
// treats as a data-integrity failure. A non-nil empty set is valid.
type Node struct {
	ID          int64
	Name        string // optional, diagnostics only
	Descendants Set
}

// Edge is a candidate child-of relationship. Rank is the edge's position in
// the candidate sequence; there is no rank field.
type Edge struct {
	ID     int64
	Child  int64
	Parent int64
}

// Snapshot holds the nodes and ranked candidate edges for one resolution run.
// The zero value is not usable; use NewSnapshot.
type Snapshot struct {
	nodes   map[int64]*Node
	edges   []Edge
	edgeIDs map[int64]struct{}
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		nodes:   make(map[int64]*Node),
		edgeIDs: make(map[int64]struct{}),
	}
}

// AddNode adds a node. Descendants are normalised to the sorted invariant if
// the caller passed them unsorted.
func (s *Snapshot) AddNode(n Node) error {
	if _, ok := s.nodes[n.ID]; ok {
		return ErrDuplicateNodeID
	}
	if n.Descendants != nil && !n.Descendants.IsSorted() {
		n.Descendants = NewSet(n.Descendants...)
	}
	s.nodes[n.ID] = &n
	return nil
}

// AddEdge appends a candidate edge. Edges are kept in insertion order, which
// is their rank order.
func (s *Snapshot) AddEdge(e Edge) error {
	if _, ok := s.nodes[e.Child]; !ok {
		return ErrUnknownChild
	}
	if _, ok := s.nodes[e.Parent]; !ok {
		return ErrUnknownParent
	}
	if _, ok := s.edgeIDs[e.ID]; ok {
		return ErrDuplicateEdgeID
	}
	s.edgeIDs[e.ID] = struct{}{}
	s.edges = append(s.edges, e)
	return nil
}

// Node returns the node with the given id.
func (s *Snapshot) Node(id int64) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by id.
func (s *Snapshot) Nodes() []*Node {
	out := make([]*Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b *Node) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Edges returns a copy of the candidate edges in rank order.
func (s *Snapshot) Edges() []Edge { return slices.Clone(s.edges) }

// NodeCount returns the number of nodes.
func (s *Snapshot) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of candidate edges.
func (s *Snapshot) EdgeCount() int { return len(s.edges) }

// Descendants returns the descendant set of the node with the given id.
// ok is false when the node is unknown or its set was never computed.
func (s *Snapshot) Descendants(nodeID int64) (Set, bool) {
	n, ok := s.nodes[nodeID]
	if !ok || n.Descendants == nil {
		return nil, false
	}
	return n.Descendants, true
}

// Label formats a node for diagnostics: 'name' (id=N).
func Label(n *Node) string {
	if n == nil {
		return "'' (id=?)"
	}
	return fmt.Sprintf("'%s' (id=%d)", n.Name, n.ID)
}

// EdgeLabel formats an edge with its endpoints for diagnostics.
func (s *Snapshot) EdgeLabel(e Edge) string {
	child, _ := s.Node(e.Child)
	parent, _ := s.Node(e.Parent)
	return fmt.Sprintf("[edge=%d : %s child of %s]", e.ID, Label(child), Label(parent))
}
