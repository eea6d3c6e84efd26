package synth

import (
	"testing"

	"github.com/letolabs/treemachine/pkg/errors"
	"github.com/letolabs/treemachine/pkg/lineage"
	"github.com/letolabs/treemachine/pkg/tree"
)

func snapshot(t *testing.T, names map[int64]string, sets map[int64]lineage.Set) *lineage.Snapshot {
	t.Helper()
	s := lineage.NewSnapshot()
	for id := int64(1); id <= int64(len(names)); id++ {
		set := sets[id]
		if set == nil {
			set = lineage.NewSet(id)
		}
		if err := s.AddNode(lineage.Node{ID: id, Name: names[id], Descendants: set}); err != nil {
			t.Fatalf("AddNode(%d): %v", id, err)
		}
	}
	return s
}

var fourNames = map[int64]string{1: "r", 2: "a", 3: "b", 4: "c"}

func TestBuildSingleRoot(t *testing.T) {
	snap := snapshot(t, fourNames, map[int64]lineage.Set{
		1: lineage.NewSet(3, 4),
		2: lineage.NewSet(4),
	})
	accepted := []lineage.Edge{
		{ID: 10, Child: 2, Parent: 1},
		{ID: 11, Child: 3, Parent: 1},
		{ID: 12, Child: 4, Parent: 2},
	}

	root, err := Build(snap, accepted)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got, want := root.Newick(false), "((c)a,b)r"; got != want {
		t.Errorf("Newick() = %q, want %q", got, want)
	}
	if id, _ := tree.AssociationAs[int64](root, KeyNodeID); id != 1 {
		t.Errorf("root nodeid = %d, want 1", id)
	}
	if _, ok := root.Association(KeyEdgeID); ok {
		t.Error("root should have no edgeid")
	}
	if n, _ := tree.AssociationAs[int](root, KeyNDescendants); n != 2 {
		t.Errorf("root ndescendants = %d, want 2", n)
	}

	a, _ := root.Child(0)
	if id, _ := tree.AssociationAs[int64](a, KeyEdgeID); id != 10 {
		t.Errorf("a edgeid = %d, want 10", id)
	}
	if d, _ := tree.AssociationAs[int](root, KeyNodeDepth); d != 2 {
		t.Errorf("root nodedepth = %d, want 2", d)
	}
	if d, _ := tree.AssociationAs[int](a, KeyNodeDepth); d != 1 {
		t.Errorf("a nodedepth = %d, want 1", d)
	}
	if a.DistanceFromTip() != 1 {
		t.Errorf("a DistanceFromTip = %v, want 1", a.DistanceFromTip())
	}
}

func TestBuildJoinsRootsUnderSyntheticRoot(t *testing.T) {
	snap := snapshot(t, fourNames, nil)
	accepted := []lineage.Edge{
		{ID: 10, Child: 2, Parent: 1},
		{ID: 11, Child: 4, Parent: 3},
	}

	root, err := Build(snap, accepted)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got, want := root.Newick(false), "((a)r,(c)b)"; got != want {
		t.Errorf("Newick() = %q, want %q", got, want)
	}
	if _, ok := root.Association(KeyNodeID); ok {
		t.Error("synthetic root should have no nodeid")
	}
	if root.TipCount() != 2 {
		t.Errorf("TipCount() = %d, want 2", root.TipCount())
	}
}

func TestBuildEmpty(t *testing.T) {
	root, err := Build(lineage.NewSnapshot(), nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if root.ChildCount() != 0 || root.Name() != "" {
		t.Errorf("expected empty unnamed root, got %q", root.Newick(false))
	}
}

func TestBuildRepeatedParentIsNoop(t *testing.T) {
	snap := snapshot(t, fourNames, nil)
	root, err := Build(snap, []lineage.Edge{
		{ID: 10, Child: 2, Parent: 1},
		{ID: 11, Child: 2, Parent: 1},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if root.ChildCount() != 1 {
		t.Errorf("ChildCount() = %d, want 1", root.ChildCount())
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		edges []lineage.Edge
	}{
		{"multiple parents", []lineage.Edge{
			{ID: 10, Child: 2, Parent: 1},
			{ID: 11, Child: 2, Parent: 3},
		}},
		{"two-node cycle", []lineage.Edge{
			{ID: 10, Child: 1, Parent: 2},
			{ID: 11, Child: 2, Parent: 1},
		}},
		{"cycle beside a rooted component", []lineage.Edge{
			{ID: 10, Child: 2, Parent: 1},
			{ID: 11, Child: 3, Parent: 4},
			{ID: 12, Child: 4, Parent: 3},
		}},
		{"self loop", []lineage.Edge{{ID: 10, Child: 2, Parent: 2}}},
		{"unknown node", []lineage.Edge{{ID: 10, Child: 99, Parent: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshot(t, fourNames, nil)
			_, err := Build(snap, tt.edges)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Build() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}
