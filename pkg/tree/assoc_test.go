package tree

import (
	"slices"
	"testing"
)

func TestAssociationLastWriteWins(t *testing.T) {
	n := New()
	n.SetAssociation("support", 3)
	n.SetAssociation("label", "x")
	n.SetAssociation("support", 5)

	v, ok := n.Association("support")
	if !ok || v != 5 {
		t.Errorf("Association(support) = %v, %v; want 5", v, ok)
	}
	if got := n.AssociationKeys(); !slices.Equal(got, []string{"support", "label"}) {
		t.Errorf("AssociationKeys() = %v", got)
	}
}

func TestAssociationMissing(t *testing.T) {
	n := New()
	if v, ok := n.Association("nope"); ok || v != nil {
		t.Errorf("Association(nope) = %v, %v", v, ok)
	}
}

func TestAssociationAs(t *testing.T) {
	n := New()
	n.SetAssociation("nodeid", int64(42))
	n.SetAssociation("sources", []string{"tree1", "tree2"})

	if id, ok := AssociationAs[int64](n, "nodeid"); !ok || id != 42 {
		t.Errorf("AssociationAs[int64] = %v, %v", id, ok)
	}
	if _, ok := AssociationAs[int](n, "nodeid"); ok {
		t.Error("AssociationAs with wrong type should fail")
	}
	if src, ok := AssociationAs[[]string](n, "sources"); !ok || len(src) != 2 {
		t.Errorf("AssociationAs[[]string] = %v, %v", src, ok)
	}
	if _, ok := AssociationAs[string](n, "absent"); ok {
		t.Error("AssociationAs on absent key should fail")
	}
}

func TestDeleteAssociation(t *testing.T) {
	n := New()
	n.SetAssociation("a", 1)
	n.SetAssociation("b", 2)

	if !n.DeleteAssociation("a") {
		t.Error("DeleteAssociation(a) = false")
	}
	if n.DeleteAssociation("a") {
		t.Error("second DeleteAssociation(a) = true")
	}
	if got := n.AssociationKeys(); !slices.Equal(got, []string{"b"}) {
		t.Errorf("AssociationKeys() = %v", got)
	}
}
