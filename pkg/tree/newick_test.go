package tree

import "testing"

func TestNewickNested(t *testing.T) {
	root, _, _, _, _ := build()

	if got, want := root.Newick(false), "((a1,a2)a,b)root"; got != want {
		t.Errorf("Newick(false) = %q, want %q", got, want)
	}
	if got, want := root.Newick(true), "((a1:0.5,a2:0.25)a:1,b:2)root"; got != want {
		t.Errorf("Newick(true) = %q, want %q", got, want)
	}
}

func TestNewickZeroBranchLength(t *testing.T) {
	root := New()
	root.AddChild(NewNamed("x", 0))
	root.AddChild(NewNamed("y", 0.1))

	if got, want := root.Newick(true), "(x:1e-22,y:0.1)"; got != want {
		t.Errorf("Newick(true) = %q, want %q", got, want)
	}
}

func TestNewickCleansNames(t *testing.T) {
	root := NewNamed("Homo sapiens (human)", 0)
	root.AddChild(NewNamed("a,b", 1))

	if got, want := root.Newick(false), "(a_b)Homo_sapiens_human_"; got != want {
		t.Errorf("Newick(false) = %q, want %q", got, want)
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Homo_sapiens", "Homo_sapiens"},
		{"Homo sapiens", "Homo_sapiens"},
		{"a:b;c", "a_b_c"},
		{"x  (y)", "x_y_"},
		{"'quoted'", "_quoted_"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanName(tt.in); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
