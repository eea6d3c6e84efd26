package nodelink

import (
	"strings"
	"testing"

	"github.com/letolabs/treemachine/pkg/tree"
)

func sampleTree() *tree.Node {
	root := tree.NewNamed("Hominini", 0)
	root.SetAssociation("nodeid", int64(3))
	homo := tree.NewNamed("Homo", 1.5)
	homo.SetAssociation("nodeid", int64(1))
	root.AddChild(homo)
	root.AddChild(tree.NewNamed("Pan", 2))
	return root
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{})

	for _, want := range []string{
		"digraph G {",
		`n0 [label="Hominini"];`,
		`n1 [label="Homo"];`,
		`n2 [label="Pan"];`,
		"n0 -> n1;",
		"n0 -> n2;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT should end with closing brace")
	}
}

func TestToDOTBranchLengths(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{BranchLengths: true})
	if !strings.Contains(dot, `n0 -> n1 [label="1.5"];`) {
		t.Errorf("missing branch length label:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{Detailed: true})
	if !strings.Contains(dot, `label="Homo\nnodeid: 1"`) {
		t.Errorf("detailed label missing associations:\n%s", dot)
	}
}

func TestToDOTSyntheticRoot(t *testing.T) {
	root := tree.New()
	root.AddChild(tree.NewNamed("a", 0))
	root.AddChild(tree.NewNamed("b", 0))

	dot := ToDOT(root, Options{})
	if !strings.Contains(dot, `n0 [label="", style="rounded,filled,dashed"`) {
		t.Errorf("synthetic root should be dashed:\n%s", dot)
	}
}

func TestToDOTUnnamedNodeUsesID(t *testing.T) {
	n := tree.New()
	n.SetAssociation("nodeid", int64(42))
	if got := fmtLabel(n, false); got != "#42" {
		t.Errorf("fmtLabel() = %q, want #42", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s, want %s", out, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Error("svg without viewBox should be unchanged")
	}
}
