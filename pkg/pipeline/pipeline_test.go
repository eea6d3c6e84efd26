package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/letolabs/treemachine/pkg/cache"
	"github.com/letolabs/treemachine/pkg/errors"
	"github.com/letolabs/treemachine/pkg/lineage"
	"github.com/letolabs/treemachine/pkg/resolve"
	"github.com/letolabs/treemachine/pkg/source"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"newick", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"newick", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestFormatNames(t *testing.T) {
	got := strings.Join(FormatNames(), ",")
	if got != "dot,json,newick,pdf,png,svg" {
		t.Errorf("FormatNames() = %s", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatNewick {
		t.Errorf("default formats = %v", o.Formats)
	}
	if o.Logger == nil {
		t.Error("default logger should be set")
	}
}

// siblings returns candidates entering node 1 ("life"):
// A{11,12} accepted, B{11} nested in A, C{12,13} crossing A, D{13} accepted.
func siblings(t *testing.T) *lineage.Snapshot {
	t.Helper()
	s := lineage.NewSnapshot()
	for _, n := range []lineage.Node{
		{ID: 1, Name: "life", Descendants: lineage.NewSet(11, 12, 13)},
		{ID: 2, Name: "A", Descendants: lineage.NewSet(11, 12)},
		{ID: 3, Name: "B", Descendants: lineage.NewSet(11)},
		{ID: 4, Name: "C", Descendants: lineage.NewSet(12, 13)},
		{ID: 5, Name: "D", Descendants: lineage.NewSet(13)},
	} {
		if err := s.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for i, child := range []int64{2, 3, 4, 5} {
		if err := s.AddEdge(lineage.Edge{ID: int64(100 + i), Child: child, Parent: 1}); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	src := &source.SnapshotSource{Snapshot: siblings(t)}

	res, err := runner.Execute(context.Background(), src, Options{
		Formats: []string{FormatNewick, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.RunID == "" || len(res.InputHash) != 64 {
		t.Errorf("RunID = %q, InputHash = %q", res.RunID, res.InputHash)
	}
	if got := string(res.Artifacts[FormatNewick]); got != "(A,D)life;\n" {
		t.Errorf("newick = %q", got)
	}
	if !strings.Contains(string(res.Artifacts[FormatJSON]), `"newick": "(A,D)life"`) {
		t.Errorf("json artifact missing newick:\n%s", res.Artifacts[FormatJSON])
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph G {") {
		t.Errorf("dot artifact = %q", res.Artifacts[FormatDOT])
	}

	rep := res.Report
	if len(rep.Accepted) != 2 || rep.Accepted[0].ID != 100 || rep.Accepted[1].ID != 103 {
		t.Errorf("Accepted = %v", rep.Accepted)
	}
	if len(rep.Rejected) != 2 {
		t.Fatalf("Rejected = %v", rep.Rejected)
	}
	if rep.Rejected[0].Reason != resolve.CandidateSubsetOfAccepted || rep.Rejected[1].Reason != resolve.Incompatible {
		t.Errorf("reasons = %v, %v", rep.Rejected[0].Reason, rep.Rejected[1].Reason)
	}
	if res.Stats.NodeCount != 5 || res.Stats.EdgeCount != 4 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.Tree.TipCount() != 2 {
		t.Errorf("TipCount() = %d", res.Tree.TipCount())
	}
}

func TestExecuteUsesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	ctx := context.Background()

	first, err := runner.Execute(ctx, &source.SnapshotSource{Snapshot: siblings(t)}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ResolveHit {
		t.Error("first run should miss")
	}

	second, err := runner.Execute(ctx, &source.SnapshotSource{Snapshot: siblings(t)}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.ResolveHit {
		t.Error("second run should hit")
	}
	if second.InputHash != first.InputHash {
		t.Error("identical snapshots should hash identically")
	}
	if string(second.Artifacts[FormatNewick]) != string(first.Artifacts[FormatNewick]) {
		t.Errorf("cached run differs: %s vs %s", second.Artifacts[FormatNewick], first.Artifacts[FormatNewick])
	}
	if len(second.Report.Rejected) != len(first.Report.Rejected) {
		t.Error("cached report lost rejections")
	}

	third, err := runner.Execute(ctx, &source.SnapshotSource{Snapshot: siblings(t)}, Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.ResolveHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), &source.SnapshotSource{Snapshot: siblings(t)}, Options{Formats: []string{"gif"}})
	if err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestExecuteMissingDescendants(t *testing.T) {
	s := lineage.NewSnapshot()
	_ = s.AddNode(lineage.Node{ID: 1, Descendants: lineage.NewSet(1, 2)})
	_ = s.AddNode(lineage.Node{ID: 2, Descendants: lineage.NewSet(1)})
	_ = s.AddNode(lineage.Node{ID: 3}) // never computed
	_ = s.AddEdge(lineage.Edge{ID: 10, Child: 2, Parent: 1})
	_ = s.AddEdge(lineage.Edge{ID: 11, Child: 3, Parent: 1})

	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), &source.SnapshotSource{Snapshot: s}, Options{})
	if !errors.Is(err, errors.ErrCodeMissingDescendants) {
		t.Errorf("Execute() error = %v, want MISSING_DESCENDANTS", err)
	}
}

func TestExecuteBranchLengths(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), &source.SnapshotSource{Snapshot: siblings(t)}, Options{BranchLengths: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(res.Artifacts[FormatNewick]); got != "(A:1e-22,D:1e-22)life;\n" {
		t.Errorf("newick = %q", got)
	}
}
