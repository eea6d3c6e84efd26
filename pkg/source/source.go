package source

import (
	"context"
	"time"

	"github.com/letolabs/treemachine/pkg/io"
	"github.com/letolabs/treemachine/pkg/lineage"
	"github.com/letolabs/treemachine/pkg/observability"
)

// Source produces the snapshot a resolution runs over.
type Source interface {
	// Name identifies the source in logs and observability events.
	Name() string
	Load(ctx context.Context) (*lineage.Snapshot, error)
	Close(ctx context.Context) error
}

// FileSource reads a JSON candidate document from disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a source for the document at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name implements Source.
func (s *FileSource) Name() string { return "file" }

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*lineage.Snapshot, error) {
	return observeLoad(ctx, s.Name(), func() (*lineage.Snapshot, error) {
		return io.ImportJSON(s.Path)
	})
}

// Close implements Source.
func (s *FileSource) Close(context.Context) error { return nil }

// SnapshotSource serves an already-built snapshot, e.g. one decoded from an
// HTTP request body.
type SnapshotSource struct {
	Snapshot *lineage.Snapshot
}

// Name implements Source.
func (s *SnapshotSource) Name() string { return "inline" }

// Load implements Source.
func (s *SnapshotSource) Load(ctx context.Context) (*lineage.Snapshot, error) {
	return observeLoad(ctx, s.Name(), func() (*lineage.Snapshot, error) {
		return s.Snapshot, nil
	})
}

// Close implements Source.
func (s *SnapshotSource) Close(context.Context) error { return nil }

func observeLoad(ctx context.Context, name string, load func() (*lineage.Snapshot, error)) (*lineage.Snapshot, error) {
	start := time.Now()
	observability.Source().OnLoadStart(ctx, name)
	snap, err := load()
	var nodes, edges int
	if snap != nil {
		nodes, edges = snap.NodeCount(), snap.EdgeCount()
	}
	observability.Source().OnLoadComplete(ctx, name, nodes, edges, time.Since(start), err)
	return snap, err
}

var (
	_ Source = (*FileSource)(nil)
	_ Source = (*SnapshotSource)(nil)
)
