package io

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/letolabs/treemachine/pkg/errors"
	"github.com/letolabs/treemachine/pkg/lineage"
)

// ReadJSON decodes a candidate document from r into a snapshot.
//
// ReadJSON returns an INVALID_INPUT error if the JSON is malformed, a node
// id is missing or repeated, an edge id is repeated, or an edge references an
// unknown node. The error names the offending node or edge.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*lineage.Snapshot, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
	}

	s := lineage.NewSnapshot()
	for i, n := range data.Nodes {
		if n.ID == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %d: missing id", i)
		}
		nd := lineage.Node{ID: *n.ID, Name: n.Name}
		if n.MRCA != nil {
			nd.Descendants = lineage.NewSet(n.MRCA...)
		}
		if err := s.AddNode(nd); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", *n.ID)
		}
	}
	for _, e := range data.Edges {
		if err := s.AddEdge(lineage.Edge{ID: e.ID, Child: e.Child, Parent: e.Parent}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %d (%d->%d)", e.ID, e.Child, e.Parent)
		}
	}
	return s, nil
}

// ImportJSON reads the candidate document at path.
// A missing file is reported as FILE_NOT_FOUND.
func ImportJSON(path string) (*lineage.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
