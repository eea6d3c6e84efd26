package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/letolabs/treemachine/pkg/lineage"
)

type document struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID   *int64  `json:"id"`
	Name string  `json:"name,omitempty"`
	MRCA []int64 `json:"mrca"`
}

type edge struct {
	ID     int64 `json:"id"`
	Child  int64 `json:"child"`
	Parent int64 `json:"parent"`
}

func toDocument(s *lineage.Snapshot) document {
	nodes := s.Nodes()
	edges := s.Edges()
	out := document{
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = node{ID: &n.ID, Name: n.Name, MRCA: n.Descendants}
	}
	for i, e := range edges {
		out.Edges[i] = edge{ID: e.ID, Child: e.Child, Parent: e.Parent}
	}
	return out
}

// WriteJSON writes s to w in the input format, indented.
// Nodes whose set was never computed are written with "mrca": null so the
// document re-imports identically.
func WriteJSON(s *lineage.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes s to a JSON file at path.
func ExportJSON(s *lineage.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}

// MarshalSnapshot returns the compact canonical encoding of s. Two snapshots
// with the same nodes, sets and ranked edges encode to the same bytes
// regardless of the order nodes were added in.
func MarshalSnapshot(s *lineage.Snapshot) ([]byte, error) {
	data, err := json.Marshal(toDocument(s))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}
