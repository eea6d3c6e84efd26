// Package io reads and writes the JSON documents treemachine exchanges with
// the outside world.
//
// # Input Format
//
// A candidate document lists nodes with their precomputed descendant sets
// and the candidate child-of edges in rank order, best first:
//
//	{
//	  "nodes": [
//	    {"id": 1, "name": "Mammalia", "mrca": [11, 12, 13]},
//	    {"id": 2, "name": "Primates", "mrca": [11, 12]},
//	    {"id": 11, "name": "Homo sapiens", "mrca": [11]}
//	  ],
//	  "edges": [
//	    {"id": 100, "child": 2, "parent": 1},
//	    {"id": 101, "child": 11, "parent": 2}
//	  ]
//	}
//
// Node ids must be present and unique. "name" is optional. "mrca" holds
// the leaf ids below the node; an absent or null "mrca" means the set was
// never computed, which the resolver reports as MISSING_DESCENDANTS. An empty
// array is a valid empty set.
//
// Edge ids must be unique, and both endpoints must be listed in "nodes".
// Array order of "edges" is the rank order.
//
// Use [ReadJSON] for any io.Reader or [ImportJSON] for a file path. Both
// return errors coded INVALID_INPUT for malformed documents.
//
// # Output
//
// [WriteJSON] and [ExportJSON] write a snapshot back in the input format.
// [MarshalSnapshot] produces the compact canonical form (nodes sorted by id,
// edges in rank order) that callers hash to derive cache keys.
//
// [WriteResult] writes a resolution [Result]: accepted edges, rejected
// candidates with the reason and offending edge, removed edges, and
// optionally the Newick rendering of the built tree. [ReadResult] decodes it.
package io
