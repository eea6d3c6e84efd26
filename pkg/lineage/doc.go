// Package lineage models the input of a synthesis run: nodes that own a
// precomputed set of descendant leaf identifiers, and candidate child-of
// edges between those nodes.
//
// # Descendant Sets
//
// A [Set] is the fingerprint of a node: the identifiers of every leaf
// reachable below it (the "mrca" set in the source graph). Sets are kept
// sorted and de-duplicated so that [Set.ContainsAll] and [Set.Overlaps] run
// as a single linear merge, which matters when sets hold tens of thousands
// of leaves.
//
//	a := lineage.NewSet(3, 1, 2)
//	b := lineage.NewSet(2, 3)
//	a.ContainsAll(b) // true
//
// # Edges and Rank
//
// An [Edge] links a child node to a parent node. Edges carry no rank field:
// rank is implied by position in the candidate sequence, earlier meaning
// higher priority. An edge's effective descendant set is its child's set.
//
// # Snapshots
//
// A [Snapshot] is the immutable view a source hands to the resolver for one
// run: nodes by id plus the candidate edges in caller order. Snapshots
// implement the descendant lookup used by the resolve package.
//
// Snapshots are not safe for concurrent mutation. Once built they are only
// read, and concurrent readers are fine.
package lineage
