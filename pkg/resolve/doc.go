// Package resolve selects a mutually compatible subset of ranked candidate
// edges, the step that turns many conflicting input hierarchies into the
// edge set of one synthesized tree.
//
// # Overview
//
// Each candidate edge is fingerprinted by its child's descendant set. Two
// edges are compared with [Classify], which returns one of four relations:
//
//   - [NoConflict]: the sets are disjoint
//   - [AcceptedSubsetOfCandidate]: the candidate contains every leaf of the
//     accepted edge (checked first, so equal sets land here)
//   - [CandidateSubsetOfAccepted]: the accepted edge contains the candidate
//   - [Incompatible]: the sets overlap and neither contains the other
//
// # Rank Resolution
//
// [RankResolver] walks candidates in the order supplied, highest rank first,
// and compares each against the accepted list in acceptance order. A
// candidate is rejected on the first incompatible or enclosing accepted
// edge. Accepted edges nested inside a candidate are marked and removed once
// all candidates are processed, even when the marking candidate was itself
// rejected later in its scan. That last behaviour is observable and kept
// as-is; see the tests for a pinned example.
//
//	r := resolve.NewRankResolver(resolve.WithLogger(logger))
//	accepted, err := r.Resolve(ctx, snapshot, snapshot.Edges())
//
// The only error is a missing descendant set, which is a data-integrity
// failure and is never retried.
//
// # Concurrency
//
// Resolution is synchronous. A RankResolver holds no per-run state, so one
// value may be shared between goroutines as long as each call gets its own
// candidate slice and an unmutated source.
package resolve
