// Package pkg provides the libraries behind treemachine, which builds a tree
// from ranked, possibly conflicting parent-child candidates.
//
// # Overview
//
// Each candidate edge proposes that one node is the child of another. Nodes
// carry their descendant sets: the sorted ids of the leaves beneath them.
// Candidates arrive in rank order, and a candidate is accepted only if its
// descendant set nests within or beside every set accepted before it.
//
// # Architecture
//
//	JSON document / Neo4j graph
//	         ↓
//	    [source] package (load a lineage.Snapshot)
//	         ↓
//	    [resolve] package (rank-ordered conflict resolution)
//	         ↓
//	    [synth] package (attach accepted edges into a tree.Node)
//	         ↓
//	    [pipeline] package (render Newick, JSON, DOT, SVG, PNG, PDF)
//
// Supporting packages:
//
//   - [lineage]: nodes, candidate edges, descendant sets
//   - [tree]: rooted tree with traversal, associations and Newick output
//   - [io]: JSON document and result formats
//   - [cache]: result cache (file, Redis, MongoDB)
//   - [config]: TOML configuration
//   - [api]: HTTP surface
//   - [errors]: structured error codes
//   - [observability]: resolve, cache and source hooks
//
// # Quick Start
//
//	snap, _ := io.ImportJSON("candidates.json")
//	rep, _ := resolve.NewRankResolver().ResolveWithReport(ctx, snap, snap.Edges())
//	root, _ := synth.Build(snap, rep.Accepted)
//	fmt.Println(root.Newick(false) + ";")
package pkg
