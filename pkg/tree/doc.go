// Package tree provides the rooted-tree structure used to hold and export a
// synthesized hierarchy.
//
// A [Node] exclusively owns its ordered children and keeps a non-owning
// pointer to its parent. A node without children is a tip; a node without a
// parent is the root. Besides name and branch length every node carries a
// small property bag for downstream annotations (support metadata, display
// flags); this package never interprets those values.
//
// # Traversal
//
// [Node.Descendants] lists a subtree in one of two explicit orders:
//
//   - [ChildrenFirst]: a node is emitted after all of its children
//   - [SelfFirst]: a node is emitted before its children are visited
//
// Both lists include the starting node.
//
// # Newick
//
// [Node.Newick] renders the subtree in Newick notation. Names pass through
// [CleanName]; zero branch lengths are written as [MinBranchLength] so that
// downstream tools do not collapse them.
//
// # Concurrency
//
// Nodes are not safe for concurrent mutation. Callers must serialise
// AddChild and RemoveChild against readers.
package tree
