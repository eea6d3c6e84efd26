// Package synth materialises a resolved edge sequence as a rooted tree.
//
// [Build] takes the snapshot the edges came from and the accepted edges in
// acceptance order. Every edge attaches its child under its parent; children
// keep the order in which their edges were accepted. Nodes that never appear
// as a child become roots, and when there is more than one they are joined
// under an unnamed synthetic root.
//
// Each node of the result carries these associations:
//
//	nodeid        int64  id of the source node (absent on a synthetic root)
//	edgeid        int64  id of the accepted edge above the node (absent on roots)
//	ndescendants  int    size of the node's descendant set
//	nodedepth     int    largest number of edges to a tip below the node
package synth
