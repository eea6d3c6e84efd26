// Package nodelink draws a resolved tree as a Graphviz node-link diagram.
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options{BranchLengths: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// [RenderPDF] and [RenderPNG] convert the SVG further and need rsvg-convert.
//
// # Options
//
//   - Detailed: node labels list the node's associations (nodeid,
//     ndescendants, ...) under its name
//   - BranchLengths: edges are labelled with the child's branch length
//
// The DOT output lays the tree out top to bottom with rounded boxes. Nodes
// appear in self-first order, so the root is declared first. An unnamed
// node with children, such as the synthetic root joining several subtrees,
// is drawn dashed and grey.
//
// # Dependencies
//
// SVG rendering runs in-process through [github.com/goccy/go-graphviz].
package nodelink
