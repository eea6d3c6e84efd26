// Package source loads ranked candidate edges and their descendant sets into
// a [lineage.Snapshot].
//
// Two sources are provided:
//
//   - [FileSource] reads a JSON candidate document (see package io)
//   - [Neo4jSource] queries the child-of relationships entering one parent
//     node of a Neo4j graph, ranked by a relationship property
//
// Sources report load events to the observability source hooks.
package source
