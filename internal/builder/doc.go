// Package builder turns a format-agnostic config.Model into a wired
// uniform.Graph.
//
// Build runs in passes, mirroring how the graph must be assembled:
//
//  1. Nodes: every uniform is added with its initial value, in declaration
//     order, so expressions may reference uniforms declared later.
//  2. Links: every compute expression is compiled and bound with Derive,
//     which also appends the node to each input's observer list.
//  3. Sinks: every non-partial uniform gets a sink from the open session.
//  4. Validation: the finished graph is checked for cycles and broken edges.
//
// The returned Grid keeps the declaration order and offers the run-time
// operations the app needs: applying `name=value` sets, settling derived
// values, flushing roots and tabulating values.
package builder
