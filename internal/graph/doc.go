// Package graph converts a topologically-ordered commit list into a
// lane/color layout suitable for rendering the commit DAG.
//
// The layout is a single greedy top-to-bottom pass: lanes persist for the
// lifetime of a line of history and are recycled eagerly so the rendered
// graph stays as narrow as possible. The pass is pure; it never mutates its
// input and is deterministic for a fixed input order.
package graph
