// Package shuttle provides a single-threaded, cooperative task engine whose
// control flow and cross-task dependencies are recorded live into a
// dependency graph. Tasks suspend and resume through an explicit execution
// context; the annotated layer on top instruments every suspension point so
// the resulting graph can be rendered to Graphviz or inspected for cycles as
// soon as a cycle-closing dependency is introduced.
package shuttle
