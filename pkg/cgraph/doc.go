// Package cgraph provides the causal graphs used throughout the course.
//
// A DAG describes the true structure of a structural causal model. It is stored in a
// directed, acyclic github.com/dominikbraun/graph graph, so an edge that would close a cycle is
// rejected at insertion time. A Mixed graph carries an endpoint mark on both ends of every edge
// and is the shape shared by skeletons, partially directed graphs (CPDAGs) and partial ancestral
// graphs (PAGs).
//
// Both graph kinds can be rendered to Graphviz DOT.
package cgraph
