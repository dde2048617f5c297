// Package discovery recovers causal structure from independence statements.
//
// PC starts from the complete undirected graph over the variables and removes the edge i -- j
// as soon as some conditioning set S drawn from the current neighbours makes i and j
// independent. The sets grow one variable per level. Unshielded triples i -- k -- j whose
// separating set misses k become colliders i --> k <-- j, and Meek's rules propagate the rest.
// Every test, removal and orientation is recorded in a Trace.
//
// The independence statements come from an IndependenceTest: a partial correlation t-test on
// sampled data, or an oracle that answers with d-separation on a known DAG.
package discovery
