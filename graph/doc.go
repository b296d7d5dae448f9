// Package graph defines the immutable, weighted, undirected detector graph
// that the blossom flooder runs over: nodes correspond to syndrome
// detectors, edges carry an integer weight and an observable mask, and a
// single virtual boundary node is matchable from any detector that has a
// boundary edge.
//
// The graph is built once by an external collaborator (typically package
// dem) and is immutable thereafter, except for the one-time negative-weight
// synchronisation pass described below.
//
// Observable masks are generic over two concrete representations:
//
//	MatchingMask - a uint64 bitset, for graphs with at most 64 observables.
//	SearchMask   - an arbitrary-length []uint64 word slice.
//
// Negative edge weights are permitted during construction (a weight merge
// upstream can legitimately produce one) but the flooder requires every
// edge it schedules to have non-negative weight. SyncNegativeWeights runs
// once, after all edges are added, to canonicalise any remaining negative
// edges per spec: it flips the initial-excitation state of the edge's
// endpoints and XORs the edge's observable mask into a running boundary
// mask, under an identity that preserves the minimum-weight matching.
//
// Errors:
//
//	ErrNodeOutOfRange - an edge referenced a node index outside [0, numNodes).
package graph

import "errors"

// ErrNodeOutOfRange indicates an edge endpoint index is not a valid node.
var ErrNodeOutOfRange = errors.New("graph: node index out of range")
