// Package sparseblossom is a continuous-time minimum-weight perfect
// matching (MWPM) decoder for quantum error correction, built around a
// blossom flooder that grows alternating-sign regions over a detector
// graph at constant rate and processes collision events in increasing
// time order.
//
// 🚀 What is sparseblossom?
//
//	A decoder that turns a detector error model (DEM) into a weighted
//	detector graph and matches syndrome detectors to each other or to
//	the boundary, tracking the observable flips implied by the match:
//		• graph    — the immutable weighted detector graph, generic over
//		             observable-mask width
//		• events   — a logical-time priority queue with invalidation by
//		             version token, used in place of decrease-key
//		• region   — the arena of growing regions and blossoms
//		• flooder  — the continuous-time event engine driving region growth
//		• mwpm     — the primal-dual alternating-tree driver producing matches
//		• dem      — builds a graph from error-mechanism declarations
//		• core     — the string-keyed general graph dem assembles mechanisms into
//		• dijkstra — shortest paths over a core graph (dem's reachability check)
//
// Under the hood, everything is organized under the subpackages above plus
// cmd/blossomdecode, a CLI front end.
//
// go get github.com/blossomdecode/sparseblossom
package sparseblossom
