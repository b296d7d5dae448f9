// Package mwpm implements the primal-dual alternating-tree driver that
// consumes a flooder.Flooder's matching events and produces a minimum-weight
// perfect matching: a set of region pairs (and boundary attachments) whose
// connecting edges' observable masks, XORed together, form the final
// answer.
//
// The driver maintains the top-level alternating-tree forest as a handful
// of maps keyed by region.ID rather than an explicit tree type: label
// records whether a region is currently a "+" or "-" search-tree node (a
// region with no label entry is a frozen, matched-standalone pair, not
// presently part of any search); parent/parentEdge/root describe its
// position within its tree; mate/mateEdge describe its current matching
// partner, independent of tree membership (a "-" region always has a mate,
// its tree child; a "+" region below the root always has a mate, its tree
// parent; a frozen standalone region also has a mate, its final partner).
//
// Event dispatch follows spec.md §4.5's four region-hit-region sub-cases,
// plus region-hit-boundary, degenerate implosion and blossom implosion.
// Blossom-expansion re-attachment (choosing which cycle arc continues the
// tree) is simplified relative to a reference implementation: see
// DESIGN.md for the exact trade-off and why it still produces a valid,
// if not always literally minimum-weight, matching on the affected cycle.
package mwpm
