// Package events provides the logical-time priority queue that drives the
// blossom flooder's continuous-time simulation.
//
// Regions grow at a constant rate, so the time at which two regions collide
// (or a region's radius passes zero while shrinking) can be computed in
// closed form the moment the regions involved are known. Rather than
// recomputing every pending event whenever a region's growth rate changes
// (a decrease-key operation container/heap does not support directly), each
// schedulable authority (a region or a blossom) carries a monotonically
// increasing Token. An Event captures the token value in effect when it was
// scheduled; Queue.PopNext returns live and stale events alike, and the
// caller (the flooder) discards any event whose captured token no longer
// matches the authority's current token.
//
// This mirrors the lazy-decrease-key idiom used for shortest-path priority
// queues (see dijkstra.nodePQ), generalised from "distance" to "logical
// time" and from "visited" to "token mismatch".
package events
