// Package flooder runs the continuous-time blossom-growth simulation: it
// owns a region.Arena and an events.Queue, exposes CreateRegion,
// SetRegionGrowth and CreateBlossom to mutate the growing forest, and
// NextEvent to advance the simulation to the next geometrically
// significant occurrence.
//
// Flooder is generic over the observable-mask representation via the same
// type parameter graph.Graph uses, so MatchingFlooder and SearchFlooder
// share one implementation; the difference between "accumulate observables
// inline" and "record an explicit predecessor chain" is captured entirely
// by the Recorder passed to New, per the capability-parameter pattern
// (rather than duplicating the simulator for each mask width). A caller
// reads the result through ObservableMask (inline offset) or PathMask
// (walks the Recorder's predecessor chain, when one was kept); PathMask
// reports false for a MatchingFlooder, which keeps no such chain.
//
// A node absorbed by a region's growth is tracked by its home leaf (the
// leaf that first covered it) and a frozen radius/observable offset from
// that leaf's original center. This is what lets a single-node leaf
// identity grow to cover an arbitrary connected patch of the graph: only
// collisions between distinct top-level regions, or with the boundary, are
// surfaced to the caller as a MatchingEvent. An absorption of a
// still-uncovered neighbor is handled silently inside NextEvent's loop.
package flooder
