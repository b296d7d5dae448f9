// Package dem turns a detector error model, expressed as a stream of
// independent error mechanisms (a probability, the detectors it triggers,
// and the observables it flips), into the graph.MatchingGraph that mwpm
// decodes.
//
// Builder accumulates mechanisms keyed by the (unordered) pair of detectors
// they trigger, merging repeated mechanisms on the same pair via the
// log-sum-exp weight identity rather than overwriting them — two
// independent error mechanisms on the same detector pair compose into one
// effective edge. Discretize then quantizes the accumulated floating-point
// weights into the small non-negative integers the flooder's geometric
// scheduling requires, runs the graph's one-time negative-weight
// canonicalisation pass, and returns both the ready-to-decode graph and a
// Normalizer that lets a caller translate between the two domains: convert
// an excited-detector list and a decoded observable mask into the
// canonicalised graph's terms, and convert an integer matching cost back
// into the floating-point -log(likelihood) the original error model meant.
package dem
