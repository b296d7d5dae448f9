package dem

import (
	"fmt"

	"github.com/blossomdecode/sparseblossom/graph"
)

// Normalizer is produced by Builder.Discretize alongside the ready-to-decode
// graph. It carries everything needed to cross back and forth between the
// error model's own terms (detector names, floating-point -log(likelihood)
// weights) and the canonicalised integer graph mwpm.Decode consumes.
//
// Two distinct conversions are bundled here because both arise from the
// same Discretize call and both must be undone by the same caller before
// and after decoding: the discretization scale (recovering floating-point
// cost from an integer matching weight) and the negative-weight
// canonicalisation performed by graph.MatchingGraph.SyncNegativeWeights
// (toggling which detectors start excited, and XORing a fixed boundary
// mask into the final decoded result).
type Normalizer struct {
	scale float64

	index map[string]graph.NodeID
	names []string

	toggle       map[graph.NodeID]bool
	boundaryMask graph.MatchingMask
}

// NodeID returns the graph node index assigned to a detector name.
func (n Normalizer) NodeID(detector string) (graph.NodeID, bool) {
	id, ok := n.index[detector]
	return id, ok
}

// DetectorName returns the detector name a graph node index was assigned
// from, the inverse of NodeID.
func (n Normalizer) DetectorName(id graph.NodeID) (string, bool) {
	if id < 0 || int(id) >= len(n.names) {
		return "", false
	}
	return n.names[id], true
}

// AdjustExcited translates a caller's excited-detector names into the
// NodeID space SyncNegativeWeights canonicalised, flipping membership for
// every detector whose initial excitation toggle was set.
func (n Normalizer) AdjustExcited(excited []string) ([]graph.NodeID, error) {
	excitedSet := make(map[graph.NodeID]bool, len(excited))
	for _, name := range excited {
		id, ok := n.index[name]
		if !ok {
			return nil, fmt.Errorf("dem: unknown detector %q", name)
		}
		excitedSet[id] = !excitedSet[id]
	}
	for id, flip := range n.toggle {
		if flip {
			excitedSet[id] = !excitedSet[id]
		}
	}

	out := make([]graph.NodeID, 0, len(excitedSet))
	for id, on := range excitedSet {
		if on {
			out = append(out, id)
		}
	}
	return out, nil
}

// FinalMask XORs the fixed boundary contribution accumulated by
// SyncNegativeWeights into a decoded observable mask, completing the
// negative-weight canonicalisation round trip.
func (n Normalizer) FinalMask(mask graph.MatchingMask) graph.MatchingMask {
	return mask.Xor(n.boundaryMask)
}

// Denormalize converts an integer matching weight (the sum of edge weights
// along a decoded path, in the quantized graph's terms) back into the
// floating-point -log(likelihood) cost the original error model expressed.
func (n Normalizer) Denormalize(weight int64) float64 {
	if n.scale == 0 {
		return 0
	}
	return float64(weight) / n.scale
}

// Scale returns the discretization scale factor (levels per unit of
// floating-point weight) recorded by Discretize.
func (n Normalizer) Scale() float64 { return n.scale }
