package mwpm

import (
	"github.com/blossomdecode/sparseblossom/flooder"
	"github.com/blossomdecode/sparseblossom/graph"
)

// Decode runs the alternating-tree search over g for the given excited
// detectors and returns the XOR of every observable flipped by the
// resulting minimum-weight perfect matching.
func Decode(g *graph.MatchingGraph, excited []graph.NodeID) (graph.MatchingMask, error) {
	fl := flooder.New[graph.MatchingMask](g, flooder.NoOpRecorder[graph.MatchingMask]{})
	d, err := run(g, fl, excited)
	if err != nil {
		return g.ZeroMask(), err
	}
	return d.finalMask(), nil
}

// DecodeSearch is Decode's counterpart for detector graphs whose observable
// count overflows a single machine word. It drives an identical sequence of
// region operations through a SearchFlooder, which additionally tracks an
// explicit predecessor chain per node.
func DecodeSearch(g *graph.SearchGraph, excited []graph.NodeID) (graph.SearchMask, error) {
	fl := flooder.New[graph.SearchMask](g, flooder.NewPredecessorRecorder[graph.SearchMask]())
	d, err := run(g, fl, excited)
	if err != nil {
		return g.ZeroMask(), err
	}
	return d.finalMask(), nil
}

// Pair is one matched pair of labels returned by MatchComplete.
type Pair struct {
	A, B int
}

// MatchComplete is a convenience entry point for callers that already have
// a dense weight function over a complete graph rather than a sparse
// graph.Graph: it builds a graph.MatchingGraph with an edge between every
// pair of labels, marks every label excited, decodes, and translates the
// resulting matching back into label pairs rather than an observable mask.
func MatchComplete(labels []int, weight func(i, j int) int64) ([]Pair, error) {
	n := len(labels)
	g := graph.New[graph.MatchingMask](n, graph.MatchingMask(0))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if _, err := g.AddEdge(graph.NodeID(i), graph.NodeID(j), weight(i, j), graph.MatchingMask(0)); err != nil {
				return nil, err
			}
		}
	}

	excited := make([]graph.NodeID, n)
	for i := range excited {
		excited[i] = graph.NodeID(i)
	}

	fl := flooder.New[graph.MatchingMask](g, flooder.NoOpRecorder[graph.MatchingMask]{})
	d, err := run(g, fl, excited)
	if err != nil {
		return nil, err
	}

	out := make([]Pair, 0, n/2)
	for _, p := range d.pairs() {
		out = append(out, Pair{A: labels[p[0]], B: labels[p[1]]})
	}
	return out, nil
}

// Driver exposes the alternating-tree search directly, for callers (tests,
// diagnostics) that want the final matching and observable mask without
// going through Decode/DecodeSearch's single-shot API.
type Driver[M graph.Mask[M]] struct {
	d *driver[M]
}

// NewDriver runs the search to completion, as Decode does, but returns a
// handle exposing both FinalMask and Pairs.
func NewDriver[M graph.Mask[M]](g *graph.Graph[M], excited []graph.NodeID, rec flooder.Recorder[M]) (*Driver[M], error) {
	fl := flooder.New[M](g, rec)
	d, err := run(g, fl, excited)
	if err != nil {
		return nil, err
	}
	return &Driver[M]{d: d}, nil
}

// FinalMask returns the XOR of every observable flipped by the matching.
func (dr *Driver[M]) FinalMask() M { return dr.d.finalMask() }

// Pairs returns the literal graph nodes joined by each non-boundary matched
// pair's connecting edge.
func (dr *Driver[M]) Pairs() [][2]graph.NodeID { return dr.d.pairs() }

