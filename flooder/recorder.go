package flooder

import "github.com/blossomdecode/sparseblossom/graph"

// Recorder observes absorption and collision events as the flooder
// processes them. It is the capability parameter that distinguishes a
// matching flooder (which needs nothing beyond the inline node-offset
// bookkeeping the flooder already does) from a search flooder (which
// additionally needs an explicit predecessor chain to reconstruct a path
// once observables overflow the machine word).
type Recorder[M graph.Mask[M]] interface {
	// OnAbsorb is called when node is newly covered by growth across via.
	OnAbsorb(node graph.NodeID, via graph.EdgeRef)
	// OnCollision is called when a and b's covering regions are found to
	// have met along via, just before the corresponding MatchingEvent is
	// returned to the caller.
	OnCollision(a, b graph.NodeID, via graph.EdgeRef)
}

// NoOpRecorder is the Recorder used by MatchingFlooder: observable
// accumulation happens inline via each node's frozen mask offset, so no
// further bookkeeping is required on absorption or collision.
type NoOpRecorder[M graph.Mask[M]] struct{}

// OnAbsorb implements Recorder.
func (NoOpRecorder[M]) OnAbsorb(graph.NodeID, graph.EdgeRef) {}

// OnCollision implements Recorder.
func (NoOpRecorder[M]) OnCollision(graph.NodeID, graph.NodeID, graph.EdgeRef) {}

// PredecessorRecorder is the Recorder used by SearchFlooder: it additionally
// remembers, for every absorbed node, the edge that absorbed it, so mwpm
// can walk an explicit predecessor chain back to a region's original
// center once observables no longer fit a single machine word.
type PredecessorRecorder[M graph.Mask[M]] struct {
	pred map[graph.NodeID]graph.EdgeRef
}

// NewPredecessorRecorder returns an empty PredecessorRecorder.
func NewPredecessorRecorder[M graph.Mask[M]]() *PredecessorRecorder[M] {
	return &PredecessorRecorder[M]{pred: make(map[graph.NodeID]graph.EdgeRef)}
}

// OnAbsorb implements Recorder.
func (p *PredecessorRecorder[M]) OnAbsorb(node graph.NodeID, via graph.EdgeRef) {
	p.pred[node] = via
}

// OnCollision implements Recorder.
func (p *PredecessorRecorder[M]) OnCollision(graph.NodeID, graph.NodeID, graph.EdgeRef) {}

// Predecessor returns the edge that absorbed node and whether node was ever
// absorbed (a node created directly via CreateRegion has no predecessor).
func (p *PredecessorRecorder[M]) Predecessor(node graph.NodeID) (graph.EdgeRef, bool) {
	e, ok := p.pred[node]
	return e, ok
}
