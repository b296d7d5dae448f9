package graph

import "fmt"

// NodeID indexes a detector node. Boundary is the sentinel id representing
// the virtual boundary node, matchable from any node with a boundary edge.
type NodeID int32

// Boundary is the sentinel NodeID for the virtual boundary.
const Boundary NodeID = -1

// EdgeRef indexes an edge in a Graph's edge table.
type EdgeRef int32

// ErrNegativeWeightAfterSync signals an internal invariant violation: an
// edge weight was still negative after SyncNegativeWeights ran. Callers
// should never see this in practice.
var ErrNegativeWeightAfterSync = fmt.Errorf("graph: edge weight negative after SyncNegativeWeights")

// edgeRecord is the internal storage for one edge. u is always a real
// detector node; v is Boundary for a boundary edge.
type edgeRecord[M Mask[M]] struct {
	u, v   NodeID
	weight int64
	obs    M
}

// Graph is an immutable, weighted, undirected detector graph generic over
// an observable-mask representation M. Use MatchingGraph for the common
// case of at most 64 observables, or SearchGraph for wider models.
type Graph[M Mask[M]] struct {
	numNodes int
	edges    []edgeRecord[M]
	adj      [][]EdgeRef
	synced   bool
	zero     M
}

// MatchingGraph is a Graph using the fixed 64-bit observable mask.
type MatchingGraph = Graph[MatchingMask]

// SearchGraph is a Graph using the arbitrary-width observable mask.
type SearchGraph = Graph[SearchMask]

// New allocates a Graph over numNodes detector nodes with no edges. zero
// must be the additive-identity mask value for M: MatchingMask(0) for a
// MatchingGraph, or a graph.NewSearchMask(numObservables) of the intended
// width for a SearchGraph (SearchMask's own zero value has length zero and
// cannot be XORed against a real mask of nonzero width).
func New[M Mask[M]](numNodes int, zero M) *Graph[M] {
	return &Graph[M]{
		numNodes: numNodes,
		adj:      make([][]EdgeRef, numNodes),
		zero:     zero,
	}
}

// NumNodes returns the number of detector nodes, excluding the boundary.
func (g *Graph[M]) NumNodes() int { return g.numNodes }

// ZeroMask returns the additive-identity mask this graph was constructed
// with, suitable as a starting accumulator for XOR folds over edge masks.
func (g *Graph[M]) ZeroMask() M { return g.zero }

// NumEdges returns the number of edges added so far.
func (g *Graph[M]) NumEdges() int { return len(g.edges) }

func (g *Graph[M]) checkNode(id NodeID) error {
	if id < 0 || int(id) >= g.numNodes {
		return fmt.Errorf("%w: node %d not in [0, %d)", ErrNodeOutOfRange, id, g.numNodes)
	}
	return nil
}

// AddEdge adds an undirected edge between two real detector nodes u and v,
// carrying weight and observable mask obs. Weight may be negative; a
// negative edge is left as-is until SyncNegativeWeights runs.
func (g *Graph[M]) AddEdge(u, v NodeID, weight int64, obs M) (EdgeRef, error) {
	if err := g.checkNode(u); err != nil {
		return -1, err
	}
	if err := g.checkNode(v); err != nil {
		return -1, err
	}
	return g.addEdge(u, v, weight, obs), nil
}

// AddBoundaryEdge adds an undirected edge between real detector node u and
// the virtual boundary, carrying weight and observable mask obs.
func (g *Graph[M]) AddBoundaryEdge(u NodeID, weight int64, obs M) (EdgeRef, error) {
	if err := g.checkNode(u); err != nil {
		return -1, err
	}
	return g.addEdge(u, Boundary, weight, obs), nil
}

func (g *Graph[M]) addEdge(u, v NodeID, weight int64, obs M) EdgeRef {
	ref := EdgeRef(len(g.edges))
	g.edges = append(g.edges, edgeRecord[M]{u: u, v: v, weight: weight, obs: obs})
	g.adj[u] = append(g.adj[u], ref)
	if v != Boundary {
		g.adj[v] = append(g.adj[v], ref)
	}
	g.synced = false
	return ref
}

// Endpoints returns the two endpoints of edge ref, in the order they were
// added. The second endpoint is Boundary for a boundary edge.
func (g *Graph[M]) Endpoints(ref EdgeRef) (u, v NodeID) {
	e := g.edges[ref]
	return e.u, e.v
}

// Other returns the endpoint of edge ref that is not from.
func (g *Graph[M]) Other(ref EdgeRef, from NodeID) NodeID {
	e := g.edges[ref]
	if e.u == from {
		return e.v
	}
	return e.u
}

// Weight returns the current weight of edge ref.
func (g *Graph[M]) Weight(ref EdgeRef) int64 { return g.edges[ref].weight }

// Observable returns the observable-flip mask carried by edge ref.
func (g *Graph[M]) Observable(ref EdgeRef) M { return g.edges[ref].obs }

// Neighbors returns the edges incident to node id. The boundary node has no
// adjacency list of its own; query the endpoints of the boundary edges you
// hold instead.
func (g *Graph[M]) Neighbors(id NodeID) []EdgeRef {
	if id == Boundary {
		return nil
	}
	return g.adj[id]
}

// SyncNegativeWeights runs the one-time negative-weight canonicalisation
// pass described in the package doc. It returns the set of nodes whose
// initial excitation must be flipped and the accumulated boundary
// observable mask, both derived solely from edges that were negative at
// the time of the call. A second call is a no-op returning a zero mask and
// no toggled nodes, since every edge weight is non-negative afterward.
func (g *Graph[M]) SyncNegativeWeights() (toggle map[NodeID]bool, boundaryMask M, err error) {
	boundaryMask = g.zero
	if g.synced {
		return nil, boundaryMask, nil
	}
	toggle = make(map[NodeID]bool)
	for i := range g.edges {
		e := &g.edges[i]
		if e.weight >= 0 {
			continue
		}
		toggle[e.u] = !toggle[e.u]
		if e.v != Boundary {
			toggle[e.v] = !toggle[e.v]
		}
		boundaryMask = boundaryMask.Xor(e.obs)
		e.weight = -e.weight
		if e.weight < 0 {
			return toggle, boundaryMask, ErrNegativeWeightAfterSync
		}
	}
	g.synced = true
	return toggle, boundaryMask, nil
}
