package flooder

import (
	"errors"
	"fmt"

	"github.com/blossomdecode/sparseblossom/events"
	"github.com/blossomdecode/sparseblossom/graph"
	"github.com/blossomdecode/sparseblossom/region"
)

// Sentinel errors returned by Flooder's public operations.
var (
	// ErrNodeAlreadyCovered is returned by CreateRegion for a node that
	// already belongs to a region.
	ErrNodeAlreadyCovered = errors.New("flooder: node already covered")
	// ErrInvalidCycle is returned by CreateBlossom when the supplied cycle
	// is not an odd cycle of length at least three.
	ErrInvalidCycle = errors.New("flooder: blossom cycle must have odd length >= 3")
	// ErrQueueEmpty is returned by NextEvent once no further tentative
	// event remains live or pending.
	ErrQueueEmpty = errors.New("flooder: event queue is empty")
)

// MatchingFlooder is a Flooder over the fixed-width observable mask.
type MatchingFlooder = Flooder[graph.MatchingMask]

// SearchFlooder is a Flooder over the arbitrary-width observable mask.
type SearchFlooder = Flooder[graph.SearchMask]

// Flooder drives the continuous-time region-growth simulation over a
// graph.Graph[M]. See the package doc for the node-absorption model.
type Flooder[M graph.Mask[M]] struct {
	g        *graph.Graph[M]
	arena    *region.Arena
	queue    *events.Queue
	seq      events.Sequencer
	recorder Recorder[M]
	now      events.Time

	covered          []bool
	homeLeaf         []region.ID
	nodeOffsetRadius []int64
	nodeOffsetMask   []M
	nodeToken        []events.Token

	leafNodes map[region.ID][]graph.NodeID
}

// New returns a Flooder over g, using recorder as its absorption/collision
// capability parameter.
func New[M graph.Mask[M]](g *graph.Graph[M], recorder Recorder[M]) *Flooder[M] {
	n := g.NumNodes()
	f := &Flooder[M]{
		g:                g,
		arena:            region.NewArena(),
		queue:            events.NewQueue(),
		recorder:         recorder,
		covered:          make([]bool, n),
		homeLeaf:         make([]region.ID, n),
		nodeOffsetRadius: make([]int64, n),
		nodeOffsetMask:   make([]M, n),
		nodeToken:        make([]events.Token, n),
		leafNodes:        make(map[region.ID][]graph.NodeID),
	}
	for i := range f.homeLeaf {
		f.homeLeaf[i] = region.NilID
		f.nodeOffsetMask[i] = g.ZeroMask()
	}
	return f
}

// Now returns the flooder's current logical time.
func (f *Flooder[M]) Now() events.Time { return f.now }

// Arena returns the region arena backing this flooder, for callers (the
// mwpm driver) that need read-only access to region state such as
// EffectiveRadius, Rate, or IsTopLevel.
func (f *Flooder[M]) Arena() *region.Arena { return f.arena }

// CreateRegion creates a new top-level leaf region with growth rate
// Growing whose sole detector, at creation, is node. It schedules
// neighbor-interaction events with every neighbor of node, covered or not.
func (f *Flooder[M]) CreateRegion(node graph.NodeID) (region.ID, error) {
	if f.covered[node] {
		return region.NilID, fmt.Errorf("%w: node %d", ErrNodeAlreadyCovered, node)
	}
	id := f.arena.NewLeaf(int64(f.now))
	f.homeLeaf[node] = id
	f.covered[node] = true
	f.nodeOffsetRadius[node] = 0
	f.nodeOffsetMask[node] = f.g.ZeroMask()
	f.leafNodes[id] = []graph.NodeID{node}
	if pr, ok := any(f.recorder).(*PredecessorRecorder[M]); ok {
		delete(pr.pred, node) // drop any absorbing edge left from an earlier, imploded leaf
	}
	f.rescheduleNode(node)
	return id, nil
}

// SetRegionGrowth assigns rate to the top-level region id. Every event
// touching the region's boundary is rescheduled, since future collision
// times shift; if rate is Shrinking, a region-shrink event is scheduled
// for the time the region's radius reaches zero.
func (f *Flooder[M]) SetRegionGrowth(id region.ID, rate region.Rate) error {
	r, err := f.arena.TryGet(id)
	if err != nil {
		return err
	}
	token := f.arena.SetGrowth(int64(f.now), id, rate)
	if rate == region.Shrinking {
		radius := f.arena.EffectiveRadius(id, int64(f.now))
		f.queue.Schedule(&events.Event{
			Kind: events.RegionShrink,
			Time: f.now + events.Time(radius),
			Seq:  f.seq.Next(),
			Shrink: &events.ShrinkPayload{
				Region: events.AuthorityID(id),
				Token:  token,
			},
		})
	}
	for _, node := range f.ownedNodes(r.ID()) {
		f.rescheduleNode(node)
	}
	return nil
}

// CreateBlossom contracts cycle, an odd alternating cycle of top-level
// regions and their connecting edges, into a new top-level blossom growing
// at rate Growing. Internal edges of the cycle are dropped from scheduling
// automatically, since both endpoints now resolve to the same top-level
// root; external edges are rescheduled against the blossom.
func (f *Flooder[M]) CreateBlossom(cycle []region.Child) (region.ID, error) {
	if len(cycle) < 3 || len(cycle)%2 == 0 {
		return region.NilID, fmt.Errorf("%w: got %d", ErrInvalidCycle, len(cycle))
	}
	id := f.arena.NewBlossom(int64(f.now), cycle)
	for _, c := range cycle {
		for _, node := range f.ownedNodes(c.Region) {
			f.rescheduleNode(node)
		}
	}
	return id, nil
}

// ownedNodes returns every detector node transitively covered by id,
// recursing through blossom children.
func (f *Flooder[M]) ownedNodes(id region.ID) []graph.NodeID {
	r := f.arena.Get(id)
	if r.Kind() == region.Leaf {
		return f.leafNodes[id]
	}
	var out []graph.NodeID
	for _, c := range r.Children() {
		out = append(out, f.ownedNodes(c.Region)...)
	}
	return out
}

// rescheduleNode bumps node's schedule token, invalidating every event
// previously scheduled from its perspective, then re-schedules one event
// per incident edge if the node is currently covered (an uncovered node
// grows nothing, so nothing to schedule from its side).
func (f *Flooder[M]) rescheduleNode(node graph.NodeID) {
	f.nodeToken[node]++
	if !f.covered[node] {
		return
	}
	for _, edge := range f.g.Neighbors(node) {
		f.scheduleEdge(node, edge)
	}
}

// side bundles the inputs needed to evaluate one endpoint's contribution
// to a neighbor-interaction collision time.
type side struct {
	present bool
	leaf    region.ID
	root    region.ID
	offset  int64
}

func (f *Flooder[M]) radiusAndRate(s side) (radius, rate int64) {
	if !s.present {
		return 0, 0
	}
	radius = f.arena.EffectiveRadius(s.leaf, int64(f.now)) - s.offset
	rate = int64(f.arena.Get(s.root).Rate())
	return radius, rate
}

// scheduleEdge computes and installs the tentative neighbor-interaction
// event, if any, for edge as seen from node. See spec.md §4.3
// schedule_tentative_neighbor_interaction_event.
func (f *Flooder[M]) scheduleEdge(node graph.NodeID, edge graph.EdgeRef) {
	other := f.g.Other(edge, node)
	weight := f.g.Weight(edge)

	nodeSide := side{present: true, leaf: f.homeLeaf[node], root: f.arena.Root(f.homeLeaf[node]), offset: f.nodeOffsetRadius[node]}

	var otherSide side
	if other != graph.Boundary && f.covered[other] {
		otherRoot := f.arena.Root(f.homeLeaf[other])
		if otherRoot == nodeSide.root {
			// Both sides already resolve to the same top-level region
			// (e.g. contained by a common blossom); they cannot collide.
			return
		}
		otherSide = side{present: true, leaf: f.homeLeaf[other], root: otherRoot, offset: f.nodeOffsetRadius[other]}
	}

	nodeRadius, nodeRate := f.radiusAndRate(nodeSide)
	otherRadius, otherRate := f.radiusAndRate(otherSide)

	t, ok := solveCollisionTime(int64(f.now), weight, nodeRadius+otherRadius, nodeRate+otherRate)
	if !ok {
		return
	}

	f.queue.Schedule(&events.Event{
		Kind: events.NeighborInteraction,
		Time: events.Time(t),
		Seq:  f.seq.Next(),
		Neighbor: &events.NeighborPayload{
			NodeA:  node,
			NodeB:  other,
			Edge:   edge,
			TokenA: f.nodeToken[node],
			TokenB: f.tokenOf(other),
		},
	})
}

// tokenOf returns the schedule token captured for a neighbor payload's B
// side; the boundary has no token to capture.
func (f *Flooder[M]) tokenOf(node graph.NodeID) events.Token {
	if node == graph.Boundary {
		return 0
	}
	return f.nodeToken[node]
}

// solveCollisionTime returns the smallest integer time t >= now at which
// currentRadiusSum + combinedRate*(t-now) >= weight, or ok=false if the
// combined growth can never reach weight (combined rate zero or negative and
// the target not already met).
func solveCollisionTime(now, weight, currentRadiusSum, combinedRate int64) (t int64, ok bool) {
	remaining := weight - currentRadiusSum
	if remaining <= 0 {
		return now, true
	}
	if combinedRate <= 0 {
		return 0, false
	}
	delta := remaining / combinedRate
	if remaining%combinedRate != 0 {
		delta++
	}
	return now + delta, true
}

// absorb marks newNode as newly covered by homeNode's home leaf, freezing
// its radius/observable offset from that leaf's original center.
func (f *Flooder[M]) absorb(homeNode, newNode graph.NodeID, via graph.EdgeRef) {
	leaf := f.homeLeaf[homeNode]
	weight := f.g.Weight(via)

	f.nodeOffsetRadius[newNode] = f.nodeOffsetRadius[homeNode] + weight
	f.nodeOffsetMask[newNode] = f.nodeOffsetMask[homeNode].Xor(f.g.Observable(via))
	f.homeLeaf[newNode] = leaf
	f.covered[newNode] = true
	f.leafNodes[leaf] = append(f.leafNodes[leaf], newNode)

	f.recorder.OnAbsorb(newNode, via)
	f.rescheduleNode(newNode)
}

// ObservableMask returns the observable-flip mask accumulated between
// node's home leaf's original center and node itself.
func (f *Flooder[M]) ObservableMask(node graph.NodeID) M { return f.nodeOffsetMask[node] }

// PathMask reconstructs node's observable-flip mask by walking the explicit
// predecessor chain recorded by a PredecessorRecorder back to node's home
// leaf, rather than reading the inline node-offset accumulation
// ObservableMask does. It returns false if the flooder was not built with a
// PredecessorRecorder (a MatchingFlooder, built with NoOpRecorder, has no
// predecessor chain to walk).
func (f *Flooder[M]) PathMask(node graph.NodeID) (M, bool) {
	pr, ok := any(f.recorder).(*PredecessorRecorder[M])
	if !ok {
		var zero M
		return zero, false
	}
	mask := f.g.ZeroMask()
	cur := node
	for {
		via, ok := pr.Predecessor(cur)
		if !ok {
			break
		}
		mask = mask.Xor(f.g.Observable(via))
		u, v := f.g.Endpoints(via)
		if cur == u {
			cur = v
		} else {
			cur = u
		}
	}
	return mask, true
}

// HomeLeaf returns the leaf that first absorbed node, or region.NilID if
// node has never been covered.
func (f *Flooder[M]) HomeLeaf(node graph.NodeID) region.ID { return f.homeLeaf[node] }

// uncoverLeaf reverts every node owned by a freed leaf to the uncovered
// state and gives each covered neighbor a chance to rediscover it as an
// absorption target.
func (f *Flooder[M]) uncoverLeaf(leaf region.ID) {
	nodes := f.leafNodes[leaf]
	delete(f.leafNodes, leaf)
	for _, node := range nodes {
		f.covered[node] = false
		f.homeLeaf[node] = region.NilID
		f.nodeOffsetRadius[node] = 0
		f.nodeOffsetMask[node] = f.g.ZeroMask()
		f.nodeToken[node]++
	}
	for _, node := range nodes {
		for _, edge := range f.g.Neighbors(node) {
			other := f.g.Other(edge, node)
			if other != graph.Boundary && f.covered[other] {
				f.rescheduleNode(other)
			}
		}
	}
}

// NextEvent advances the simulation, discarding stale and internal events,
// until it finds a driver-visible MatchingEvent or the queue empties.
func (f *Flooder[M]) NextEvent() (*MatchingEvent, error) {
	for {
		ev := f.queue.PopNext()
		if ev == nil {
			return nil, ErrQueueEmpty
		}
		f.now = ev.Time

		switch ev.Kind {
		case events.RegionShrink:
			out, ok := f.handleShrink(ev.Shrink)
			if ok {
				return out, nil
			}
		case events.NeighborInteraction:
			out, ok := f.handleNeighbor(ev.Neighbor)
			if ok {
				return out, nil
			}
		}
	}
}

func (f *Flooder[M]) handleShrink(sp *events.ShrinkPayload) (*MatchingEvent, bool) {
	id := region.ID(sp.Region)
	r, err := f.arena.TryGet(id)
	if err != nil || r.ShrinkToken() != sp.Token {
		return nil, false
	}

	if r.Kind() == region.Leaf {
		nodes := append([]graph.NodeID(nil), f.leafNodes[id]...)
		f.arena.Free(id)
		f.uncoverLeaf(id)
		return &MatchingEvent{Kind: DegenerateImplosion, Time: f.now, RegionA: id, Uncovered: nodes}, true
	}

	children := f.arena.Expand(int64(f.now), id)
	f.arena.Free(id)
	for _, c := range children {
		for _, node := range f.ownedNodes(c.Region) {
			f.rescheduleNode(node)
		}
	}
	return &MatchingEvent{Kind: BlossomImplosion, Time: f.now, RegionA: id, ImplodedChildren: children}, true
}

func (f *Flooder[M]) handleNeighbor(np *events.NeighborPayload) (*MatchingEvent, bool) {
	if f.nodeToken[np.NodeA] != np.TokenA {
		return nil, false
	}
	if np.NodeB != graph.Boundary && f.nodeToken[np.NodeB] != np.TokenB {
		return nil, false
	}

	if np.NodeB == graph.Boundary {
		root := f.arena.Root(f.homeLeaf[np.NodeA])
		f.recorder.OnCollision(np.NodeA, graph.Boundary, np.Edge)
		return &MatchingEvent{Kind: RegionHitBoundary, Time: f.now, RegionA: root, Node: np.NodeA, Edge: np.Edge}, true
	}

	if !f.covered[np.NodeB] {
		f.absorb(np.NodeA, np.NodeB, np.Edge)
		return nil, false
	}

	rootA := f.arena.Root(f.homeLeaf[np.NodeA])
	rootB := f.arena.Root(f.homeLeaf[np.NodeB])
	if rootA == rootB {
		return nil, false
	}

	f.recorder.OnCollision(np.NodeA, np.NodeB, np.Edge)
	return &MatchingEvent{Kind: RegionHitRegion, Time: f.now, RegionA: rootA, RegionB: rootB, Node: np.NodeA, Edge: np.Edge}, true
}
