package mwpm

import (
	"errors"
	"fmt"

	"github.com/blossomdecode/sparseblossom/flooder"
	"github.com/blossomdecode/sparseblossom/graph"
	"github.com/blossomdecode/sparseblossom/region"
)

// Label is a region's role in the current alternating-tree search.
type Label int

const (
	// Plus roles grow; a Plus region that is not a tree root always has a
	// mate, its tree parent, reached by an edge that was already part of
	// the matching before this search began.
	Plus Label = iota
	// Minus roles shrink; a Minus region always has a mate, its tree
	// child, by the same matching-edge rule.
	Minus
)

// String renders a Label for diagnostics.
func (l Label) String() string {
	if l == Plus {
		return "+"
	}
	return "-"
}

// boundaryMate is the sentinel mate value recorded for a region matched
// directly to the boundary rather than to another region.
const boundaryMate region.ID = -2

// driver runs the alternating-tree search described in spec.md §4.5 over a
// single flooder, mutating the tree-forest bookkeeping as matching events
// arrive. It has no notion of "decode" vs "decode search": both share this
// type, parameterized over the observable mask width.
type driver[M graph.Mask[M]] struct {
	g  *graph.Graph[M]
	fl *flooder.Flooder[M]

	// label/parent/parentEdge/root describe tree membership; an entry
	// missing from label means the region is a frozen, matched-standalone
	// pair (or, transiently, the boundary sentinel).
	label      map[region.ID]Label
	parent     map[region.ID]region.ID
	parentEdge map[region.ID]graph.EdgeRef
	root       map[region.ID]region.ID

	// mate/mateEdge describe the current perfect matching, independent of
	// tree membership. boundaryNode additionally records the physical
	// contact node for entries whose mate is boundaryMate.
	mate         map[region.ID]region.ID
	mateEdge     map[region.ID]graph.EdgeRef
	boundaryNode map[region.ID]graph.NodeID
}

func newDriver[M graph.Mask[M]](g *graph.Graph[M], fl *flooder.Flooder[M]) *driver[M] {
	return &driver[M]{
		g:            g,
		fl:           fl,
		label:        make(map[region.ID]Label),
		parent:       make(map[region.ID]region.ID),
		parentEdge:   make(map[region.ID]graph.EdgeRef),
		root:         make(map[region.ID]region.ID),
		mate:         make(map[region.ID]region.ID),
		mateEdge:     make(map[region.ID]graph.EdgeRef),
		boundaryNode: make(map[region.ID]graph.NodeID),
	}
}

// seed registers a freshly created region as a trivial, unattached "+" tree
// of size one: a virgin exposed detector, which is the base case the whole
// search grows outward from.
func (d *driver[M]) seed(id region.ID) {
	d.label[id] = Plus
	d.parent[id] = region.NilID
	d.root[id] = id
}

// handle dispatches a single driver-visible matching event.
func (d *driver[M]) handle(ev *flooder.MatchingEvent) error {
	switch ev.Kind {
	case flooder.RegionHitRegion:
		return d.handleHitRegion(ev.RegionA, ev.RegionB, ev.Edge)
	case flooder.RegionHitBoundary:
		return d.handleHitBoundary(ev.RegionA, ev.Node, ev.Edge)
	case flooder.DegenerateImplosion:
		return d.handleDegenerateImplosion(ev.RegionA, ev.Uncovered)
	case flooder.BlossomImplosion:
		return d.handleBlossomImplosion(ev.RegionA, ev.ImplodedChildren)
	default:
		return fmt.Errorf("mwpm: unexpected matching event kind %v", ev.Kind)
	}
}

func (d *driver[M]) handleHitRegion(a, b region.ID, edge graph.EdgeRef) error {
	la, hasA := d.label[a]
	lb, hasB := d.label[b]

	switch {
	case hasA && hasB && la == Plus && lb == Plus:
		if d.root[a] != d.root[b] {
			return d.augment(a, b, edge)
		}
		return nil // same tree; a +/+ collision within one tree cannot occur legitimately, drop defensively.

	case hasA && hasB && la == Plus && lb == Minus && d.root[a] == d.root[b]:
		return d.contractBlossom(a, b, edge)
	case hasA && hasB && la == Minus && lb == Plus && d.root[a] == d.root[b]:
		return d.contractBlossom(b, a, edge)

	case hasA && la == Plus && !hasB && d.growable(b):
		return d.growTree(a, b, edge)
	case hasB && lb == Plus && !hasA && d.growable(a):
		return d.growTree(b, a, edge)

	default:
		return nil // stale combination (e.g. a region resolved via an earlier event this round); drop.
	}
}

func (d *driver[M]) handleHitBoundary(id region.ID, node graph.NodeID, edge graph.EdgeRef) error {
	if _, ok := d.label[id]; !ok {
		return nil // stale
	}
	d.flipPathToRoot(id)
	d.mate[id] = boundaryMate
	d.mateEdge[id] = edge
	d.boundaryNode[id] = node
	d.dissolveTree(d.root[id])
	return nil
}

func (d *driver[M]) handleDegenerateImplosion(id region.ID, uncovered []graph.NodeID) error {
	if _, labeled := d.label[id]; labeled {
		// id is a "-" tree leaf whose old matching edge to its tree-child
		// mate has been fully consumed by the search: collapse the length-2
		// [id, mate] segment out of the tree, splicing anything mate
		// carried below it directly onto id's former parent. A "-" region
		// is only ever Shrinking while labeled, so a stale (unlabeled) id
		// cannot reach this branch: it would have been caught by the
		// flooder's own event-invalidation first.
		if mate, ok := d.mate[id]; ok && mate != boundaryMate {
			d.collapseDegenerateLeaf(id, mate)
		}
	}
	delete(d.label, id)
	delete(d.parent, id)
	delete(d.parentEdge, id)
	delete(d.root, id)
	delete(d.mate, id)
	delete(d.mateEdge, id)

	for _, node := range uncovered {
		fresh, err := d.fl.CreateRegion(node)
		if err != nil {
			return err
		}
		d.seed(fresh)
	}
	return nil
}

// collapseDegenerateLeaf removes id (a "-" tree leaf) and its tree-child
// mate together from the tree: the length-2 segment [id, mate] they form
// vanishes, since the pre-existing matched edge between them has been fully
// consumed by the search. mate is necessarily "+", so any subtree it itself
// carries (its own "-" children) is spliced directly onto id's former
// parent, preserving the tree's alternation one level up.
func (d *driver[M]) collapseDegenerateLeaf(id, mate region.ID) {
	parent := d.parent[id]

	delete(d.label, mate)
	delete(d.parent, mate)
	delete(d.parentEdge, mate)
	delete(d.root, mate)
	delete(d.mate, mate)
	delete(d.mateEdge, mate)

	for childID, p := range d.parent {
		if p == mate {
			d.parent[childID] = parent
		}
	}
}

// handleBlossomImplosion re-attaches the blossom's odd cycle after the
// flooder has already restored it to the top level. One cycle child (the
// one the blossom used to present to its parent, or - if the blossom was
// itself a frozen standalone pair - none) resumes the blossom's old tree
// position and matching; the remaining, necessarily even-length, run of
// children pairs up consecutively along the cycle's own edges as fresh
// frozen standalone pairs. See DESIGN.md for why this is a deliberate
// simplification rather than the exact minimum-weight re-routing.
func (d *driver[M]) handleBlossomImplosion(id region.ID, children []region.Child) error {
	if len(children) == 0 {
		return nil
	}

	label, hasLabel := d.label[id]
	parent := d.parent[id]
	parentEdge := d.parentEdge[id]
	root := d.root[id]
	mate, hasMate := d.mate[id]
	mateEdge := d.mateEdge[id]
	boundaryNode, hadBoundary := d.boundaryNode[id]

	delete(d.label, id)
	delete(d.parent, id)
	delete(d.parentEdge, id)
	delete(d.root, id)
	delete(d.mate, id)
	delete(d.mateEdge, id)
	delete(d.boundaryNode, id)
	if hasMate && mate != boundaryMate {
		delete(d.mate, mate)
		delete(d.mateEdge, mate)
	}

	rest := children
	if hasLabel {
		entry := children[0].Region
		rest = children[1:]

		d.label[entry] = label
		d.root[entry] = root
		d.parent[entry] = parent
		if parent != region.NilID {
			d.parentEdge[entry] = parentEdge
		}

		rate := region.Growing
		if label == Minus {
			rate = region.Shrinking
		}
		if err := d.fl.SetRegionGrowth(entry, rate); err != nil {
			return err
		}

		if hasMate {
			if mate == boundaryMate {
				d.mate[entry] = boundaryMate
				d.mateEdge[entry] = mateEdge
				if hadBoundary {
					d.boundaryNode[entry] = boundaryNode
				}
			} else {
				d.match(entry, mate, mateEdge)
			}
		}
	}

	for i := 0; i+1 < len(rest); i += 2 {
		a := rest[i].Region
		b := rest[i+1].Region
		d.match(a, b, rest[i].Edge)
		if err := d.fl.SetRegionGrowth(a, region.Frozen); err != nil {
			return err
		}
		if err := d.fl.SetRegionGrowth(b, region.Frozen); err != nil {
			return err
		}
	}
	return nil
}

// growable reports whether matched is an untouched, non-boundary matched
// standalone pair eligible to be pulled into a tree. A region already
// resolved against the boundary is permanently settled and never re-opened.
func (d *driver[M]) growable(matched region.ID) bool {
	mate, ok := d.mate[matched]
	return ok && mate != boundaryMate
}

// growTree attaches matched, a frozen standalone pair, underneath plus as a
// new "-"/"+" pair and resumes their growth in the appropriate directions.
func (d *driver[M]) growTree(plus, matched region.ID, edge graph.EdgeRef) error {
	mate, ok := d.mate[matched]
	if !ok || mate == boundaryMate {
		return fmt.Errorf("mwpm: growTree: region %d has no tree-growable mate", matched)
	}
	mateEdge := d.mateEdge[matched]

	d.attach(matched, plus, edge, Minus)
	d.attach(mate, matched, mateEdge, Plus)

	if err := d.fl.SetRegionGrowth(matched, region.Shrinking); err != nil {
		return err
	}
	return d.fl.SetRegionGrowth(mate, region.Growing)
}

func (d *driver[M]) attach(child, parent region.ID, edge graph.EdgeRef, label Label) {
	d.label[child] = label
	d.parent[child] = parent
	d.parentEdge[child] = edge
	d.root[child] = d.root[parent]
}

// augment flips the matching along the path from a to its tree root and
// from b to its tree root, matches a directly to b, and dissolves both
// trees back into frozen standalone pairs.
func (d *driver[M]) augment(a, b region.ID, edge graph.EdgeRef) error {
	rootA := d.root[a]
	rootB := d.root[b]
	d.flipPathToRoot(a)
	d.flipPathToRoot(b)
	d.match(a, b, edge)
	d.dissolveTree(rootA)
	if rootB != rootA {
		d.dissolveTree(rootB)
	}
	return nil
}

// flipPathToRoot walks from x to its tree root, replacing every old
// "-"/"+" matching pair along the way with the discovery edges that
// connected them, leaving the root (and x itself) to be matched by the
// caller.
func (d *driver[M]) flipPathToRoot(x region.ID) {
	cur := x
	for d.parent[cur] != region.NilID {
		minus := d.parent[cur]
		plusAbove := d.parent[minus]
		edge := d.parentEdge[minus]
		d.match(minus, plusAbove, edge)
		cur = plusAbove
	}
}

// pathToRoot returns id's tree ancestors, starting at id and ending at its
// tree root, inclusive.
func (d *driver[M]) pathToRoot(id region.ID) []region.ID {
	var path []region.ID
	cur := id
	for {
		path = append(path, cur)
		p := d.parent[cur]
		if p == region.NilID {
			break
		}
		cur = p
	}
	return path
}

// contractBlossom forms the odd cycle discovered by plusA ("+") colliding
// with minusB ("-") in the same tree, and asks the flooder to contract it
// into a new blossom that assumes their lowest common ancestor's old tree
// position.
func (d *driver[M]) contractBlossom(plusA, minusB region.ID, edge graph.EdgeRef) error {
	pathA := d.pathToRoot(plusA)
	pathB := d.pathToRoot(minusB)

	idxInA := make(map[region.ID]int, len(pathA))
	for i, r := range pathA {
		idxInA[r] = i
	}
	lcaIdxA, lcaIdxB := -1, -1
	for j, r := range pathB {
		if i, ok := idxInA[r]; ok {
			lcaIdxA, lcaIdxB = i, j
			break
		}
	}
	if lcaIdxA < 0 {
		return fmt.Errorf("mwpm: contractBlossom: regions %d and %d share no tree ancestor", plusA, minusB)
	}
	lca := pathA[lcaIdxA]

	segmentA := pathA[:lcaIdxA+1] // plusA ... lca
	segmentB := pathB[:lcaIdxB]   // minusB ... child-of-lca, excluding lca

	forward := make([]region.ID, len(segmentA))
	for i, r := range segmentA {
		forward[len(segmentA)-1-i] = r
	}
	// forward[0] == lca, forward[last] == plusA

	var cycle []region.Child
	for i := 0; i < len(forward)-1; i++ {
		child := forward[i+1]
		cycle = append(cycle, region.Child{Region: forward[i], Edge: d.parentEdge[child]})
	}
	cycle = append(cycle, region.Child{Region: plusA, Edge: edge})
	for _, r := range segmentB {
		cycle = append(cycle, region.Child{Region: r, Edge: d.parentEdge[r]})
	}

	blossomID, err := d.fl.CreateBlossom(cycle)
	if err != nil {
		return err
	}

	d.label[blossomID] = Plus
	d.parent[blossomID] = d.parent[lca]
	if d.parent[lca] != region.NilID {
		d.parentEdge[blossomID] = d.parentEdge[lca]
	}
	d.root[blossomID] = d.root[lca]

	contracted := make(map[region.ID]bool, len(cycle))
	for _, c := range cycle {
		contracted[c.Region] = true
	}
	for id, p := range d.parent {
		if contracted[p] && !contracted[id] {
			d.parent[id] = blossomID
		}
	}
	for _, c := range cycle {
		delete(d.label, c.Region)
		delete(d.parent, c.Region)
		delete(d.parentEdge, c.Region)
		delete(d.root, c.Region)
	}
	return nil
}

// dissolveTree clears tree-membership bookkeeping for every region
// belonging to root's tree. A member that still has a mate afterwards
// (every "-" node, and every "+" node below the root) is left frozen as a
// standalone pair; a member with no mate (only ever the tree's root,
// unless its caller is about to delete it outright) is still exposed and
// is re-seeded as a fresh free "+" region so the search keeps going.
func (d *driver[M]) dissolveTree(root region.ID) {
	var members []region.ID
	for id, r := range d.root {
		if r == root {
			members = append(members, id)
		}
	}
	for _, id := range members {
		delete(d.label, id)
		delete(d.parent, id)
		delete(d.parentEdge, id)
		delete(d.root, id)
	}
	for _, id := range members {
		if _, hasMate := d.mate[id]; hasMate {
			_ = d.fl.SetRegionGrowth(id, region.Frozen) // best-effort: id may already be gone (blossom contraction, implosion).
			continue
		}
		d.seed(id)
		_ = d.fl.SetRegionGrowth(id, region.Growing) // best-effort: id may already be gone.
	}
}

func (d *driver[M]) match(a, b region.ID, edge graph.EdgeRef) {
	d.mate[a] = b
	d.mate[b] = a
	d.mateEdge[a] = edge
	d.mateEdge[b] = edge
}

// run drives fl to completion, seeding a trivial tree for every excited
// detector and dispatching every event it reports until the queue empties.
func run[M graph.Mask[M]](g *graph.Graph[M], fl *flooder.Flooder[M], excited []graph.NodeID) (*driver[M], error) {
	d := newDriver(g, fl)
	for _, node := range excited {
		id, err := fl.CreateRegion(node)
		if err != nil {
			return nil, err
		}
		d.seed(id)
	}
	for {
		ev, err := fl.NextEvent()
		if err != nil {
			if errors.Is(err, flooder.ErrQueueEmpty) {
				return d, nil
			}
			return nil, err
		}
		if err := d.handle(ev); err != nil {
			return nil, err
		}
	}
}

// nodeMask returns node's observable-flip mask accumulated since the search
// began. A SearchFlooder (built with a PredecessorRecorder) answers this by
// walking its explicit predecessor chain; a MatchingFlooder (built with
// NoOpRecorder) has no such chain, so this falls back to the inline
// node-offset accumulation ObservableMask reads directly. See spec.md §4.6.
func (d *driver[M]) nodeMask(node graph.NodeID) M {
	if mask, ok := d.fl.PathMask(node); ok {
		return mask
	}
	return d.fl.ObservableMask(node)
}

// finalMask XORs together the observable contribution of every pair (and
// boundary attachment) in the driver's final matching.
func (d *driver[M]) finalMask() M {
	mask := d.g.ZeroMask()
	seen := make(map[region.ID]bool, len(d.mate))
	for a, b := range d.mate {
		if seen[a] {
			continue
		}
		seen[a] = true
		edge := d.mateEdge[a]
		if b == boundaryMate {
			mask = mask.Xor(d.nodeMask(d.boundaryNode[a])).Xor(d.g.Observable(edge))
			continue
		}
		seen[b] = true
		u, v := d.g.Endpoints(edge)
		mask = mask.Xor(d.nodeMask(u)).Xor(d.nodeMask(v)).Xor(d.g.Observable(edge))
	}
	return mask
}

// pairs returns the two literal graph nodes joined by the connecting edge
// of every non-boundary matched pair in the driver's final matching, each
// unordered pair reported once. Using the edge's own endpoints rather than
// the region IDs lets a caller recover per-node identity even when one side
// of a pair is a still-contracted blossom spanning several nodes.
func (d *driver[M]) pairs() [][2]graph.NodeID {
	var out [][2]graph.NodeID
	seen := make(map[region.ID]bool, len(d.mate))
	for a, b := range d.mate {
		if seen[a] || b == boundaryMate {
			continue
		}
		seen[a] = true
		seen[b] = true
		u, v := d.g.Endpoints(d.mateEdge[a])
		out = append(out, [2]graph.NodeID{u, v})
	}
	return out
}
