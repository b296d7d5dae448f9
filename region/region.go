package region

import (
	"github.com/blossomdecode/sparseblossom/events"
	"github.com/blossomdecode/sparseblossom/graph"
)

// ID addresses a Region within an Arena. It is stable for the region's
// entire lifetime, including while contained inside a blossom.
type ID int32

// NilID is the sentinel ID meaning "no region" (used for a top-level
// region's parent).
const NilID ID = -1

// Kind distinguishes a single-node leaf region from a blossom formed by
// contracting an odd alternating cycle of regions.
type Kind int

const (
	// Leaf owns exactly one detector node at creation, though its coverage
	// may grow to absorb further nodes as it expands (tracked by package
	// flooder, not here).
	Leaf Kind = iota
	// Blossom is formed from an odd cycle of contained child regions.
	Blossom
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	if k == Blossom {
		return "Blossom"
	}
	return "Leaf"
}

// Rate is a region's growth rate: it either grows, is frozen, or shrinks.
type Rate int8

const (
	// Shrinking decreases the covered radius over time.
	Shrinking Rate = -1
	// Frozen holds the covered radius constant.
	Frozen Rate = 0
	// Growing increases the covered radius over time.
	Growing Rate = 1
)

// Child is one link of a blossom's ordered odd cycle: the contained region
// and the graph edge connecting it to the next child in cycle order.
type Child struct {
	Region ID
	Edge   graph.EdgeRef
}

// Region is either a leaf or a blossom, tracked by an Arena.
type Region struct {
	id   ID
	kind Kind
	rate Rate

	// baseRadius/baseTime anchor the affine radius function for a
	// top-level region: radius(t) = baseRadius + rate*(t-baseTime).
	baseRadius int64
	baseTime   int64

	// parent is NilID for a top-level region, or the enclosing blossom's
	// ID for a contained region. parentOffset is the frozen distance from
	// the parent's effective radius at the moment this region was
	// contained; it is meaningless when parent == NilID.
	parent       ID
	parentOffset int64

	// children is the ordered odd cycle, non-empty only for a Blossom.
	children []Child

	// shrinkToken is bumped whenever a change invalidates a previously
	// scheduled shrink event for this region.
	shrinkToken events.Token

	freed bool
}

// ID returns the region's arena identity.
func (r *Region) ID() ID { return r.id }

// Kind returns Leaf or Blossom.
func (r *Region) Kind() Kind { return r.kind }

// Rate returns the region's current growth rate.
func (r *Region) Rate() Rate { return r.rate }

// Parent returns the enclosing blossom's ID, or NilID if top-level.
func (r *Region) Parent() ID { return r.parent }

// IsTopLevel reports whether the region is a root of the alternating-tree
// forest (has no enclosing blossom).
func (r *Region) IsTopLevel() bool { return r.parent == NilID }

// Children returns the region's ordered odd cycle. Empty for a Leaf.
func (r *Region) Children() []Child { return r.children }

// ShrinkToken returns the token that must be captured by any event
// scheduled against this region's shrink deadline.
func (r *Region) ShrinkToken() events.Token { return r.shrinkToken }

// IsFreed reports whether the region has been removed from the live
// forest by Arena.Free.
func (r *Region) IsFreed() bool { return r.freed }
