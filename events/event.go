package events

import "github.com/blossomdecode/sparseblossom/graph"

// Time is a logical timestamp. Unlike wall-clock time it is a pure integer
// scalar advanced only by the flooder popping events off the queue.
type Time int64

// Token is a per-authority version counter. An authority (a region or a
// node's schedule slot) bumps its token whenever a change invalidates
// events that were scheduled against its previous state; an Event captures
// the token in effect at scheduling time so a later Pop can tell whether it
// is still live.
type Token uint64

// AuthorityID identifies the schedulable entity (a region, in practice) a
// captured Token belongs to. It is deliberately independent of any
// concrete region type so that package region can depend on events without
// creating an import cycle.
type AuthorityID int32

// Kind distinguishes the two tentative-event shapes the queue can carry.
type Kind int

const (
	// NeighborInteraction fires when two covered radii meet along a shared
	// edge, or when a single covered radius reaches the boundary.
	NeighborInteraction Kind = iota
	// RegionShrink fires when a shrinking region's radius reaches zero.
	RegionShrink
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case NeighborInteraction:
		return "NeighborInteraction"
	case RegionShrink:
		return "RegionShrink"
	default:
		return "Kind(?)"
	}
}

// NeighborPayload describes a pending neighbor-interaction event between
// detector node NodeA and either detector node NodeB or, if NodeB is
// graph.Boundary, the virtual boundary. TokenA and TokenB are the node
// schedule-slot tokens captured at scheduling time; the owning flooder
// compares them against the nodes' current tokens to decide liveness, and
// resolves which regions (if any) currently cover NodeA/NodeB itself since
// that can change between scheduling and firing.
type NeighborPayload struct {
	NodeA, NodeB   graph.NodeID
	Edge           graph.EdgeRef
	TokenA, TokenB Token
}

// NilAuthority is the sentinel AuthorityID meaning "no region".
const NilAuthority AuthorityID = -1

// ShrinkPayload describes a pending region-shrink event for a single
// region.
type ShrinkPayload struct {
	Region AuthorityID
	Token  Token
}

// Event is one entry in the Queue. Exactly one of Neighbor or Shrink is
// populated, matching Kind.
type Event struct {
	Kind Kind
	Time Time
	Seq  uint64

	Neighbor *NeighborPayload
	Shrink   *ShrinkPayload
}
