package flooder

import (
	"github.com/blossomdecode/sparseblossom/events"
	"github.com/blossomdecode/sparseblossom/graph"
	"github.com/blossomdecode/sparseblossom/region"
)

// MatchingEventKind is the driver-visible event taxonomy NextEvent
// produces. Internal absorptions are never surfaced as a MatchingEvent.
type MatchingEventKind int

const (
	// RegionHitRegion: two distinct top-level regions collided along Edge.
	RegionHitRegion MatchingEventKind = iota
	// RegionHitBoundary: a region's growing edge reached the boundary.
	RegionHitBoundary
	// DegenerateImplosion: a leaf region's radius reached zero.
	DegenerateImplosion
	// BlossomImplosion: a blossom's radius reached zero and has already
	// been expanded back into its children by the time this is returned.
	BlossomImplosion
)

// String renders a MatchingEventKind for diagnostics.
func (k MatchingEventKind) String() string {
	switch k {
	case RegionHitRegion:
		return "RegionHitRegion"
	case RegionHitBoundary:
		return "RegionHitBoundary"
	case DegenerateImplosion:
		return "DegenerateImplosion"
	case BlossomImplosion:
		return "BlossomImplosion"
	default:
		return "MatchingEventKind(?)"
	}
}

// MatchingEvent is what NextEvent returns to the driver.
type MatchingEvent struct {
	Kind MatchingEventKind
	Time events.Time

	// RegionA, RegionB are populated for RegionHitRegion (both) and
	// RegionHitBoundary/DegenerateImplosion/BlossomImplosion (RegionA
	// only).
	RegionA, RegionB region.ID

	// Node and Edge are populated for RegionHitRegion and
	// RegionHitBoundary: the connecting edge, and the edge's endpoint on
	// RegionA's side (for RegionHitBoundary, the node whose growth reached
	// the boundary).
	Node graph.NodeID
	Edge graph.EdgeRef

	// ImplodedChildren is populated for BlossomImplosion: the blossom's
	// odd cycle, in order, now restored to the top level.
	ImplodedChildren []region.Child

	// Uncovered is populated for DegenerateImplosion: every detector node
	// that was owned by the leaf and has reverted to the uncovered state.
	// The driver must give each a fresh region to keep searching.
	Uncovered []graph.NodeID
}
