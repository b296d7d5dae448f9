package region

import (
	"fmt"

	"github.com/blossomdecode/sparseblossom/events"
)

// ErrFreedRegion is returned when an operation targets a region that has
// already been freed.
var ErrFreedRegion = fmt.Errorf("region: operation on freed region")

// Arena owns the backing storage for every Region created during one
// decode. Regions are addressed by ID and never relocated; the slice only
// grows, except across a Reset between independent decodes.
type Arena struct {
	regions []Region
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// Reset discards every region, recycling the backing slice for a new
// decode run. IDs issued before Reset must not be used afterward.
func (a *Arena) Reset() {
	a.regions = a.regions[:0]
}

// Get returns the region addressed by id. Panics if id is out of range,
// which indicates a caller bug (holding a stale ID across a Reset, or
// fabricating one).
func (a *Arena) Get(id ID) *Region {
	return &a.regions[id]
}

// NewLeaf creates a new top-level leaf region at the given creation time
// with growth rate Growing, per spec: create_region always starts a leaf
// growing at rate +1.
func (a *Arena) NewLeaf(now int64) ID {
	id := ID(len(a.regions))
	a.regions = append(a.regions, Region{
		id:         id,
		kind:       Leaf,
		rate:       Growing,
		baseRadius: 0,
		baseTime:   now,
		parent:     NilID,
	})
	return id
}

// NewBlossom contracts an odd alternating cycle of top-level regions (and
// their connecting edges) into a new top-level blossom growing at rate
// Growing. Each child is detached from the top-level forest: its parent is
// set to the new blossom's ID and its parentOffset is frozen at its
// effective radius at the time of contraction, so the blossom's later
// growth is simply added on top.
func (a *Arena) NewBlossom(now int64, cycle []Child) ID {
	id := ID(len(a.regions))
	a.regions = append(a.regions, Region{
		id:         id,
		kind:       Blossom,
		rate:       Growing,
		baseRadius: 0,
		baseTime:   now,
		parent:     NilID,
		children:   cycle,
	})
	for _, c := range cycle {
		child := a.Get(c.Region)
		child.parentOffset = a.EffectiveRadius(c.Region, now)
		child.parent = id
	}
	return id
}

// Expand dissolves a blossom, returning its children to the top level.
// Each child's new base radius/time anchor its effective radius at the
// moment of expansion, so its own future growth continues seamlessly.
// Expand returns the children in cycle order.
func (a *Arena) Expand(now int64, blossomID ID) []Child {
	b := a.Get(blossomID)
	if b.kind != Blossom {
		panic("region: Expand called on a non-blossom region")
	}
	children := b.children
	for _, c := range children {
		child := a.Get(c.Region)
		child.baseRadius = a.EffectiveRadius(c.Region, now)
		child.baseTime = now
		child.parent = NilID
		child.parentOffset = 0
	}
	b.children = nil
	return children
}

// SetGrowth rebases the region's affine radius function at now and assigns
// a new rate, then bumps the region's shrink token so any previously
// scheduled shrink event for it is invalidated. It returns the new token.
func (a *Arena) SetGrowth(now int64, id ID, rate Rate) events.Token {
	r := a.Get(id)
	r.baseRadius = a.EffectiveRadius(id, now)
	r.baseTime = now
	r.rate = rate
	r.shrinkToken++
	return r.shrinkToken
}

// Free marks a region as no longer part of the live forest. A freed
// region's ID must not be dereferenced again until the next Reset.
func (a *Arena) Free(id ID) {
	r := a.Get(id)
	r.freed = true
}

// TryGet returns the region addressed by id, or ErrFreedRegion if it has
// already been freed. Callers processing events popped from the queue
// should use this instead of Get: a freed region's slot still exists in
// the arena, so only this check (combined with token comparison) tells
// stale references apart from live ones.
func (a *Arena) TryGet(id ID) (*Region, error) {
	r := a.Get(id)
	if r.freed {
		return nil, fmt.Errorf("%w: region %d", ErrFreedRegion, id)
	}
	return r, nil
}

// EffectiveRadius returns the region's covered radius at logical time t,
// walking the parent chain: a top-level region evaluates its own affine
// function directly; a contained region adds its frozen parentOffset to
// its parent's current effective radius.
func (a *Arena) EffectiveRadius(id ID, t int64) int64 {
	r := a.Get(id)
	if r.parent == NilID {
		return r.baseRadius + int64(r.rate)*(t-r.baseTime)
	}
	return r.parentOffset + a.EffectiveRadius(r.parent, t)
}

// Root walks the parent chain to the top-level region ultimately
// containing id (id itself, if it is already top-level).
func (a *Arena) Root(id ID) ID {
	for {
		r := a.Get(id)
		if r.parent == NilID {
			return id
		}
		id = r.parent
	}
}
