// Package region implements the arena of growing regions and blossoms that
// the flooder schedules events against.
//
// A region's covered radius is an affine function of logical time: a
// top-level region's radius at time t is baseRadius + rate*(t-baseTime). A
// region contained inside a blossom instead tracks a frozen offset from its
// parent's current effective radius, captured once at the moment it was
// absorbed into the blossom; EffectiveRadius walks the parent chain to
// resolve this recursively.
//
// Regions live in an Arena and are addressed by a stable int32 ID rather
// than a pointer, per the same rationale a free-list-backed graph or pool
// allocator uses: IDs survive containment changes without invalidating
// anyone else's reference, and the whole arena can be reset between runs
// without a garbage collection pass. A freed region's slot is never reused
// mid-run; only Arena.Reset recycles the backing storage, for the next
// independent decode.
package region
