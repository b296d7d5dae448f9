package events

import "container/heap"

// Queue is a min-heap of *Event ordered by (Time, Seq): earlier time first,
// then insertion sequence among equal times. It mirrors the nodePQ shape in
// dijkstra.Dijkstra (Len/Less/Swap/Push/Pop on a slice of pointers) but
// carries *Event instead of a distance record.
//
// Queue never mutates a pushed Event in place and offers no decrease-key
// operation: a schedule change is expressed by bumping the relevant
// authority's Token (owned by package region) and pushing a fresh Event.
// Pop returns stale entries along with live ones; callers must compare each
// captured token against the authority's current token themselves and
// discard events that no longer match.
type Queue []*Event

// Len implements heap.Interface.
func (q Queue) Len() int { return len(q) }

// Less implements heap.Interface: earlier time wins; ties break by
// insertion sequence, giving FIFO order among simultaneous events.
func (q Queue) Less(i, j int) bool {
	if q[i].Time != q[j].Time {
		return q[i].Time < q[j].Time
	}
	return q[i].Seq < q[j].Seq
}

// Swap implements heap.Interface.
func (q Queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

// Push implements heap.Interface. Called by heap.Push; x must be *Event.
func (q *Queue) Push(x interface{}) { *q = append(*q, x.(*Event)) }

// Pop implements heap.Interface. Called by heap.Pop; returns interface{}
// that must be cast to *Event.
func (q *Queue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// NewQueue returns an empty, heap-initialised Queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(q)
	return q
}

// Schedule pushes ev onto the queue, restoring the heap invariant.
func (q *Queue) Schedule(ev *Event) { heap.Push(q, ev) }

// PopNext removes and returns the earliest-ordered event, or nil if the
// queue is empty. Callers are responsible for liveness-checking the
// returned event's captured tokens.
func (q *Queue) PopNext() *Event {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(q).(*Event)
}

// Peek returns the earliest-ordered event without removing it, or nil if
// the queue is empty.
func (q *Queue) Peek() *Event {
	if q.Len() == 0 {
		return nil
	}
	return (*q)[0]
}
