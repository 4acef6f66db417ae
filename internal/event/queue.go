package event

import "container/heap"

// Queue is a min-heap of Events ordered by (Timestamp, insertion
// sequence): Pop always returns the smallest timestamp, and ties break
// in the order events were Pushed. The kernel dispatches two things
// in-line at the current timestamp instead of pushing them: a
// zero-startup hot activation, and a freed worker picking up the head of
// the pending-job queue.
//
// The heap storage and bubble-up/bubble-down shape follows the pattern
// of a binary-heap priority queue with a secondary FIFO tie-break; here
// the tie-break key is the push sequence rather than a wall-clock
// creation time, since the queue operates entirely in virtual time.
type Queue struct {
	items  innerHeap
	nextID int
}

// New creates an empty event queue.
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.items)
	return q
}

// Push adds an event to the queue at the given timestamp.
func (q *Queue) Push(timestamp int, typ Type, payload any) {
	heap.Push(&q.items, &Event{
		Timestamp: timestamp,
		Type:      typ,
		Payload:   payload,
		seq:       q.nextID,
	})
	q.nextID++
}

// Pop removes and returns the event with the smallest timestamp; among
// equal timestamps, the earliest-pushed event wins. Returns false if the
// queue is empty.
func (q *Queue) Pop() (Event, bool) {
	if q.items.Len() == 0 {
		return Event{}, false
	}
	e := heap.Pop(&q.items).(*Event)
	return *e, true
}

// Peek returns the next event without removing it.
func (q *Queue) Peek() (Event, bool) {
	if q.items.Len() == 0 {
		return Event{}, false
	}
	return *q.items[0], true
}

// IsEmpty reports whether the queue has no pending events.
func (q *Queue) IsEmpty() bool {
	return q.items.Len() == 0
}

// Size returns the number of pending events.
func (q *Queue) Size() int {
	return q.items.Len()
}

// innerHeap implements container/heap.Interface. A proposed remove-by-
// identity operation existed in the source this queue is modeled on but
// is unused by the kernel and is deliberately not implemented here.
type innerHeap []*Event

func (h innerHeap) Len() int { return len(h) }

func (h innerHeap) Less(i, j int) bool {
	if h[i].Timestamp != h[j].Timestamp {
		return h[i].Timestamp < h[j].Timestamp
	}
	return h[i].seq < h[j].seq
}

func (h innerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *innerHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
