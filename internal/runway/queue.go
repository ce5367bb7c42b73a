package runway

import (
	"container/heap"
	"time"

	"github.com/bfunes/runwaysim/internal/descriptor"
)

// Ticket is the handle an aircraft agent holds from Enqueue through
// admission. It is also the heap element stored in a waitQueue, so the
// same pointer an agent receives from Enqueue is the one Admit mutates and
// returns — identity is preserved end to end, which is what lets FIFO
// ordering and low-fuel promotion operate on a specific waiting aircraft
// rather than a proxy for one.
//
// seq is a monotonically increasing enqueue sequence number shared across
// every class and tier: the queue orders on seq rather than wake time, so
// FIFO-within-tier ordering is never disturbed by same-second
// fuel-deadline races, and the control loop can compare seq across classes
// to break low-fuel/emergency ties by true arrival order.
type Ticket struct {
	seq        uint64
	class      descriptor.Class
	lowFuel    bool
	admitted   bool
	direction  descriptor.Direction
	enqueuedAt time.Time
	index      int // maintained by ticketHeap for heap.Remove
}

// ticketHeap is a container/heap priority queue ordered by seq, supporting
// arbitrary-position removal so promote-to-low-fuel can lift a specific
// ticket out of the normal-tier queue without disturbing the others.
type ticketHeap []*Ticket

func (h ticketHeap) Len() int { return len(h) }

func (h ticketHeap) Less(i, j int) bool { return h[i].seq < h[j].seq }

func (h ticketHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *ticketHeap) Push(x any) {
	t := x.(*Ticket)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *ticketHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// waitQueue wraps a ticketHeap with the heap.Interface calls the rest of
// the package needs, so callers never touch container/heap directly.
type waitQueue struct {
	h ticketHeap
}

func (q *waitQueue) push(t *Ticket) {
	heap.Push(&q.h, t)
}

func (q *waitQueue) peek() *Ticket {
	if len(q.h) == 0 {
		return nil
	}
	return q.h[0]
}

func (q *waitQueue) popFront() *Ticket {
	if len(q.h) == 0 {
		return nil
	}
	return heap.Pop(&q.h).(*Ticket)
}

func (q *waitQueue) remove(t *Ticket) bool {
	if t.index < 0 || t.index >= len(q.h) || q.h[t.index] != t {
		return false
	}
	heap.Remove(&q.h, t.index)
	return true
}

func (q *waitQueue) len() int { return len(q.h) }
