package layout

import (
	"container/heap"
	"sync"
)

// request is a request to lay out a component, queued while layouts are
// suspended.
type request struct {
	c     Component
	depth int    // depth of the component in the component tree
	seq   uint64 // order of arrival
	index int    // position in the heap, maintained by the heap.Interface methods
}

// A requestQueue implements heap.Interface and holds layout requests.
// Requests pop top-down: components closer to the root first, ties broken
// by order of arrival.
type requestQueue struct {
	mutex    *sync.Mutex
	requests []*request
	byID     map[string]*request
	seq      uint64
}

func newRequestQueue() *requestQueue {
	return &requestQueue{
		mutex: &sync.Mutex{},
		byID:  make(map[string]*request),
	}
}

// Len is part of interface container/heap.
func (q requestQueue) Len() int { return len(q.requests) }

// Less is part of interface container/heap.
func (q requestQueue) Less(i, j int) bool {
	if q.requests[i].depth != q.requests[j].depth {
		return q.requests[i].depth < q.requests[j].depth
	}
	return q.requests[i].seq < q.requests[j].seq
}

// Swap is part of interface container/heap.
func (q requestQueue) Swap(i, j int) {
	q.requests[i], q.requests[j] = q.requests[j], q.requests[i]
	q.requests[i].index = i
	q.requests[j].index = j
}

// PushRequest queues a component. A component already queued is not queued
// twice, but it is moved if it has changed its depth in the meantime.
func (q *requestQueue) PushRequest(c Component) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if r, ok := q.byID[c.ID()]; ok {
		q.update(r, depth(c))
		return false
	}
	q.seq++
	r := &request{c: c, depth: depth(c), seq: q.seq}
	q.byID[c.ID()] = r
	heap.Push(q, r)
	return true
}

// update re-sorts a queued request after its component has moved within the
// component tree.
func (q *requestQueue) update(r *request, d int) {
	if r.depth == d {
		return
	}
	r.depth = d
	heap.Fix(q, r.index)
}

// Pending returns the number of queued requests.
func (q *requestQueue) Pending() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.requests)
}

// PopRequest returns the next request in top-down order, or nil.
func (q *requestQueue) PopRequest() Component {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if len(q.requests) == 0 {
		return nil
	}
	r := heap.Pop(q).(*request)
	delete(q.byID, r.c.ID())
	return r.c
}

// Push is part of interface container/heap.
// Not intended for client use.
func (q *requestQueue) Push(x interface{}) {
	n := len(q.requests)
	r := x.(*request)
	r.index = n
	q.requests = append(q.requests, r)
}

// Pop is part of interface container/heap.
// Not intended for client use.
func (q *requestQueue) Pop() interface{} {
	old := q.requests
	n := len(old)
	r := old[n-1]
	old[n-1] = nil // avoid memory leak
	r.index = -1   // for safety
	q.requests = old[0 : n-1]
	return r
}
