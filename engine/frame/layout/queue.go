package layout

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// runQueue is an insertion-ordered set of layout runs.
type runQueue struct {
	set *linkedhashset.Set
}

func newRunQueue() runQueue {
	return runQueue{set: linkedhashset.New()}
}

// add appends r, if not already queued. Returns true if r has been added.
func (q runQueue) add(r *layoutRun) bool {
	if q.set.Contains(r) {
		return false
	}
	q.set.Add(r)
	return true
}

func (q runQueue) remove(r *layoutRun) {
	q.set.Remove(r)
}

func (q runQueue) contains(r *layoutRun) bool {
	return q.set.Contains(r)
}

func (q runQueue) empty() bool {
	return q.set.Empty()
}

func (q runQueue) size() int {
	return q.set.Size()
}

// drain returns all queued runs in FIFO order and clears the queue.
func (q runQueue) drain() []*layoutRun {
	values := q.set.Values()
	q.set.Clear()
	runs := make([]*layoutRun, len(values))
	for i, v := range values {
		runs[i] = v.(*layoutRun)
	}
	return runs
}

func (q runQueue) runs() []*layoutRun {
	values := q.set.Values()
	runs := make([]*layoutRun, len(values))
	for i, v := range values {
		runs[i] = v.(*layoutRun)
	}
	return runs
}

// itemQueue is an insertion-ordered set of items, used for flushing.
type itemQueue struct {
	set *linkedhashset.Set
}

func newItemQueue() itemQueue {
	return itemQueue{set: linkedhashset.New()}
}

func (q itemQueue) add(item *Item) {
	q.set.Add(item)
}

func (q itemQueue) remove(item *Item) {
	q.set.Remove(item)
}

func (q itemQueue) empty() bool {
	return q.set.Empty()
}

func (q itemQueue) drain() []*Item {
	values := q.set.Values()
	q.set.Clear()
	items := make([]*Item, len(values))
	for i, v := range values {
		items[i] = v.(*Item)
	}
	return items
}
