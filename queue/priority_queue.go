package queue

import "container/heap"

// item wraps an Entry for use with container/heap; index is maintained
// by the heap.Interface methods so Remove can locate an arbitrary entry.
type item struct {
	entry Entry
	index int
}

// heapSlice implements heap.Interface over a slice of items, ordered by
// the wrapped entry's next run time.
type heapSlice []*item

func (h heapSlice) Len() int { return len(h) }

func (h heapSlice) Less(i, j int) bool {
	return h[i].entry.NextRunTime() < h[j].entry.NextRunTime()
}

func (h heapSlice) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *heapSlice) Push(x any) {
	it := x.(*item)
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *heapSlice) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// PriorityQueue is an in-memory JobQueue implementation backed by
// container/heap, ordered by each entry's next run time.
type PriorityQueue struct {
	items heapSlice
	index map[string]*item
}

var _ JobQueue = (*PriorityQueue)(nil)

// NewPriorityQueue returns a new, empty PriorityQueue.
func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{
		items: make(heapSlice, 0),
		index: make(map[string]*item),
	}
}

// Push inserts a new entry into the queue.
func (pq *PriorityQueue) Push(entry Entry) error {
	key := entry.JobKey().String()
	if existing, ok := pq.index[key]; ok {
		existing.entry = entry
		heap.Fix(&pq.items, existing.index)
		return nil
	}
	it := &item{entry: entry}
	heap.Push(&pq.items, it)
	pq.index[key] = it
	return nil
}

// Pop removes and returns the entry with the earliest next run time.
func (pq *PriorityQueue) Pop() (Entry, error) {
	if pq.Size() == 0 {
		return nil, ErrQueueEmpty
	}
	it := heap.Pop(&pq.items).(*item)
	delete(pq.index, it.entry.JobKey().String())
	return it.entry, nil
}

// Head returns the entry with the earliest next run time without
// removing it from the queue.
func (pq *PriorityQueue) Head() (Entry, error) {
	if pq.Size() == 0 {
		return nil, ErrQueueEmpty
	}
	return pq.items[0].entry, nil
}

// Get returns the entry identified by key without removing it.
func (pq *PriorityQueue) Get(key Key) (Entry, error) {
	it, ok := pq.index[key.String()]
	if !ok {
		return nil, jobNotFoundError(key)
	}
	return it.entry, nil
}

// Remove removes and returns the entry identified by key.
func (pq *PriorityQueue) Remove(key Key) (Entry, error) {
	it, ok := pq.index[key.String()]
	if !ok {
		return nil, jobNotFoundError(key)
	}
	heap.Remove(&pq.items, it.index)
	delete(pq.index, key.String())
	return it.entry, nil
}

// Size returns the number of entries in the queue.
func (pq *PriorityQueue) Size() int {
	return len(pq.items)
}

// Clear removes all entries from the queue.
func (pq *PriorityQueue) Clear() error {
	pq.items = make(heapSlice, 0)
	pq.index = make(map[string]*item)
	return nil
}

// ScheduledJobs returns all entries currently held by the queue, in no
// particular order.
func (pq *PriorityQueue) ScheduledJobs() []Entry {
	entries := make([]Entry, len(pq.items))
	for i, it := range pq.items {
		entries[i] = it.entry
	}
	return entries
}
