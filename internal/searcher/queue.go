package searcher

// Item represents a candidate in the priority queue.
type Item struct {
	Index    int    // Index is the candidate's position in the dataset.
	Distance uint64 // Distance is the priority of the item in the queue.
}

// Before reports whether a ranks ahead of b: smaller distance first, and on
// equal distance the smaller dataset index. The order is total, so the
// selected set does not depend on insertion order.
func (a Item) Before(b Item) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Index < b.Index
}

// PriorityQueue implements a binary heap holding Items.
// It does NOT implement container/heap to avoid interface overhead.
type PriorityQueue struct {
	isMaxHeap bool   // true = max heap, false = min heap
	items     []Item // Value-based storage
}

// NewPriorityQueue creates a new priority queue with room for capacity items.
func NewPriorityQueue(isMaxHeap bool, capacity int) *PriorityQueue {
	if capacity < 0 {
		capacity = 0
	}
	return &PriorityQueue{
		isMaxHeap: isMaxHeap,
		items:     make([]Item, 0, capacity),
	}
}

// Len returns the number of elements in the heap.
func (pq *PriorityQueue) Len() int {
	return len(pq.items)
}

// TopItem returns the top element of the heap.
func (pq *PriorityQueue) TopItem() (Item, bool) {
	if len(pq.items) == 0 {
		return Item{}, false
	}
	return pq.items[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue) PushItem(item Item) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// PushItemBounded inserts an item into a bounded heap.
// If the heap is full and the new item is worse than the top, it is skipped.
// If the heap is full and the new item is better, the top is replaced.
func (pq *PriorityQueue) PushItemBounded(item Item, capacity int) {
	if capacity <= 0 {
		return
	}
	if len(pq.items) < capacity {
		pq.PushItem(item)
		return
	}

	top, _ := pq.TopItem()
	if pq.isMaxHeap {
		// MaxHeap: top is the worst of the nearest candidates.
		if item.Before(top) {
			pq.items[0] = item
			pq.siftDown(0)
		}
	} else {
		// MinHeap: top is the worst of the farthest candidates.
		if top.Before(item) {
			pq.items[0] = item
			pq.siftDown(0)
		}
	}
}

// PopItem removes and returns the top element from the heap.
func (pq *PriorityQueue) PopItem() (Item, bool) {
	n := len(pq.items)
	if n == 0 {
		return Item{}, false
	}

	item := pq.items[0]
	pq.items[0] = pq.items[n-1]
	pq.items = pq.items[:n-1]

	if len(pq.items) > 0 {
		pq.siftDown(0)
	}

	return item, true
}

// Drain empties the heap and returns its items in ascending order
// (per Item.Before), regardless of heap kind.
func (pq *PriorityQueue) Drain() []Item {
	n := len(pq.items)
	out := make([]Item, n)
	for i := 0; i < n; i++ {
		item, _ := pq.PopItem()
		if pq.isMaxHeap {
			out[n-1-i] = item
		} else {
			out[i] = item
		}
	}
	return out
}

// Less reports whether the element with index i should sit above the
// element with index j.
func (pq *PriorityQueue) Less(i, j int) bool {
	if pq.isMaxHeap {
		return pq.items[j].Before(pq.items[i])
	}
	return pq.items[i].Before(pq.items[j])
}

// Swap swaps the elements with indexes i and j.
func (pq *PriorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

// siftUp moves the element at index i up the heap until the heap invariant is restored.
func (pq *PriorityQueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !pq.Less(i, parent) {
			break
		}
		pq.Swap(i, parent)
		i = parent
	}
}

// siftDown moves the element at index i down the heap until the heap invariant is restored.
func (pq *PriorityQueue) siftDown(i int) {
	n := len(pq.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		right := left + 1
		if right < n && pq.Less(right, left) {
			child = right
		}
		if !pq.Less(child, i) {
			break
		}
		pq.Swap(i, child)
		i = child
	}
}
