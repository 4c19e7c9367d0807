package hnsw

// queueItem is a node id with its distance to the current query.
type queueItem struct {
	Node     uint32
	Distance float32
}

// priorityQueue is a binary heap of queueItems with value-based storage.
// It does not implement container/heap to avoid interface overhead.
type priorityQueue struct {
	isMaxHeap bool
	items     []queueItem
}

func newPriorityQueue(isMaxHeap bool, capacity int) *priorityQueue {
	return &priorityQueue{
		isMaxHeap: isMaxHeap,
		items:     make([]queueItem, 0, capacity),
	}
}

// Len returns the number of elements in the heap.
func (pq *priorityQueue) Len() int {
	return len(pq.items)
}

// Top returns the top element of the heap.
func (pq *priorityQueue) Top() (queueItem, bool) {
	if len(pq.items) == 0 {
		return queueItem{}, false
	}
	return pq.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (pq *priorityQueue) Push(item queueItem) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// PushBounded inserts into a max heap holding at most capacity items.
// When full, the item replaces the top only if it is closer.
func (pq *priorityQueue) PushBounded(item queueItem, capacity int) {
	if len(pq.items) < capacity {
		pq.Push(item)
		return
	}
	if item.Distance < pq.items[0].Distance {
		pq.items[0] = item
		pq.siftDown(0)
	}
}

// Pop removes and returns the top element from the heap.
func (pq *priorityQueue) Pop() (queueItem, bool) {
	n := len(pq.items)
	if n == 0 {
		return queueItem{}, false
	}

	item := pq.items[0]
	pq.items[0] = pq.items[n-1]
	pq.items = pq.items[:n-1]

	if len(pq.items) > 0 {
		pq.siftDown(0)
	}

	return item, true
}

// DrainAscending empties a max heap and returns its items closest first.
func (pq *priorityQueue) DrainAscending() []queueItem {
	out := make([]queueItem, len(pq.items))
	for i := len(out) - 1; i >= 0; i-- {
		out[i], _ = pq.Pop()
	}
	return out
}

func (pq *priorityQueue) less(i, j int) bool {
	if pq.isMaxHeap {
		return pq.items[i].Distance > pq.items[j].Distance
	}
	return pq.items[i].Distance < pq.items[j].Distance
}

func (pq *priorityQueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !pq.less(i, parent) {
			break
		}
		pq.items[i], pq.items[parent] = pq.items[parent], pq.items[i]
		i = parent
	}
}

func (pq *priorityQueue) siftDown(i int) {
	n := len(pq.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		if right := left + 1; right < n && pq.less(right, left) {
			child = right
		}
		if !pq.less(child, i) {
			break
		}
		pq.items[i], pq.items[child] = pq.items[child], pq.items[i]
		i = child
	}
}
