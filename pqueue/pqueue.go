// Package pqueue implements a binary min-heap priority queue whose ordering is
// supplied by the caller as a comparison function.
package pqueue

import (
	"github.com/chronos-tachyon/assert"
)

// StartCapacity is the number of slots allocated by New.  The backing array
// doubles in size each time it fills up.
const StartCapacity = 10

// PriorityQueue is a binary min-heap of items of type T.
//
// Items are opaque to the queue: it never copies what a pointer points at and
// never releases items.  The queue is not safe for concurrent use.
type PriorityQueue[T any] struct {
	data []T
	cmp  func(a, b T) int
}

// New constructs an empty PriorityQueue ordered by cmp.  cmp(a, b) must return
// a negative number if a sorts before b, zero if they are equivalent, and a
// positive number if a sorts after b.
func New[T any](cmp func(a, b T) int) *PriorityQueue[T] {
	assert.Assertf(cmp != nil, "pqueue.New: comparator is nil")
	return &PriorityQueue[T]{
		data: make([]T, 0, StartCapacity),
		cmp:  cmp,
	}
}

// Len returns the number of items currently held.
func (pq *PriorityQueue[T]) Len() int {
	return len(pq.data)
}

// Cap returns the number of slots in the backing array.
func (pq *PriorityQueue[T]) Cap() int {
	return cap(pq.data)
}

// Insert adds an item to the queue.  The item is placed in the next free slot
// and then moved toward the root until its parent no longer sorts after it.
func (pq *PriorityQueue[T]) Insert(item T) {
	if len(pq.data) == cap(pq.data) {
		pq.grow()
	}

	index := len(pq.data)
	pq.data = append(pq.data, item)
	for index > 0 {
		p := parent(index)
		if pq.cmp(pq.data[index], pq.data[p]) >= 0 {
			break
		}
		pq.swap(index, p)
		index = p
	}
}

// Peek returns the minimum item without removing it.  It panics if the queue
// is empty.
func (pq *PriorityQueue[T]) Peek() T {
	assert.Assertf(len(pq.data) != 0, "pqueue.Peek: queue is empty")
	return pq.data[0]
}

// ExtractMin removes and returns the minimum item.  It panics if the queue is
// empty; callers are expected to check Len first.
func (pq *PriorityQueue[T]) ExtractMin() T {
	assert.Assertf(len(pq.data) != 0, "pqueue.ExtractMin: queue is empty")

	var zero T
	last := len(pq.data) - 1
	item := pq.data[0]
	pq.data[0] = pq.data[last]
	pq.data[last] = zero
	pq.data = pq.data[:last]

	index := 0
	count := len(pq.data)
	for {
		smaller := index
		if l := leftChild(index); l < count && pq.cmp(pq.data[l], pq.data[smaller]) < 0 {
			smaller = l
		}
		if r := rightChild(index); r < count && pq.cmp(pq.data[r], pq.data[smaller]) < 0 {
			smaller = r
		}
		if smaller == index {
			break
		}
		pq.swap(index, smaller)
		index = smaller
	}
	return item
}

// Destroy releases the backing array.  The items themselves are owned by the
// caller and are left untouched.  The queue may be reused afterward; the next
// Insert allocates StartCapacity slots again.
func (pq *PriorityQueue[T]) Destroy() {
	pq.data = nil
}

func (pq *PriorityQueue[T]) grow() {
	length := cap(pq.data) * 2
	if length == 0 {
		length = StartCapacity
	}
	data := make([]T, len(pq.data), length)
	copy(data, pq.data)
	pq.data = data
}

func (pq *PriorityQueue[T]) swap(i, j int) {
	pq.data[i], pq.data[j] = pq.data[j], pq.data[i]
}

func parent(i int) int {
	return (i - 1) / 2
}

func leftChild(i int) int {
	return 2*i + 1
}

func rightChild(i int) int {
	return 2*i + 2
}
