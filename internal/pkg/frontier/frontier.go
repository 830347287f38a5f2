// Package frontier holds the pending resources of a run. Insertion order is
// traversal order: both backends are strict FIFO queues, giving the crawl a
// deterministic breadth-first shape.
package frontier

import (
	"sync"

	"github.com/warmstack/primer/pkg/models"
)

// Queue is the work queue abstraction consumed by the crawler. The crawler
// is the only reader and writer, implementations only need to be safe for
// that single owner.
type Queue interface {
	Enqueue(resource *models.Resource) error

	// Dequeue returns the oldest pending resource, or ErrQueueEmpty.
	Dequeue() (*models.Resource, error)

	Len() int
	Close() error
}

// MemoryQueue is the default in-memory FIFO backend.
type MemoryQueue struct {
	mu    sync.Mutex
	items []*models.Resource
	head  int
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (q *MemoryQueue) Enqueue(resource *models.Resource) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, resource)
	return nil
}

func (q *MemoryQueue) Dequeue() (*models.Resource, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= len(q.items) {
		return nil, ErrQueueEmpty
	}

	resource := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	// Reclaim the consumed prefix once it dominates the backing slice
	if q.head > 1024 && q.head*2 > len(q.items) {
		q.items = append([]*models.Resource(nil), q.items[q.head:]...)
		q.head = 0
	}

	return resource, nil
}

func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

func (q *MemoryQueue) Close() error {
	return nil
}
