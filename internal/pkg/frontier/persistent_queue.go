package frontier

import (
	"errors"
	"path"

	"github.com/beeker1121/goque"

	"github.com/warmstack/primer/pkg/models"
)

// PersistentQueue is a goque (leveldb) backed FIFO living under the job
// path, so a killed run can be resumed with its frontier intact.
type PersistentQueue struct {
	queue *goque.Queue
}

// NewPersistentQueue opens the on-disk queue under jobPath.
func NewPersistentQueue(jobPath string) (*PersistentQueue, error) {
	queue, err := goque.OpenQueue(path.Join(jobPath, "queue"))
	if err != nil {
		return nil, err
	}

	return &PersistentQueue{queue: queue}, nil
}

func (q *PersistentQueue) Enqueue(resource *models.Resource) error {
	_, err := q.queue.EnqueueObject(resource)
	return err
}

func (q *PersistentQueue) Dequeue() (*models.Resource, error) {
	item, err := q.queue.Dequeue()
	if err != nil {
		if errors.Is(err, goque.ErrEmpty) {
			return nil, ErrQueueEmpty
		}
		return nil, err
	}

	resource := new(models.Resource)
	if err := item.ToObject(resource); err != nil {
		return nil, err
	}

	return resource, nil
}

func (q *PersistentQueue) Len() int {
	return int(q.queue.Length())
}

func (q *PersistentQueue) Close() error {
	return q.queue.Close()
}
