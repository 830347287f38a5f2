package frontier

import "errors"

var (
	// ErrQueueEmpty is the error returned by Dequeue on a drained queue
	ErrQueueEmpty = errors.New("queue is empty")
)
