// Package queue provides the thread-safe FIFO task queue drained by workers.
//
// The queue is a standalone type composed of a slice plus an internally-owned
// mutex; callers never acquire the lock themselves, they call operations that
// are each atomic. Tasks are pushed exactly once during queue population and
// popped exactly once by whichever worker wins the race for them.
package queue

import (
	"sync"

	"github.com/jzx17/digitpool/pkg/types"
)

// TaskQueue is a FIFO queue of digit computation tasks safe for concurrent
// use. The zero value is not ready to use; create one with NewTaskQueue.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []types.Task
}

// NewTaskQueue creates an empty task queue
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// Push appends a task to the tail of the queue
func (q *TaskQueue) Push(task types.Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
}

// Pop removes and returns the oldest task. It returns types.ErrQueueEmpty
// when no tasks remain; during the drain phase two workers may both observe
// a non-empty queue and race for the last task, so callers must treat the
// error as the normal end-of-work signal rather than a fault.
func (q *TaskQueue) Pop() (types.Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return types.Task{}, types.ErrQueueEmpty
	}

	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	return task, nil
}

// IsEmpty reports whether no tasks remain. The answer may be stale by the
// time the caller acts on it; Pop remains the authoritative check.
func (q *TaskQueue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks) == 0
}

// Len returns the current number of queued tasks
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
