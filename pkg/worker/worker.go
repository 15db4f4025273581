package worker

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/jzx17/digitpool/pkg/queue"
	"github.com/jzx17/digitpool/pkg/store"
	"github.com/jzx17/digitpool/pkg/types"
)

// Worker drains the shared task queue: it repeatedly pops a task, computes
// the digit at the task's index and inserts the value into the shared
// result store, until the queue is observed empty or the run context is
// cancelled. Workers never talk to each other; the queue and store are the
// only coordination points, and a worker never holds both locks at once.
type Worker struct {
	id       int
	queue    *queue.TaskQueue
	store    *store.ResultStore
	computer types.DigitComputer
	progress types.ProgressFunc

	// statistics
	processed int64
}

// NewWorker creates a worker bound to the shared queue and store
func NewWorker(id int, q *queue.TaskQueue, s *store.ResultStore, computer types.DigitComputer, progress types.ProgressFunc) *Worker {
	return &Worker{
		id:       id,
		queue:    q,
		store:    s,
		computer: computer,
		progress: progress,
	}
}

// ID returns the worker ID
func (w *Worker) ID() int {
	return w.id
}

// Processed returns the number of tasks this worker has completed
func (w *Worker) Processed() int64 {
	return atomic.LoadInt64(&w.processed)
}

// Run executes the drain loop until the queue is empty. It returns nil on a
// clean drain, ctx.Err() if the run was aborted, or a *types.ComputeError
// if a digit computation failed. A started computation always runs to
// completion; cancellation is only observed between tasks.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if w.queue.IsEmpty() {
			return nil
		}

		task, err := w.queue.Pop()
		if errors.Is(err, types.ErrQueueEmpty) {
			// Another worker raced us to the last task between the
			// emptiness check and the pop. Normal end of work.
			return nil
		}

		if w.progress != nil {
			w.progress(task.Index)
		}

		value, err := w.computer.Compute(task.Index)
		if err != nil {
			return types.NewComputeError(task.Index, err)
		}

		w.store.Insert(task.Index, value)
		atomic.AddInt64(&w.processed, 1)
	}
}

// Stats gets Worker statistics
func (w *Worker) Stats() Stats {
	return Stats{
		ID:        w.id,
		Processed: w.Processed(),
	}
}

// Stats defines per-worker statistics for a completed run
type Stats struct {
	ID        int
	Processed int64
}
