/*
Package worker provides the concurrent execution pipeline that turns per-digit
computation tasks into an ordered digit sequence.

# Overview

A run proceeds through five phases:
  - Populate: one task per digit index is pushed into a FIFO queue before any
    worker starts
  - Dispatch: a fixed pool of W workers is started
  - Drain: each worker repeatedly pops a task, computes its digit and inserts
    the value into the result store until the queue is empty
  - Join: the coordinator blocks until every worker has terminated
  - Collect: results are read back in index order to produce the output

# Concurrency Model

The task queue and the result store are the only shared mutable state. Each
encapsulates its own mutex and exposes only atomic operations, so workers
never acquire a lock directly and never hold both locks at once. The
check-then-pop race at the end of the drain phase is expected: the loser of
the race observes types.ErrQueueEmpty and terminates cleanly.

Every enqueued index is computed exactly once regardless of the worker count,
and the assembled output is identical for any W. No ordering is guaranteed on
when individual results arrive, only on the final sequence.

# Failure Semantics

A failed digit computation aborts the whole run: the coordinator cancels the
remaining workers' drain loops, no partial sequence is returned, and the
error identifies the failing index. A computation that has already started
always runs to completion; cancellation is observed between tasks only.

# Usage

	computer := digits.NewDecimal()

	coord, err := worker.NewCoordinator(computer, &worker.Config{Workers: 8})
	if err != nil {
		log.Fatal(err)
	}

	result, err := coord.Run(ctx, 1000)
	if err != nil {
		log.Fatal(err)
	}

	for _, d := range result.Digits {
		fmt.Print(d)
	}
*/
package worker
