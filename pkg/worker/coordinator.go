package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jzx17/digitpool/pkg/queue"
	"github.com/jzx17/digitpool/pkg/store"
	"github.com/jzx17/digitpool/pkg/types"
)

// Config defines configuration for a coordinated run
type Config struct {
	// Workers is the number of concurrent workers
	Workers int

	// Progress is an optional hook invoked as each task is picked up
	Progress types.ProgressFunc

	// ErrorHandler observes a compute failure before the run aborts
	ErrorHandler types.ErrorHandler

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock
}

// DefaultConfig returns default configuration: one worker per CPU
func DefaultConfig() *Config {
	return &Config{
		Workers: runtime.NumCPU(),
		Clock:   types.NewRealClock(),
	}
}

// Result holds the output of a completed run
type Result struct {
	// Digits is the computed sequence, index 1 first
	Digits []uint64

	// Duration is the wall time of the whole run
	Duration time.Duration

	// Workers holds per-worker statistics
	Workers []Stats
}

// Coordinator owns one run of the pipeline: it populates the task queue up
// front, dispatches a fixed pool of workers to drain it, joins them, then
// collects the results in index order.
//
// The queue and the result store are created per run and shared by
// reference with every worker; they are never promoted to package-level
// state.
type Coordinator struct {
	config   *Config
	computer types.DigitComputer

	// state management: 0 idle, 1 running
	state int32
}

// NewCoordinator creates a coordinator for the given digit computer
func NewCoordinator(computer types.DigitComputer, config *Config) (*Coordinator, error) {
	if computer == nil {
		return nil, fmt.Errorf("digit computer cannot be nil")
	}

	if config == nil {
		config = DefaultConfig()
	}

	// parameter validation
	if config.Workers <= 0 {
		return nil, fmt.Errorf("worker count must be positive, got %d", config.Workers)
	}

	// Ensure clock is set
	if config.Clock == nil {
		config.Clock = types.NewRealClock()
	}

	return &Coordinator{
		config:   config,
		computer: computer,
	}, nil
}

// Workers returns the configured worker count
func (c *Coordinator) Workers() int {
	return c.config.Workers
}

// IsRunning checks if a run is currently in progress
func (c *Coordinator) IsRunning() bool {
	return atomic.LoadInt32(&c.state) == 1
}

// Run computes digits 1..digitCount and returns them in index order.
//
// The run either completes fully or fails as a whole: a single failed
// computation aborts everything and no partial sequence is ever returned.
// Completion order across workers is nondeterministic; the returned
// sequence is not.
func (c *Coordinator) Run(ctx context.Context, digitCount int) (*Result, error) {
	if digitCount <= 0 {
		return nil, fmt.Errorf("digit count must be positive, got %d", digitCount)
	}

	if !atomic.CompareAndSwapInt32(&c.state, 0, 1) {
		return nil, types.ErrRunInProgress
	}
	defer atomic.StoreInt32(&c.state, 0)

	start := c.config.Clock.Now()

	// Populate: every task is enqueued before any worker starts, so the
	// queue only ever shrinks during the drain phase.
	tasks := queue.NewTaskQueue()
	for i := 1; i <= digitCount; i++ {
		tasks.Push(types.NewTask(i))
	}
	results := store.NewResultStore()

	// Dispatch. The run context lets the coordinator pull the remaining
	// workers out of their drain loops once one of them fails.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := make([]*Worker, c.config.Workers)
	errs := make(chan error, c.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < c.config.Workers; i++ {
		workers[i] = NewWorker(i, tasks, results, c.computer, c.config.Progress)

		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			if err := w.Run(runCtx); err != nil {
				errs <- err
				cancel()
			}
		}(workers[i])
	}

	// Join: barrier until every worker reaches its terminal state.
	wg.Wait()
	close(errs)

	if err := firstRunError(errs, ctx); err != nil {
		c.handleError(err)
		return nil, err
	}

	// Collect: impose index order on the output. A missing entry here is
	// a completeness violation and fails the whole run.
	digits := make([]uint64, digitCount)
	for i := 1; i <= digitCount; i++ {
		value, err := results.Get(i)
		if err != nil {
			return nil, fmt.Errorf("collecting results: %w", err)
		}
		digits[i-1] = value
	}

	stats := make([]Stats, len(workers))
	for i, w := range workers {
		stats[i] = w.Stats()
	}

	return &Result{
		Digits:   digits,
		Duration: c.config.Clock.Since(start),
		Workers:  stats,
	}, nil
}

// firstRunError picks the error that caused the run to fail. Workers that
// were cancelled because a sibling failed report the context error; the
// compute error that triggered the cancellation takes precedence over it.
func firstRunError(errs <-chan error, ctx context.Context) error {
	var fallback error
	for err := range errs {
		var computeErr *types.ComputeError
		if errors.As(err, &computeErr) {
			return err
		}
		if fallback == nil {
			fallback = err
		}
	}

	if fallback != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return fallback
}

func (c *Coordinator) handleError(err error) {
	if c.config.ErrorHandler == nil {
		return
	}
	// The handler only observes; its return value does not alter the
	// abort decision.
	_ = c.config.ErrorHandler(err)
}
