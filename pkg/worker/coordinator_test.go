package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jzx17/digitpool/internal/testutils"
	"github.com/jzx17/digitpool/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinator(t *testing.T) {
	tests := []struct {
		name        string
		computer    types.DigitComputer
		config      *Config
		expectError bool
	}{
		{
			name:        "nil computer should error",
			computer:    nil,
			config:      &Config{Workers: 4},
			expectError: true,
		},
		{
			name:        "nil config should use default",
			computer:    modTenComputer,
			config:      nil,
			expectError: false,
		},
		{
			name:        "valid config",
			computer:    modTenComputer,
			config:      &Config{Workers: 8},
			expectError: false,
		},
		{
			name:        "zero workers should error",
			computer:    modTenComputer,
			config:      &Config{Workers: 0},
			expectError: true,
		},
		{
			name:        "negative workers should error",
			computer:    modTenComputer,
			config:      &Config{Workers: -1},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coord, err := NewCoordinator(tt.computer, tt.config)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, coord)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, coord)
				if tt.config != nil {
					assert.Equal(t, tt.config.Workers, coord.Workers())
				} else {
					assert.Positive(t, coord.Workers())
				}
			}
		})
	}
}

func TestCoordinator_Run_ReferenceScenario(t *testing.T) {
	// N=10, W=4, compute(i) = i mod 10
	coord, err := NewCoordinator(modTenComputer, &Config{Workers: 4})
	require.NoError(t, err)

	result, err := coord.Run(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 0}, result.Digits)
}

func TestCoordinator_Run_SingleTaskManyWorkers(t *testing.T) {
	// N=1, W=8: one worker computes the digit, seven observe an empty
	// queue and terminate immediately.
	coord, err := NewCoordinator(modTenComputer, &Config{Workers: 8})
	require.NoError(t, err)

	result, err := coord.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []uint64{1}, result.Digits)

	var processed int64
	for _, ws := range result.Workers {
		processed += ws.Processed
	}
	assert.Equal(t, int64(1), processed)
	assert.Len(t, result.Workers, 8)
}

func TestCoordinator_Run_ExactlyOnce(t *testing.T) {
	const (
		digitCount  = 64
		workerCount = 64
	)

	calls := make([]int64, digitCount+1)
	counting := types.DigitComputerFunc(func(index int) (uint64, error) {
		atomic.AddInt64(&calls[index], 1)
		return uint64(index % 10), nil
	})

	coord, err := NewCoordinator(counting, &Config{Workers: workerCount})
	require.NoError(t, err)

	result, err := coord.Run(context.Background(), digitCount)
	require.NoError(t, err)
	require.Len(t, result.Digits, digitCount)

	for i := 1; i <= digitCount; i++ {
		assert.Equal(t, int64(1), atomic.LoadInt64(&calls[i]),
			"digit %d must be computed exactly once", i)
	}
}

func TestCoordinator_Run_OrderIndependent(t *testing.T) {
	// The assembled sequence must be identical for any worker count.
	scrambled := types.DigitComputerFunc(func(index int) (uint64, error) {
		return uint64((index * 31) % 97), nil
	})

	var reference []uint64
	for _, workers := range []int{1, 2, 8, 64} {
		t.Run(fmt.Sprintf("%d workers", workers), func(t *testing.T) {
			coord, err := NewCoordinator(scrambled, &Config{Workers: workers})
			require.NoError(t, err)

			result, err := coord.Run(context.Background(), 64)
			require.NoError(t, err)

			if reference == nil {
				reference = result.Digits
			} else {
				assert.Equal(t, reference, result.Digits)
			}
		})
	}
}

func TestCoordinator_Run_ComputeFailure(t *testing.T) {
	boom := errors.New("modular inverse failed")
	failing := types.DigitComputerFunc(func(index int) (uint64, error) {
		if index == 5 {
			return 0, boom
		}
		return uint64(index % 10), nil
	})

	var observed error
	config := &Config{
		Workers: 4,
		ErrorHandler: func(err error) error {
			observed = err
			return nil
		},
	}

	coord, err := NewCoordinator(failing, config)
	require.NoError(t, err)

	result, err := coord.Run(context.Background(), 10)
	assert.Nil(t, result, "no partial sequence may be emitted")
	require.Error(t, err)

	var computeErr *types.ComputeError
	require.True(t, errors.As(err, &computeErr))
	assert.Equal(t, 5, computeErr.Index)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, err, observed, "error handler must observe the failure")
}

func TestCoordinator_Run_InvalidDigitCount(t *testing.T) {
	coord, err := NewCoordinator(modTenComputer, nil)
	require.NoError(t, err)

	for _, count := range []int{0, -1, -1000} {
		result, err := coord.Run(context.Background(), count)
		assert.Error(t, err)
		assert.Nil(t, result)
	}
}

func TestCoordinator_Run_ContextCancelled(t *testing.T) {
	coord, err := NewCoordinator(modTenComputer, &Config{Workers: 2})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := coord.Run(ctx, 100)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCoordinator_Run_RunInProgress(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	blocking := types.DigitComputerFunc(func(index int) (uint64, error) {
		close(started)
		<-release
		return 0, nil
	})

	coord, err := NewCoordinator(blocking, &Config{Workers: 1})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, runErr := coord.Run(context.Background(), 1)
		assert.NoError(t, runErr)
	}()

	<-started
	assert.True(t, coord.IsRunning())

	_, err = coord.Run(context.Background(), 1)
	assert.ErrorIs(t, err, types.ErrRunInProgress)

	close(release)
	wg.Wait()
	assert.False(t, coord.IsRunning())
}

func TestCoordinator_Run_ProgressHook(t *testing.T) {
	const digitCount = 50

	var (
		mu      sync.Mutex
		started = make(map[int]int)
	)
	config := &Config{
		Workers: 8,
		Progress: func(index int) {
			mu.Lock()
			defer mu.Unlock()
			started[index]++
		},
	}

	coord, err := NewCoordinator(modTenComputer, config)
	require.NoError(t, err)

	_, err = coord.Run(context.Background(), digitCount)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, started, digitCount)
	for i := 1; i <= digitCount; i++ {
		assert.Equal(t, 1, started[i], "progress for digit %d", i)
	}
}

func TestCoordinator_Run_WorkerStatsSumToDigitCount(t *testing.T) {
	const digitCount = 200

	coord, err := NewCoordinator(modTenComputer, &Config{Workers: 4})
	require.NoError(t, err)

	result, err := coord.Run(context.Background(), digitCount)
	require.NoError(t, err)

	var processed int64
	for _, ws := range result.Workers {
		processed += ws.Processed
	}
	assert.Equal(t, int64(digitCount), processed)
}

func TestCoordinator_Run_DurationWithMockClock(t *testing.T) {
	const (
		digitCount = 10
		step       = 10 * time.Millisecond
	)

	mock := testutils.NewMockClock(t)

	advancing := types.DigitComputerFunc(func(index int) (uint64, error) {
		mock.Advance(step)
		return uint64(index % 10), nil
	})

	config := &Config{
		Workers: 1,
		Clock:   testutils.NewClockWrapper(mock),
	}

	coord, err := NewCoordinator(advancing, config)
	require.NoError(t, err)

	result, err := coord.Run(context.Background(), digitCount)
	require.NoError(t, err)

	// Each computation advances the mock clock once.
	assert.Equal(t, time.Duration(digitCount)*step, result.Duration)
}
