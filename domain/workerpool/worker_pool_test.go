package workerpool_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/osmosis-labs/limitswap/domain/workerpool"
)

func TestJobExecution(t *testing.T) {
	jobs := make(chan Job[int], 1)
	results := make(chan JobResult[int], 1)

	worker := NewWorker(1, jobs, results)
	var wg sync.WaitGroup
	wg.Add(1)
	worker.Start(&wg)

	jobs <- Job[int]{Task: func() (int, error) { return 0, errors.New("test error") }}

	select {
	case result := <-results:
		require.EqualError(t, result.Err, "test error")
	case <-time.After(1 * time.Second):
		t.Fatal("job result was not received in time")
	}

	// the worker exits once the queue is closed
	close(jobs)
	wg.Wait()
}

func TestDispatcherDrainsQueueOnStop(t *testing.T) {
	dispatcher := NewDispatcher[int](2)
	dispatcher.Start()

	go func() {
		for i := 0; i < 10; i++ {
			i := i
			dispatcher.JobQueue <- Job[int]{Task: func() (int, error) { return i, nil }}
		}
		dispatcher.Stop()
	}()

	sum := 0
	for result := range dispatcher.ResultQueue {
		require.NoError(t, result.Err)
		sum += result.Result
	}
	require.Equal(t, 45, sum)
}

func TestRunJobs(t *testing.T) {
	tests := []struct {
		name       string
		numWorkers int
		numJobs    int
	}{
		{name: "no jobs", numWorkers: 2, numJobs: 0},
		{name: "fewer jobs than workers", numWorkers: 8, numJobs: 3},
		{name: "more jobs than workers", numWorkers: 3, numJobs: 50},
		{name: "non-positive workers", numWorkers: 0, numJobs: 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var executed atomic.Int32

			jobs := make([]Job[int], 0, tc.numJobs)
			for i := 0; i < tc.numJobs; i++ {
				i := i
				jobs = append(jobs, Job[int]{Task: func() (int, error) {
					executed.Add(1)
					if i%7 == 3 {
						return 0, errors.New("odd job")
					}
					return i * i, nil
				}})
			}

			results := RunJobs(tc.numWorkers, jobs)

			require.Len(t, results, tc.numJobs)
			require.Equal(t, int32(tc.numJobs), executed.Load())
			for i, result := range results {
				if i%7 == 3 {
					require.Error(t, result.Err)
					continue
				}
				require.NoError(t, result.Err)
				require.Equal(t, i*i, result.Result)
			}
		})
	}
}

func TestRunJobsRecoversPanics(t *testing.T) {
	results := RunJobs(2, []Job[string]{
		{Task: func() (string, error) { return "ok", nil }},
		{Task: func() (string, error) { panic("boom") }},
	})

	require.NoError(t, results[0].Err)
	require.Equal(t, "ok", results[0].Result)
	require.ErrorContains(t, results[1].Err, "boom")
}
