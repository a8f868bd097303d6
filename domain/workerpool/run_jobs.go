package workerpool

import "fmt"

type indexedResult[T any] struct {
	index  int
	result T
}

// RunJobs runs jobs on at most numWorkers workers and returns their results in job order.
// A panicking job is reported as an error.
func RunJobs[T any](numWorkers int, jobs []Job[T]) []JobResult[T] {
	if len(jobs) == 0 {
		return nil
	}
	if numWorkers <= 0 || numWorkers > len(jobs) {
		numWorkers = len(jobs)
	}

	dispatcher := NewDispatcher[indexedResult[T]](numWorkers)
	dispatcher.Start()

	go func() {
		defer dispatcher.Stop()
		for i, job := range jobs {
			i, job := i, job
			dispatcher.JobQueue <- Job[indexedResult[T]]{
				Task: func() (result indexedResult[T], err error) {
					result.index = i
					defer func() {
						if r := recover(); r != nil {
							err = fmt.Errorf("job %d panicked: %v", i, r)
						}
					}()

					result.result, err = job.Task()
					return result, err
				},
			}
		}
	}()

	results := make([]JobResult[T], len(jobs))
	for r := range dispatcher.ResultQueue {
		results[r.Result.index] = JobResult[T]{Result: r.Result.result, Err: r.Err}
	}

	return results
}
