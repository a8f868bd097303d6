// Package workerpool runs tasks on a bounded number of goroutines.
package workerpool

import "sync"

// Job represents the job to be run
type Job[T any] struct {
	Task func() (T, error)
}

// JobResult represents the result of a job
type JobResult[T any] struct {
	Result T
	Err    error
}

// Worker executes jobs from a shared queue until the queue is closed.
type Worker[T any] struct {
	ID      int
	jobs    <-chan Job[T]
	results chan<- JobResult[T]
}

func NewWorker[T any](id int, jobs <-chan Job[T], results chan<- JobResult[T]) Worker[T] {
	return Worker[T]{
		ID:      id,
		jobs:    jobs,
		results: results,
	}
}

// Start runs the worker in a new goroutine. wg is marked done once the queue is drained.
func (w Worker[T]) Start(wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()
		for job := range w.jobs {
			result, err := job.Task()
			w.results <- JobResult[T]{Result: result, Err: err}
		}
	}()
}

// Dispatcher feeds JobQueue to a fixed set of workers.
// ResultQueue is unbuffered and must be consumed while jobs are queued.
type Dispatcher[T any] struct {
	JobQueue    chan Job[T]
	ResultQueue chan JobResult[T]

	numWorkers int
	wg         sync.WaitGroup
}

func NewDispatcher[T any](numWorkers int) *Dispatcher[T] {
	return &Dispatcher[T]{
		JobQueue:    make(chan Job[T]),
		ResultQueue: make(chan JobResult[T]),
		numWorkers:  numWorkers,
	}
}

// Start launches the workers. ResultQueue is closed after Stop once every queued job has finished.
func (d *Dispatcher[T]) Start() {
	d.wg.Add(d.numWorkers)
	for i := 0; i < d.numWorkers; i++ {
		NewWorker(i+1, d.JobQueue, d.ResultQueue).Start(&d.wg)
	}

	go func() {
		d.wg.Wait()
		close(d.ResultQueue)
	}()
}

// Stop closes the job queue. Jobs already queued still run.
func (d *Dispatcher[T]) Stop() {
	close(d.JobQueue)
}
