package renderer

import (
	"context"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RowTask represents one scanline to render
type RowTask struct {
	Row int
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row     int
	Pixels  []core.Vec3 // Averaged linear colors, left to right
	Samples int         // Camera rays traced for this row
	Err     error
}

// RowFunc renders a single row. It must only read shared state.
type RowFunc func(row int) ([]core.Vec3, int)

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	numWorkers  int
	render      RowFunc
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks sizes the queues so that neither Submit nor the workers ever block.
func NewWorkerPool(numWorkers, maxTasks int, render RowFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultNumWorkers()
	}
	return &WorkerPool{
		taskQueue:   make(chan RowTask, maxTasks),
		resultQueue: make(chan RowResult, maxTasks),
		numWorkers:  numWorkers,
		render:      render,
	}
}

// Start begins all workers. Once ctx is done, remaining tasks are answered with ctx.Err()
// instead of being rendered.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
}

// Stop closes the task queue, waits for workers to finish and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result; ok is false once the pool is stopped and drained
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) run(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if err := ctx.Err(); err != nil {
			wp.resultQueue <- RowResult{Row: task.Row, Err: err}
			continue
		}
		pixels, samples := wp.render(task.Row)
		wp.resultQueue <- RowResult{Row: task.Row, Pixels: pixels, Samples: samples}
	}
}
