package renderer

import (
	"context"
	"sync"
)

// PartitionTask represents a partition rendering task for the worker pool
type PartitionTask struct {
	Partition Partition
	Seed      int64 // Seed of the partition's private sampler
}

// WorkerPool manages parallel partition rendering
type WorkerPool struct {
	taskQueue   chan PartitionTask
	resultQueue chan PartitionResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual partition rendering tasks
type Worker struct {
	ID          int
	renderer    *PixelRenderer
	taskQueue   chan PartitionTask
	resultQueue chan PartitionResult
	progress    chan<- Progress
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// The queues are sized for maxTasks so submitting never blocks.
func NewWorkerPool(renderer *PixelRenderer, numWorkers, maxTasks int, progress chan<- Progress) *WorkerPool {
	numWorkers = max(numWorkers, 1)
	maxTasks = max(maxTasks, numWorkers)

	wp := &WorkerPool{
		taskQueue:   make(chan PartitionTask, maxTasks),
		resultQueue: make(chan PartitionResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    renderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			progress:    progress,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a partition task to the worker pool
func (wp *WorkerPool) SubmitTask(task PartitionTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed partition result
func (wp *WorkerPool) GetResult() (PartitionResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- w.render(ctx, task)
	}
}

// render runs one task on the worker's goroutine
func (w *Worker) render(ctx context.Context, task PartitionTask) PartitionResult {
	return w.renderer.renderTask(ctx, task, w.progress)
}
