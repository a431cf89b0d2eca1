// Package workers manages the application's background workers. It defines
// the Worker interface and an aggregate that starts every registered worker
// in a unified way.
package workers

import "context"

// Worker is a long-running background task. Start launches the worker's
// goroutine (non-blocking); Stop cancels it and waits for it to exit.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Workers aggregates background workers so the binary starts and stops
// them as one unit.
type Workers struct {
	workers []Worker
}

// NewWorkers groups the given workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start launches every registered worker, in registration order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops every registered worker in reverse registration order and
// blocks until all have exited.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
