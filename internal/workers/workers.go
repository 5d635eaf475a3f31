package workers

import "context"

type Workers struct {
	workers []Worker
}

// Add registers a worker with the aggregate. Nil workers are ignored so
// callers can register conditionally-constructed workers without guards.
func (w *Workers) Add(worker Worker) {
	if worker == nil {
		return
	}
	w.workers = append(w.workers, worker)
}

// Run starts every registered worker in its own goroutine. The workers stop
// when ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		go worker.Run(ctx)
	}
}
