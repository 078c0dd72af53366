package workers

import (
	"context"
	"time"

	"github.com/tastools/tminterface-go/pkg/log"
	"github.com/tastools/tminterface-go/pkg/queue"
	"github.com/tastools/tminterface-go/pkg/repositories"
	"github.com/tastools/tminterface-go/pkg/repositories/models"
)

// SaveRunWorker drains recorded runs from a queue and persists them.
// Hooks enqueue finished runs without blocking on database writes.
type SaveRunWorker struct {
	repository repositories.Repository
	runQueue   queue.Queue
	interval   time.Duration
}

type NewSaveRunWorkerOptions struct {
	Repository repositories.Repository
	RunQueue   queue.Queue
	Interval   time.Duration
}

func NewSaveRunWorker(opts NewSaveRunWorkerOptions) *SaveRunWorker {
	return &SaveRunWorker{
		repository: opts.Repository,
		runQueue:   opts.RunQueue,
		interval:   opts.Interval,
	}
}

// Start drains the queue on each tick until the context is canceled.
// Remaining runs are flushed on the way out.
func (w *SaveRunWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.saveQueuedRuns(context.Background())
			return
		case <-ticker.C:
			w.saveQueuedRuns(ctx)
		}
	}
}

func (w *SaveRunWorker) saveQueuedRuns(ctx context.Context) {
	for _, item := range w.runQueue.ReadAllMessages() {
		run, ok := item.(*models.Run)
		if !ok {
			log.Error("Failed to save queued item: unexpected type %T", item)
			continue
		}
		if err := w.repository.SaveRun(ctx, run); err != nil {
			log.Error("Failed to save run %s: %v", run.ID, err)
		}
	}
}
