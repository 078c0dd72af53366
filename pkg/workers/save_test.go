package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastools/tminterface-go/pkg/queue"
	"github.com/tastools/tminterface-go/pkg/repositories/models"
)

type recordingRepository struct {
	mu    sync.Mutex
	saved []*models.Run
}

func (r *recordingRepository) Close(ctx context.Context) error { return nil }

func (r *recordingRepository) SaveRun(ctx context.Context, run *models.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, run)
	return nil
}

func (r *recordingRepository) LoadRun(ctx context.Context, id string) (*models.Run, error) {
	return nil, nil
}

func (r *recordingRepository) ListRuns(ctx context.Context, serverName string) ([]*models.Run, error) {
	return nil, nil
}

func (r *recordingRepository) BestRun(ctx context.Context, serverName string) (*models.Run, error) {
	return nil, nil
}

func (r *recordingRepository) savedRuns() []*models.Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Run(nil), r.saved...)
}

func TestSaveRunWorker(t *testing.T) {
	repo := &recordingRepository{}
	runQueue := queue.NewInMemoryQueue(10)
	worker := NewSaveRunWorker(NewSaveRunWorkerOptions{
		Repository: repo,
		RunQueue:   runQueue,
		Interval:   time.Millisecond,
	})

	run := &models.Run{
		ID:         uuid.New().String(),
		ServerName: "TMInterface0",
		FinishTime: 48520,
	}
	require.NoError(t, runQueue.Enqueue(run))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(repo.savedRuns()) == 1
	}, time.Second, time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, run, repo.savedRuns()[0])
}

func TestSaveRunWorker_FlushOnStop(t *testing.T) {
	repo := &recordingRepository{}
	runQueue := queue.NewInMemoryQueue(10)
	worker := NewSaveRunWorker(NewSaveRunWorkerOptions{
		Repository: repo,
		RunQueue:   runQueue,
		Interval:   time.Hour,
	})

	run := &models.Run{ID: uuid.New().String(), ServerName: "TMInterface0"}
	require.NoError(t, runQueue.Enqueue(run))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	cancel()
	<-done
	require.Len(t, repo.savedRuns(), 1)
	assert.Equal(t, run.ID, repo.savedRuns()[0].ID)
}

func TestSaveRunWorker_SkipsUnknownItems(t *testing.T) {
	repo := &recordingRepository{}
	runQueue := queue.NewInMemoryQueue(10)
	worker := NewSaveRunWorker(NewSaveRunWorkerOptions{
		Repository: repo,
		RunQueue:   runQueue,
		Interval:   time.Hour,
	})

	require.NoError(t, runQueue.Enqueue("not a run"))
	run := &models.Run{ID: uuid.New().String(), ServerName: "TMInterface0"}
	require.NoError(t, runQueue.Enqueue(run))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker.Start(ctx)

	require.Len(t, repo.savedRuns(), 1)
	assert.Equal(t, run.ID, repo.savedRuns()[0].ID)
}
