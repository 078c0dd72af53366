package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastools/tminterface-go/pkg/repositories/models"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	ctx := context.Background()
	repo, err := NewSQLiteRepository(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close(ctx)
	})
	return repo
}

func newTestRun(serverName string, finishTime int32) *models.Run {
	return &models.Run{
		ID:         uuid.New().String(),
		ServerName: serverName,
		CreatedAt:  time.Now().UnixMilli(),
		FinishTime: finishTime,
		Checkpoints: []models.Checkpoint{
			{Index: 0, Time: finishTime / 2, StuntsScore: 0},
			{Index: 1, Time: finishTime, StuntsScore: 40},
		},
	}
}

func TestSQLiteRepository_SaveLoadRun(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	run := newTestRun("TMInterface0", 48520)
	require.NoError(t, repo.SaveRun(ctx, run))

	loaded, err := repo.LoadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, loaded)
}

func TestSQLiteRepository_LoadRun_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.LoadRun(context.Background(), uuid.New().String())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestSQLiteRepository_SaveRun_Replace(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	run := newTestRun("TMInterface0", 48520)
	require.NoError(t, repo.SaveRun(ctx, run))

	run.FinishTime = 47990
	run.Checkpoints = run.Checkpoints[:1]
	require.NoError(t, repo.SaveRun(ctx, run))

	loaded, err := repo.LoadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(47990), loaded.FinishTime)
	assert.Len(t, loaded.Checkpoints, 1)
}

func TestSQLiteRepository_ListRuns(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := newTestRun("TMInterface0", 48520)
	first.CreatedAt = 1000
	second := newTestRun("TMInterface0", 47320)
	second.CreatedAt = 2000
	other := newTestRun("TMInterface1", 50000)
	require.NoError(t, repo.SaveRun(ctx, first))
	require.NoError(t, repo.SaveRun(ctx, second))
	require.NoError(t, repo.SaveRun(ctx, other))

	runs, err := repo.ListRuns(ctx, "TMInterface0")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first.ID, runs[0].ID)
	assert.Equal(t, second.ID, runs[1].ID)
}

func TestSQLiteRepository_BestRun(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	slow := newTestRun("TMInterface0", 48520)
	fast := newTestRun("TMInterface0", 47320)
	require.NoError(t, repo.SaveRun(ctx, slow))
	require.NoError(t, repo.SaveRun(ctx, fast))

	best, err := repo.BestRun(ctx, "TMInterface0")
	require.NoError(t, err)
	assert.Equal(t, fast.ID, best.ID)
}

func TestSQLiteRepository_BestRun_Empty(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.BestRun(context.Background(), "TMInterface0")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
