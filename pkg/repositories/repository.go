package repositories

import (
	"context"

	"github.com/tastools/tminterface-go/pkg/repositories/models"
)

type Repository interface {
	Close(ctx context.Context) error
	SaveRun(ctx context.Context, run *models.Run) error
	LoadRun(ctx context.Context, id string) (*models.Run, error)
	ListRuns(ctx context.Context, serverName string) ([]*models.Run, error)
	BestRun(ctx context.Context, serverName string) (*models.Run, error)
}
