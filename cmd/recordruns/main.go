package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tastools/tminterface-go/pkg/client"
	"github.com/tastools/tminterface-go/pkg/log"
	"github.com/tastools/tminterface-go/pkg/queue"
	"github.com/tastools/tminterface-go/pkg/repositories"
	"github.com/tastools/tminterface-go/pkg/repositories/models"
	"github.com/tastools/tminterface-go/pkg/version"
	"github.com/tastools/tminterface-go/pkg/workers"
)

const saveInterval = 1 * time.Second

// recorder persists every finished run with its checkpoint splits.
type recorder struct {
	client.NoopClient
	runQueue queue.Queue
}

func (r *recorder) OnRegistered(iface *client.TMInterface) {
	log.Info("Recording runs from %s", iface.ServerName())
}

func (r *recorder) OnCheckpointCountChanged(iface *client.TMInterface, current, target int32) {
	if current != target {
		return
	}
	data, err := iface.GetCheckpointState()
	if err != nil {
		log.Error("Failed to get checkpoint state: %v", err)
		return
	}
	if data == nil || len(data.Times) == 0 {
		return
	}

	run := &models.Run{
		ID:         uuid.New().String(),
		ServerName: iface.ServerName(),
		CreatedAt:  time.Now().UnixMilli(),
		FinishTime: data.Times[len(data.Times)-1].Time,
	}
	for i, ct := range data.Times {
		run.Checkpoints = append(run.Checkpoints, models.Checkpoint{
			Index:       int32(i),
			Time:        ct.Time,
			StuntsScore: ct.StuntsScore,
		})
	}

	if err := r.runQueue.Enqueue(run); err != nil {
		log.Error("Failed to enqueue run: %v", err)
		return
	}
	log.Info("Recorded run %s with finish time %d", run.ID, run.FinishTime)
}

func (r *recorder) OnError(iface *client.TMInterface, err error) {
	log.Error("Client error: %v", err)
}

func main() {
	serverName := flag.String("server", client.DefaultServerName, "TMInterface server name to connect to")
	dbPath := flag.String("db", "runs.db", "SQLite database path, ignored when DATABASE_URL is set")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)

	log.Info("Starting recordruns version %s", version.Get())

	ctx := context.Background()

	var repository repositories.Repository
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		repository, err = repositories.NewPostgresRepository(ctx, connStr)
	} else {
		repository, err = repositories.NewSQLiteRepository(ctx, *dbPath)
	}
	if err != nil {
		panic(fmt.Sprintf("Failed to open repository: %v", err))
	}
	defer repository.Close(ctx)

	runQueue := queue.NewInMemoryQueue(100)
	worker := workers.NewSaveRunWorker(workers.NewSaveRunWorkerOptions{
		Repository: repository,
		RunQueue:   runQueue,
		Interval:   saveInterval,
	})

	workerCtx, stopWorker := context.WithCancel(ctx)
	workerDone := make(chan struct{})
	go func() {
		worker.Start(workerCtx)
		close(workerDone)
	}()

	runErr := client.Run(ctx, &recorder{runQueue: runQueue}, client.NewTMInterfaceOptions{
		ServerName: *serverName,
	})

	stopWorker()
	<-workerDone

	if runErr != nil {
		panic(fmt.Sprintf("Failed to run client: %v", runErr))
	}
}
