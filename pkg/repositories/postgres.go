package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tastools/tminterface-go/pkg/repositories/models"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	server_name TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	finish_time INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_checkpoints (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	cp_index INTEGER NOT NULL,
	time INTEGER NOT NULL,
	stunts_score INTEGER NOT NULL,
	PRIMARY KEY (run_id, cp_index)
);
CREATE INDEX IF NOT EXISTS idx_runs_server_name ON runs (server_name);
`

func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveRun(ctx context.Context, run *models.Run) error {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	q := `
	INSERT INTO runs (id, server_name, created_at, finish_time) VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE SET server_name = $2, created_at = $3, finish_time = $4;
	`
	if _, err := tx.Exec(ctx, q, run.ID, run.ServerName, run.CreatedAt, run.FinishTime); err != nil {
		return fmt.Errorf("failed to insert run: %v", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM run_checkpoints WHERE run_id = $1;`, run.ID); err != nil {
		return fmt.Errorf("failed to clear run checkpoints: %v", err)
	}

	for _, cp := range run.Checkpoints {
		q := `
		INSERT INTO run_checkpoints (run_id, cp_index, time, stunts_score)
		VALUES ($1, $2, $3, $4);
		`
		if _, err := tx.Exec(ctx, q, run.ID, cp.Index, cp.Time, cp.StuntsScore); err != nil {
			return fmt.Errorf("failed to insert run checkpoint: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) LoadRun(ctx context.Context, id string) (*models.Run, error) {
	q := `
	SELECT id, server_name, created_at, finish_time FROM runs WHERE id = $1;
	`
	run := &models.Run{}
	if err := r.conn.QueryRow(ctx, q, id).Scan(&run.ID, &run.ServerName, &run.CreatedAt, &run.FinishTime); err != nil {
		if err == pgx.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan run: %v", err)
	}

	checkpoints, err := r.loadCheckpoints(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Checkpoints = checkpoints

	return run, nil
}

func (r *PostgresRepository) ListRuns(ctx context.Context, serverName string) ([]*models.Run, error) {
	q := `
	SELECT id, server_name, created_at, finish_time FROM runs
	WHERE server_name = $1 ORDER BY created_at;
	`
	rows, err := r.conn.Query(ctx, q, serverName)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %v", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run := &models.Run{}
		if err := rows.Scan(&run.ID, &run.ServerName, &run.CreatedAt, &run.FinishTime); err != nil {
			return nil, fmt.Errorf("failed to scan run: %v", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %v", err)
	}

	for _, run := range runs {
		checkpoints, err := r.loadCheckpoints(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		run.Checkpoints = checkpoints
	}

	return runs, nil
}

func (r *PostgresRepository) BestRun(ctx context.Context, serverName string) (*models.Run, error) {
	q := `
	SELECT id FROM runs WHERE server_name = $1
	ORDER BY finish_time, created_at LIMIT 1;
	`
	var id string
	if err := r.conn.QueryRow(ctx, q, serverName).Scan(&id); err != nil {
		if err == pgx.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan run: %v", err)
	}

	return r.LoadRun(ctx, id)
}

func (r *PostgresRepository) loadCheckpoints(ctx context.Context, runID string) ([]models.Checkpoint, error) {
	q := `
	SELECT cp_index, time, stunts_score FROM run_checkpoints
	WHERE run_id = $1 ORDER BY cp_index;
	`
	rows, err := r.conn.Query(ctx, q, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run checkpoints: %v", err)
	}
	defer rows.Close()

	var checkpoints []models.Checkpoint
	for rows.Next() {
		var cp models.Checkpoint
		if err := rows.Scan(&cp.Index, &cp.Time, &cp.StuntsScore); err != nil {
			return nil, fmt.Errorf("failed to scan run checkpoint: %v", err)
		}
		checkpoints = append(checkpoints, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run checkpoints: %v", err)
	}

	return checkpoints, nil
}
