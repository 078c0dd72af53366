package repositories

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tastools/tminterface-go/pkg/repositories/models"
)

type SQLiteRepository struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	server_name TEXT NOT NULL,
	created_at INTEGER NOT NULL,
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

func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveRun(ctx context.Context, run *models.Run) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	q := `
	INSERT OR REPLACE INTO runs (id, server_name, created_at, finish_time)
	VALUES (?, ?, ?, ?);
	`
	if _, err := tx.ExecContext(ctx, q, run.ID, run.ServerName, run.CreatedAt, run.FinishTime); err != nil {
		return fmt.Errorf("failed to insert run: %v", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_checkpoints WHERE run_id = ?;`, run.ID); err != nil {
		return fmt.Errorf("failed to clear run checkpoints: %v", err)
	}

	for _, cp := range run.Checkpoints {
		q := `
		INSERT INTO run_checkpoints (run_id, cp_index, time, stunts_score)
		VALUES (?, ?, ?, ?);
		`
		if _, err := tx.ExecContext(ctx, q, run.ID, cp.Index, cp.Time, cp.StuntsScore); err != nil {
			return fmt.Errorf("failed to insert run checkpoint: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) LoadRun(ctx context.Context, id string) (*models.Run, error) {
	q := `
	SELECT id, server_name, created_at, finish_time FROM runs WHERE id = ?;
	`
	run := &models.Run{}
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&run.ID, &run.ServerName, &run.CreatedAt, &run.FinishTime); err != nil {
		if err == sql.ErrNoRows {
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

func (r *SQLiteRepository) ListRuns(ctx context.Context, serverName string) ([]*models.Run, error) {
	q := `
	SELECT id, server_name, created_at, finish_time FROM runs
	WHERE server_name = ? ORDER BY created_at;
	`
	rows, err := r.db.QueryContext(ctx, q, serverName)
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

func (r *SQLiteRepository) BestRun(ctx context.Context, serverName string) (*models.Run, error) {
	q := `
	SELECT id FROM runs WHERE server_name = ?
	ORDER BY finish_time, created_at LIMIT 1;
	`
	var id string
	if err := r.db.QueryRowContext(ctx, q, serverName).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan run: %v", err)
	}

	return r.LoadRun(ctx, id)
}

func (r *SQLiteRepository) loadCheckpoints(ctx context.Context, runID string) ([]models.Checkpoint, error) {
	q := `
	SELECT cp_index, time, stunts_score FROM run_checkpoints
	WHERE run_id = ? ORDER BY cp_index;
	`
	rows, err := r.db.QueryContext(ctx, q, runID)
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
