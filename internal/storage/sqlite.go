// Package storage provides SQLite-based persistence for simulation run
// history and bitmap snapshots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned when a run ID is not in the database.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded simulation.
type Run struct {
	ID          string
	Source      string // "run", "render" or "serve"
	Seed        int64
	Width       int
	Height      int
	Patterns    int
	Generations int
	Population  int
	CreatedAt   time.Time
	FinishedAt  time.Time // Zero while the run is in progress
}

// Snapshot is a bitmap captured at a given generation.
type Snapshot struct {
	ID         int64
	RunID      string
	Generation int
	Population int
	Size       int // Bitmap length in bytes
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			patterns INTEGER NOT NULL DEFAULT 0,
			generations INTEGER NOT NULL DEFAULT 0,
			population INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			generation INTEGER NOT NULL,
			population INTEGER NOT NULL,
			bitmap BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(run_id, generation)
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, generation);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRun records the start of a run and returns its new ID.
// ID, CreatedAt and FinishedAt on r are ignored.
func (s *Store) CreateRun(ctx context.Context, r Run) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, seed, width, height, patterns)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, r.Source, r.Seed, r.Width, r.Height, r.Patterns,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create run: %w", err)
	}
	return id, nil
}

// FinishRun stores the final generation count and population of a run.
func (s *Store) FinishRun(ctx context.Context, id string, generations, population int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs
		 SET generations = ?, population = ?, finished_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		generations, population, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// SaveSnapshot stores a bitmap for the given run and generation.
// Saving the same generation twice replaces the earlier bitmap.
func (s *Store) SaveSnapshot(ctx context.Context, runID string, generation, population int, bitmap []byte) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO snapshots (run_id, generation, population, bitmap)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(run_id, generation) DO UPDATE SET
		   population = excluded.population,
		   bitmap = excluded.bitmap
		 RETURNING id`,
		runID, generation, population, bitmap,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save snapshot: %w", err)
	}
	return id, nil
}

const runColumns = `id, source, seed, width, height, patterns, generations, population, created_at, finished_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt, finishedAt any
	err := sc.Scan(&r.ID, &r.Source, &r.Seed, &r.Width, &r.Height,
		&r.Patterns, &r.Generations, &r.Population, &createdAt, &finishedAt)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	r.FinishedAt = parseTime(finishedAt)
	return r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a single run.
func (s *Store) RunByID(ctx context.Context, id string) (Run, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// Snapshots lists the snapshots of a run in generation order, without bitmaps.
func (s *Store) Snapshots(ctx context.Context, runID string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, generation, population, length(bitmap), created_at
		 FROM snapshots
		 WHERE run_id = ?
		 ORDER BY generation`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var sn Snapshot
		var createdAt any
		if err := rows.Scan(&sn.ID, &sn.RunID, &sn.Generation, &sn.Population, &sn.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sn.CreatedAt = parseTime(createdAt)
		snaps = append(snaps, sn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return snaps, nil
}

// SnapshotBitmap returns the stored bitmap for a run at a generation.
func (s *Store) SnapshotBitmap(ctx context.Context, runID string, generation int) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT bitmap FROM snapshots WHERE run_id = ? AND generation = ?`,
		runID, generation,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: no snapshot for run %s at generation %d: %w", runID, generation, sql.ErrNoRows)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}
	return data, nil
}

// DeleteRun removes a run and its snapshots.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("storage: cannot delete snapshots: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return tx.Commit()
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs             int
	TotalGenerations int64
	MaxPopulation    int
	Snapshots        int
	LastRun          time.Time
}

// GetStats retrieves aggregated statistics over all recorded runs.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var lastRun any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(generations), 0), COALESCE(MAX(population), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.TotalGenerations, &stats.MaxPopulation, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&stats.Snapshots); err != nil {
		return nil, fmt.Errorf("storage: cannot count snapshots: %w", err)
	}
	return stats, nil
}

// parseTime converts a DATETIME column, which the driver may return either
// as time.Time or as text, to a time.Time. NULL yields the zero time.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
