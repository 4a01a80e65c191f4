// Package storage provides a SQLite journal of finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Each run stores its seed, tuning and input log so it can be replayed
// and checked against the recorded final state hash.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is a single journal record.
type Run struct {
	ID        int64
	Seed      int64
	Preset    string
	TickRate  int
	Ticks     int
	Score     int
	Level     int
	Elapsed   float64 // Simulated seconds
	FinalHash uint64
	Config    []byte // YAML tuning the run was played with
	Inputs    []byte // One encoded input per tick
	CreatedAt time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions save concurrently; SQLite takes one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL DEFAULT 'normal',
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			elapsed REAL NOT NULL,
			final_hash TEXT NOT NULL,
			config BLOB NOT NULL,
			inputs BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (int64, error) {
	if run.Config == nil {
		run.Config = []byte{}
	}
	if run.Inputs == nil {
		run.Inputs = []byte{}
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (seed, preset, tick_rate, ticks, score, level, elapsed, final_hash, config, inputs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Seed,
		run.Preset,
		run.TickRate,
		run.Ticks,
		run.Score,
		run.Level,
		run.Elapsed,
		formatHash(run.FinalHash),
		run.Config,
		run.Inputs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Run retrieves a run with its config and input log.
func (s *Store) Run(id int64) (*Run, error) {
	var run Run
	var hash string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, seed, preset, tick_rate, ticks, score, level, elapsed,
		        final_hash, config, inputs, created_at
		 FROM runs
		 WHERE id = ?`,
		id,
	).Scan(
		&run.ID,
		&run.Seed,
		&run.Preset,
		&run.TickRate,
		&run.Ticks,
		&run.Score,
		&run.Level,
		&run.Elapsed,
		&hash,
		&run.Config,
		&run.Inputs,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	if run.FinalHash, err = parseHash(hash); err != nil {
		return nil, err
	}
	run.CreatedAt = parseTime(createdAt)

	return &run, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// The config and input blobs are not loaded.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, preset, tick_rate, ticks, score, level, elapsed, final_hash, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var hash string
		var createdAt any

		if err := rows.Scan(
			&run.ID,
			&run.Seed,
			&run.Preset,
			&run.TickRate,
			&run.Ticks,
			&run.Score,
			&run.Level,
			&run.Elapsed,
			&hash,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if run.FinalHash, err = parseHash(hash); err != nil {
			return nil, err
		}
		run.CreatedAt = parseTime(createdAt)

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run from the journal.
func (s *Store) DeleteRun(id int64) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return nil
}

// Stats contains aggregated statistics over the journal.
type Stats struct {
	Runs        int
	TotalTicks  int64
	TotalPlayed float64 // Simulated seconds across all runs
	BestLevel   int
	LastPlayed  time.Time
}

// Stats retrieves aggregated statistics for all recorded runs.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(SUM(elapsed), 0), COALESCE(MAX(level), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.TotalTicks, &stats.TotalPlayed, &stats.BestLevel)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Hashes are stored as hex text because SQLite integers are signed.
func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

func parseHash(s string) (uint64, error) {
	h, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("storage: corrupt final hash %q: %w", s, err)
	}
	return h, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
