// Package history persists completed benchmark runs in SQLite for later
// comparison across models and prompt sets.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stellarlinkco/model-bench/internal/config"
)

const (
	DefaultSQLitePath = "data/model-bench.db"

	defaultListLimit = 50
)

// Store records one row per completed benchmark run.
type Store struct {
	db *sql.DB
}

// Run is a stored run record.
type Run struct {
	ID              int64
	Model           string
	Provider        string
	PromptsFile     string
	Total           int
	Correct         int
	AccuracyPercent float64
	TotalLatencyMs  int64
	RunDir          string
	CreatedAt       time.Time
}

// Open creates a store from the storage config ("sqlite" or "memory").
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("history: missing config")
	}

	storageType := strings.ToLower(strings.TrimSpace(cfg.Storage.Type))
	if storageType == "" {
		storageType = "sqlite"
	}

	switch storageType {
	case "sqlite":
		path := strings.TrimSpace(cfg.Storage.Path)
		if path == "" {
			path = DefaultSQLitePath
		}
		return NewStore(path)
	case "memory":
		return NewStore(":memory:")
	default:
		return nil, fmt.Errorf("history: unsupported storage type %q", storageType)
	}
}

// NewStore opens or creates a SQLite store at the given path.
func NewStore(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("history: empty db path")
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("history: create db dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: ping db: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("history: nil db")
	}

	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			model TEXT NOT NULL,
			provider TEXT NOT NULL,
			prompts_file TEXT NOT NULL,
			total INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			accuracy_percent REAL NOT NULL,
			total_latency_ms INTEGER NOT NULL,
			run_dir TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_model ON runs(model)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("history: init schema: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts a run record and fills in its assigned ID.
func (s *Store) Save(ctx context.Context, run *Run) error {
	if s == nil || s.db == nil {
		return errors.New("history: nil store")
	}
	if ctx == nil {
		return errors.New("history: nil context")
	}
	if run == nil {
		return errors.New("history: nil run")
	}

	model := strings.TrimSpace(run.Model)
	provider := strings.TrimSpace(run.Provider)
	if model == "" || provider == "" {
		return errors.New("history: missing model/provider")
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			model, provider, prompts_file, total, correct,
			accuracy_percent, total_latency_ms, run_dir, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, model, provider, run.PromptsFile, run.Total, run.Correct,
		run.AccuracyPercent, run.TotalLatencyMs, run.RunDir, createdAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("history: insert run: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		run.ID = id
	}
	run.Model = model
	run.Provider = provider
	run.CreatedAt = createdAt
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("history: nil store")
	}
	if ctx == nil {
		return nil, errors.New("history: nil context")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, provider, prompts_file, total, correct,
			accuracy_percent, total_latency_ms, run_dir, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ByModel returns the most recent runs of one model, newest first.
func (s *Store) ByModel(ctx context.Context, model string, limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("history: nil store")
	}
	if ctx == nil {
		return nil, errors.New("history: nil context")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("history: empty model")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, provider, prompts_file, total, correct,
			accuracy_percent, total_latency_ms, run_dir, created_at
		FROM runs
		WHERE model = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, model, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query model runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// Get returns one run by ID.
func (s *Store) Get(ctx context.Context, id int64) (*Run, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("history: nil store")
	}
	if ctx == nil {
		return nil, errors.New("history: nil context")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, model, provider, prompts_file, total, correct,
			accuracy_percent, total_latency_ms, run_dir, created_at
		FROM runs
		WHERE id = ?
	`, id)

	var r Run
	var createdMS int64
	err := row.Scan(&r.ID, &r.Model, &r.Provider, &r.PromptsFile, &r.Total,
		&r.Correct, &r.AccuracyPercent, &r.TotalLatencyMs, &r.RunDir, &createdMS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("history: run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("history: scan run: %w", err)
	}
	r.CreatedAt = time.UnixMilli(createdMS).UTC()
	return &r, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var out []Run
	for rows.Next() {
		var r Run
		var createdMS int64
		if err := rows.Scan(&r.ID, &r.Model, &r.Provider, &r.PromptsFile, &r.Total,
			&r.Correct, &r.AccuracyPercent, &r.TotalLatencyMs, &r.RunDir, &createdMS); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		r.CreatedAt = time.UnixMilli(createdMS).UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: scan rows: %w", err)
	}
	return out, nil
}
