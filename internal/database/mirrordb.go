package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/n1ru4l/dsa-wiki-crawler/internal/model"
)

// MirrorDB provides SQLite-based storage for mirror run history.
// Each completed run is stored as one row, with its full report as JSON
// so older runs can be re-rendered without re-crawling.
//
// Design decision: One database file for all runs rather than one per
// run. Run history queries ("did the last run have failures?") are the
// whole point of persisting runs, and they need all runs in one place.
type MirrorDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures MirrorDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a MirrorDB at the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an
// error is returned; the check subcommand uses this to avoid creating
// an empty history.
func Open(dbDir string, opts Options) (*MirrorDB, error) {
	dbPath := filepath.Join(dbDir, "dsa-wiki-crawler.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	mdb := &MirrorDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := mdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return mdb, nil
}

// Close closes the database connection.
func (mdb *MirrorDB) Close() error {
	return mdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (mdb *MirrorDB) createTables() error {
	schema := `
	-- Runs store one row per completed mirror run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		base_url TEXT NOT NULL,
		output_dir TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		pages_written INTEGER NOT NULL,
		links_discovered INTEGER NOT NULL,
		failure_count INTEGER NOT NULL,
		dangling_count INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_base_url ON runs(base_url);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

	-- Failures are also stored relationally for direct querying
	CREATE TABLE IF NOT EXISTS failures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		stage TEXT NOT NULL,
		error TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_failures_run_id ON failures(run_id);
	CREATE INDEX IF NOT EXISTS idx_failures_stage ON failures(stage);
	`
	_, err := mdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun persists one finished run and its failures.
func (mdb *MirrorDB) SaveRun(ctx context.Context, report *model.MirrorReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	tx, err := mdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs (base_url, output_dir, started_at, elapsed_ms,
			pages_written, links_discovered, failure_count, dangling_count, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.BaseURL,
		report.OutputDir,
		report.StartedAt.UTC().Format(time.RFC3339),
		report.Elapsed.Milliseconds(),
		report.PagesWritten,
		report.LinksDiscovered,
		len(report.Failures),
		len(report.DanglingLinks),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get run id: %w", err)
	}

	for _, f := range report.Failures {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO failures (run_id, url, stage, error)
			VALUES (?, ?, ?, ?)`,
			runID, f.URL, f.Stage, f.Error,
		); err != nil {
			return 0, fmt.Errorf("insert failure: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// GetLatestRun returns the most recent run for the given wiki, or nil
// when no run has been recorded yet.
func (mdb *MirrorDB) GetLatestRun(ctx context.Context, baseURL string) (*model.MirrorReport, error) {
	var reportJSON string
	err := mdb.db.QueryRowContext(ctx, `
		SELECT report_json FROM runs
		WHERE base_url = ?
		ORDER BY started_at DESC, id DESC
		LIMIT 1`,
		baseURL,
	).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}

	var report model.MirrorReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// RunSummary is one run's row for history listings, without the full
// report payload.
type RunSummary struct {
	ID              int64
	BaseURL         string
	StartedAt       time.Time
	Elapsed         time.Duration
	PagesWritten    int
	LinksDiscovered int
	FailureCount    int
	DanglingCount   int
}

// ListRuns returns summaries for the given wiki, newest first.
func (mdb *MirrorDB) ListRuns(ctx context.Context, baseURL string) ([]RunSummary, error) {
	rows, err := mdb.db.QueryContext(ctx, `
		SELECT id, base_url, started_at, elapsed_ms,
			pages_written, links_discovered, failure_count, dangling_count
		FROM runs
		WHERE base_url = ?
		ORDER BY started_at DESC, id DESC`,
		baseURL,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			r         RunSummary
			startedAt string
			elapsedMS int64
		)
		if err := rows.Scan(&r.ID, &r.BaseURL, &startedAt, &elapsedMS,
			&r.PagesWritten, &r.LinksDiscovered, &r.FailureCount, &r.DanglingCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = parseTimestamp(startedAt)
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// parseTimestamp parses the timestamp formats SQLite hands back.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
