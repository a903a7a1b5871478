package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// FileName is the SQLite file created inside the data directory.
const FileName = "fometer.db"

// DB represents the database connection with pooling
type DB struct {
	*sql.DB
	pool     PoolConfig
	prepared map[string]*sql.Stmt
	mutex    sync.RWMutex
}

// PoolConfig bounds the database/sql pool.
type PoolConfig struct {
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// DefaultPoolConfig is what NewDB applies.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{MaxOpenConns: 8, MaxIdleConns: 4, MaxLifetime: 5 * time.Minute}
}

func (pc PoolConfig) apply(db *sql.DB) {
	db.SetMaxOpenConns(pc.MaxOpenConns)
	db.SetMaxIdleConns(pc.MaxIdleConns)
	db.SetConnMaxLifetime(pc.MaxLifetime)
}

// PoolStats is a snapshot of the connection pool.
type PoolStats struct {
	OpenConnections int   `json:"open_connections"`
	InUse           int   `json:"in_use"`
	Idle            int   `json:"idle"`
	MaxOpenConns    int   `json:"max_open_connections"`
	MaxIdleConns    int   `json:"max_idle_connections"`
	WaitCount       int64 `json:"wait_count"`
	WaitDurationMS  int64 `json:"wait_duration_ms"`
}

// NewDB opens (creating if needed) the run store under dataDir, migrates it
// and prepares the statements the repository uses.
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, FileName)
	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pool := DefaultPoolConfig()
	pool.apply(db)

	database := &DB{
		DB:       db,
		pool:     pool,
		prepared: make(map[string]*sql.Stmt),
	}

	if err := database.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := database.initPreparedStatements(); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize prepared statements: %w", err)
	}

	slog.Debug("Database initialized",
		"path", dbPath,
		"max_open_conns", pool.MaxOpenConns,
		"max_idle_conns", pool.MaxIdleConns)

	return database, nil
}

// migrate creates the necessary tables
func (db *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mode INTEGER NOT NULL,
			seed TEXT NOT NULL,
			source TEXT NOT NULL,
			selection_source TEXT NOT NULL,
			scenario_ids TEXT NOT NULL, -- JSON array, presentation order
			responses TEXT NOT NULL DEFAULT '[]', -- JSON array of answers
			scores TEXT NOT NULL DEFAULT '{}', -- JSON function scores
			stack_type TEXT NOT NULL DEFAULT '',
			axis_type TEXT NOT NULL DEFAULT '',
			myers_type TEXT NOT NULL DEFAULT '',
			resolved INTEGER NOT NULL DEFAULT 0,
			ignored INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			completed_at DATETIME
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

const runColumns = `id, mode, seed, source, selection_source, scenario_ids, responses, scores,
	stack_type, axis_type, myers_type, resolved, ignored, status, created_at, updated_at, completed_at`

// initPreparedStatements initializes frequently used prepared statements
func (db *DB) initPreparedStatements() error {
	statements := map[string]string{
		stmtInsertRun: `INSERT INTO runs (` + runColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,

		stmtGetRun: `SELECT ` + runColumns + ` FROM runs WHERE id = ?`,

		stmtCompleteRun: `UPDATE runs SET
			responses = ?, scores = ?, stack_type = ?, axis_type = ?, myers_type = ?,
			resolved = ?, ignored = ?, status = ?, updated_at = ?, completed_at = ?
			WHERE id = ? AND status = ?`,

		stmtListRuns: `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id ASC LIMIT ?`,

		stmtDeleteRun: `DELETE FROM runs WHERE id = ?`,

		stmtCountRuns: `SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) FROM runs`,
	}

	for scheme, column := range typeColumns {
		statements[typeCountStatement(scheme)] = `SELECT ` + column + `, COUNT(*) FROM runs
			WHERE status = ? GROUP BY ` + column + ` ORDER BY COUNT(*) DESC, ` + column + ` ASC`
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, query := range statements {
		stmt, err := db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement %s: %w", name, err)
		}
		db.prepared[name] = stmt

		slog.Debug("Prepared statement initialized", "name", name)
	}

	return nil
}

// GetPreparedStatement retrieves a prepared statement
func (db *DB) GetPreparedStatement(name string) (*sql.Stmt, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	stmt, exists := db.prepared[name]
	if !exists {
		return nil, fmt.Errorf("prepared statement %s not found", name)
	}

	return stmt, nil
}

// PoolStats returns database connection pool statistics.
func (db *DB) PoolStats() PoolStats {
	stats := db.DB.Stats()
	return PoolStats{
		OpenConnections: stats.OpenConnections,
		InUse:           stats.InUse,
		Idle:            stats.Idle,
		MaxOpenConns:    db.pool.MaxOpenConns,
		MaxIdleConns:    db.pool.MaxIdleConns,
		WaitCount:       stats.WaitCount,
		WaitDurationMS:  stats.WaitDuration.Milliseconds(),
	}
}

// Close closes the database connection and prepared statements
func (db *DB) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, stmt := range db.prepared {
		if err := stmt.Close(); err != nil {
			slog.Warn("Failed to close prepared statement", "name", name, "error", err)
		}
	}
	db.prepared = make(map[string]*sql.Stmt)

	return db.DB.Close()
}
