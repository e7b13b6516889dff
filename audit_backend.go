// audit_backend.go: Storage backends for the audit trail
//
// Two backends are provided: a queryable SQLite database for unified
// system-wide audit trails and a JSONL file for deployments that want
// grep-able, shippable logs. Backend selection degrades gracefully,
// SQLite first, JSONL as fallback, so auditing never prevents startup.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package vesta

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

// auditBackend abstracts audit event persistence. Implementations must
// tolerate concurrent writers.
type auditBackend interface {
	// Write persists a batch of audit events.
	Write(events []AuditEvent) error

	// Flush commits pending writes to storage.
	Flush() error

	// Close releases resources; the backend must not be used after.
	Close() error
}

// createAuditBackend selects the backend for a configuration:
// an explicit .jsonl OutputFile selects JSONL, otherwise SQLite is
// attempted first with JSONL as the fallback.
func createAuditBackend(config AuditConfig) (auditBackend, error) {
	if config.OutputFile != "" && filepath.Ext(config.OutputFile) == ".jsonl" {
		return newJSONLBackend(config)
	}

	backend, err := newSQLiteBackend(config)
	if err == nil {
		return backend, nil
	}

	jsonlBackend, jsonlErr := newJSONLBackend(config)
	if jsonlErr != nil {
		return nil, fmt.Errorf("all audit backends failed - SQLite: %w, JSONL: %v", err, jsonlErr)
	}
	return jsonlBackend, nil
}

// unifiedAuditPath is the default location of the system-wide SQLite
// audit database when no OutputFile is configured.
func unifiedAuditPath() string {
	return filepath.Join(os.TempDir(), "vesta", "system-audit.db")
}

// sqliteAuditBackend persists events into a single SQLite database so
// all components of a deployment share one queryable trail.
type sqliteAuditBackend struct {
	db         *sql.DB
	dbPath     string
	insertStmt *sql.Stmt
	mu         sync.Mutex
	closed     bool
}

func newSQLiteBackend(config AuditConfig) (*sqliteAuditBackend, error) {
	dbPath := config.OutputFile
	if dbPath == "" {
		dbPath = unifiedAuditPath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create audit database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to audit database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS audit_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		level TEXT NOT NULL,
		event TEXT NOT NULL,
		component TEXT NOT NULL,
		key TEXT,
		old_value TEXT,
		new_value TEXT,
		process_id INTEGER,
		process_name TEXT,
		checksum TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_events_timestamp ON audit_events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_audit_events_key ON audit_events(key);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create audit schema: %w", err)
	}

	stmt, err := db.Prepare(`INSERT INTO audit_events
		(timestamp, level, event, component, key, old_value, new_value, process_id, process_name, checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare audit insert: %w", err)
	}

	return &sqliteAuditBackend{
		db:         db,
		dbPath:     dbPath,
		insertStmt: stmt,
	}, nil
}

func (b *sqliteAuditBackend) Write(events []AuditEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("audit backend is closed")
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin audit transaction: %w", err)
	}
	stmt := tx.Stmt(b.insertStmt)
	for _, e := range events {
		_, err := stmt.Exec(
			e.Timestamp.Format("2006-01-02T15:04:05.999999999Z07:00"),
			e.Level.String(), e.Event, e.Component, e.Key,
			renderValue(e.OldValue), renderValue(e.NewValue),
			e.ProcessID, e.ProcessName, e.Checksum)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert audit event: %w", err)
		}
	}
	return tx.Commit()
}

func (b *sqliteAuditBackend) Flush() error {
	// SQLite commits on every transaction; nothing buffered here
	return nil
}

func (b *sqliteAuditBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.insertStmt != nil {
		_ = b.insertStmt.Close()
	}
	return b.db.Close()
}

// renderValue flattens an audit value for column storage. Absent values
// become NULL rather than the empty string.
func renderValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	return fmt.Sprintf("%v", v)
}

// jsonlAuditBackend appends one JSON object per event to a plain file.
type jsonlAuditBackend struct {
	file   *os.File
	mu     sync.Mutex
	closed bool
}

func newJSONLBackend(config AuditConfig) (*jsonlAuditBackend, error) {
	path := config.OutputFile
	if path == "" {
		path = filepath.Join(os.TempDir(), "vesta", "audit.jsonl")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 -- path comes from AuditConfig
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	return &jsonlAuditBackend{file: file}, nil
}

func (b *jsonlAuditBackend) Write(events []AuditEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("audit backend is closed")
	}

	enc := json.NewEncoder(b.file)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("failed to encode audit event: %w", err)
		}
	}
	return nil
}

func (b *jsonlAuditBackend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	return b.file.Sync()
}

func (b *jsonlAuditBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.file.Close()
}
