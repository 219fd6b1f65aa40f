package storage

import (
	"database/sql"
	"fmt"
)

// MigrationVersion tracks the current database schema version.
const MigrationVersion = 1

// InitializeDatabase creates the SQLite schema for saved layouts.
// Includes migration version tracking to support future schema updates.
func InitializeDatabase(db *sql.DB) error {
	migrationsTable := `
	CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		version INTEGER NOT NULL UNIQUE,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(migrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to check migration version: %w", err)
	}

	if currentVersion < 1 {
		if err := applyMigration1(db); err != nil {
			return fmt.Errorf("failed to apply migration 1: %w", err)
		}
	}

	return nil
}

// applyMigration1 creates the initial schema: one row per named layout,
// keyed by (graph_name, name). Node positions are a JSON object keyed by
// node ID; the viewport is stored alongside so restoring a layout
// restores the whole view.
func applyMigration1(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	layoutsTable := `
	CREATE TABLE layouts (
		graph_name TEXT NOT NULL,
		name TEXT NOT NULL,
		positions TEXT NOT NULL,
		viewport_x REAL NOT NULL DEFAULT 0,
		viewport_y REAL NOT NULL DEFAULT 0,
		viewport_zoom REAL NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (graph_name, name)
	);`

	if _, err := tx.Exec(layoutsTable); err != nil {
		return fmt.Errorf("failed to create layouts table: %w", err)
	}

	layoutIndexes := []string{
		"CREATE INDEX idx_layouts_graph_name ON layouts(graph_name, updated_at DESC);",
		"CREATE INDEX idx_layouts_updated_at ON layouts(updated_at DESC);",
	}

	for _, idx := range layoutIndexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create layout index: %w", err)
		}
	}

	if _, err := tx.Exec("INSERT INTO migrations (version) VALUES (?)", 1); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	return nil
}
