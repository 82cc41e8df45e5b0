package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS owners (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			category TEXT DEFAULT 'task',
			importance TEXT DEFAULT 'medium',
			estimated_minutes INTEGER DEFAULT 30,
			details TEXT,
			subtasks TEXT,

			completed INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			due_date DATETIME,
			origin_ritual_id INTEGER,

			FOREIGN KEY(owner_id) REFERENCES owners(id),
			FOREIGN KEY(origin_ritual_id) REFERENCES rituals(id) ON DELETE SET NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rituals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			importance TEXT DEFAULT 'medium',
			estimated_minutes INTEGER DEFAULT 30,
			details TEXT,
			subtasks TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,

			FOREIGN KEY(owner_id) REFERENCES owners(id)
		);`,
		`CREATE TABLE IF NOT EXISTS stats (
			owner_id TEXT PRIMARY KEY,
			current_streak INTEGER DEFAULT 0,
			max_streak INTEGER DEFAULT 0,
			history TEXT DEFAULT '[]',
			last_sealed_date TEXT DEFAULT '',

			FOREIGN KEY(owner_id) REFERENCES owners(id)
		);`,
		// UNIQUE(owner_id, date_key) backs the conditional create that keeps
		// sealing exactly-once per owner per day.
		`CREATE TABLE IF NOT EXISTS chronicle (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id TEXT NOT NULL,
			date_key TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			victories TEXT,
			retained TEXT,
			reflection_victories TEXT,
			reflection_shadow TEXT,
			reflection_intention TEXT,
			streak INTEGER NOT NULL,
			seal_type TEXT NOT NULL,

			UNIQUE(owner_id, date_key),
			FOREIGN KEY(owner_id) REFERENCES owners(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_owner_id ON tasks(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_origin_ritual_id ON tasks(origin_ritual_id);`,
		`CREATE INDEX IF NOT EXISTS idx_rituals_owner_id ON rituals(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_chronicle_owner_date ON chronicle(owner_id, date_key);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE tasks ADD COLUMN subtasks TEXT;`,
		`ALTER TABLE chronicle ADD COLUMN reflection_intention TEXT;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
