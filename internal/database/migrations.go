package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the schema if needed. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	return runMigrations(ctx, db, dialect)
}

// runMigrations creates the database schema inside a single transaction
func runMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		for _, stmt := range schemaStatements(dialect) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
		}
		return nil
	})
}

// schemaStatements returns the DDL for the given dialect.
// References from tasks are RESTRICT: a status, label or user that is still
// used by a task can never be removed underneath it.
func schemaStatements(dialect Dialect) []string {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	ref := "INTEGER"
	ts := "DATETIME"
	if dialect == DialectPostgres {
		pk = "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
		ref = "BIGINT"
		ts = "TIMESTAMPTZ"
	}

	return []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS users (
			id %[1]s,
			username TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at %[2]s NOT NULL
		)`, pk, ts),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS statuses (
			id %[1]s,
			name TEXT NOT NULL UNIQUE,
			created_at %[2]s NOT NULL
		)`, pk, ts),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS labels (
			id %[1]s,
			name TEXT NOT NULL UNIQUE,
			created_at %[2]s NOT NULL
		)`, pk, ts),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS tasks (
			id %[1]s,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status_id %[2]s NOT NULL REFERENCES statuses(id) ON DELETE RESTRICT,
			creator_id %[2]s NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
			executor_id %[2]s REFERENCES users(id) ON DELETE RESTRICT,
			created_at %[3]s NOT NULL
		)`, pk, ref, ts),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS task_labels (
			task_id %[1]s NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			label_id %[1]s NOT NULL REFERENCES labels(id) ON DELETE RESTRICT,
			PRIMARY KEY (task_id, label_id)
		)`, ref),

		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_creator ON tasks(creator_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_executor ON tasks(executor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_task_labels_label ON task_labels(label_id)`,
	}
}
