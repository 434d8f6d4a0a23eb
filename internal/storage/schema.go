package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT,
	completed INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id SERIAL PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP DEFAULT NOW()
)`

// EnsureSchema создаёт таблицу tasks, если её ещё нет. Идемпотентно.
// Колонка due_date появилась позже и добавляется отдельной миграцией,
// см. EnsureDueDateColumn.
func (a *Adapter) EnsureSchema(ctx context.Context, db *sql.DB) error {
	schema := sqliteSchema
	if a.driver == "postgres" {
		schema = postgresSchema
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}
	return nil
}

// EnsureDueDateColumn проверяет наличие колонки due_date и добавляет её,
// если отсутствует. Безопасно вызывать на каждом запросе списка.
func (a *Adapter) EnsureDueDateColumn(ctx context.Context, db *sql.DB) error {
	exists, err := a.hasDueDateColumn(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to inspect tasks table: %w", err)
	}
	if exists {
		return nil
	}
	if _, err := db.ExecContext(ctx, `ALTER TABLE tasks ADD COLUMN due_date TIMESTAMP`); err != nil {
		return fmt.Errorf("failed to add due_date column: %w", err)
	}
	return nil
}

func (a *Adapter) hasDueDateColumn(ctx context.Context, db *sql.DB) (bool, error) {
	if a.driver == "postgres" {
		var count int
		err := db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM information_schema.columns WHERE table_name = 'tasks' AND column_name = 'due_date'`,
		).Scan(&count)
		if err != nil {
			return false, err
		}
		return count > 0, nil
	}

	// Для sqlite - интроспекция через pragma
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info('tasks')`)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == "due_date" {
			return true, nil
		}
	}
	return false, rows.Err()
}
