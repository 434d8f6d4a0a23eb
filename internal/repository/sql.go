package repository

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/Wilyam390/Task-manager/internal/models"
	"github.com/Wilyam390/Task-manager/internal/storage"
)

const maxTitleLength = 255

// SQLTaskRepository работает поверх адаптера хранилища: соединение
// открывается под каждую операцию и закрывается сразу после неё.
type SQLTaskRepository struct {
	adapter *storage.Adapter
	log     *logrus.Logger
}

func NewSQLTaskRepository(adapter *storage.Adapter, log *logrus.Logger) *SQLTaskRepository {
	return &SQLTaskRepository{adapter: adapter, log: log}
}

// List возвращает все задачи, новые впереди. Перед чтением проверяет
// миграцию колонки due_date; её провал не валит листинг.
func (r *SQLTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	db, err := r.adapter.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := r.adapter.EnsureDueDateColumn(ctx, db); err != nil {
		r.log.WithError(err).Warn("due_date column check failed")
	}

	rows, err := db.QueryContext(ctx, `SELECT * FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	return storage.ScanTasks(rows)
}

func (r *SQLTaskRepository) Insert(ctx context.Context, title, description string, dueDate *time.Time) error {
	// Контракт операции: пустой или слишком длинный title не достигает
	// базы, даже если вызывающий не провалидировал ввод сам
	if title == "" {
		return models.NewValidationError("Task title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return models.NewValidationError("Task title too long (max 255 characters)")
	}

	db, err := r.adapter.Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	createdAt := storage.FormatTime(time.Now())

	if dueDate == nil {
		query := r.adapter.Rebind(`INSERT INTO tasks (title, description, completed, created_at) VALUES (?, ?, ?, ?)`)
		_, err = db.ExecContext(ctx, query, title, description, false, createdAt)
	} else {
		if err := r.adapter.EnsureDueDateColumn(ctx, db); err != nil {
			return err
		}
		query := r.adapter.Rebind(`INSERT INTO tasks (title, description, completed, created_at, due_date) VALUES (?, ?, ?, ?, ?)`)
		_, err = db.ExecContext(ctx, query, title, description, false, createdAt, storage.FormatTime(*dueDate))
	}
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (r *SQLTaskRepository) GetByID(ctx context.Context, id int64) (models.Task, error) {
	db, err := r.adapter.Connect(ctx)
	if err != nil {
		return models.Task{}, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, r.adapter.Rebind(`SELECT * FROM tasks WHERE id = ?`), id)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to query task: %w", err)
	}
	defer rows.Close()

	tasks, err := storage.ScanTasks(rows)
	if err != nil {
		return models.Task{}, err
	}
	if len(tasks) == 0 {
		return models.Task{}, models.ErrTaskNotFound
	}
	return tasks[0], nil
}

func (r *SQLTaskRepository) SetCompleted(ctx context.Context, id int64, value bool) error {
	db, err := r.adapter.Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := db.ExecContext(ctx, r.adapter.Rebind(`UPDATE tasks SET completed = ? WHERE id = ?`), value, id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}

func (r *SQLTaskRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.adapter.Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := db.ExecContext(ctx, r.adapter.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}

func (r *SQLTaskRepository) Count(ctx context.Context) (int, error) {
	db, err := r.adapter.Connect(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}
