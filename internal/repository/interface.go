package repository

import (
	"context"
	"time"

	"github.com/Wilyam390/Task-manager/internal/models"
)

type TaskRepository interface {
	List(ctx context.Context) ([]models.Task, error)
	Insert(ctx context.Context, title, description string, dueDate *time.Time) error
	GetByID(ctx context.Context, id int64) (models.Task, error)
	SetCompleted(ctx context.Context, id int64, value bool) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
