package service

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Wilyam390/Task-manager/internal/models"
	"github.com/Wilyam390/Task-manager/internal/repository"
)

// DueDateInputFormat - формат поля due_date из HTML-формы (datetime-local)
const DueDateInputFormat = "2006-01-02T15:04"

const maxTitleLength = 255

type TaskService struct {
	repo repository.TaskRepository
	now  func() time.Time // подменяется в тестах
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
		now:  utcNow,
	}
}

// utcNow - часы сервиса. Метки времени хранятся в UTC, поэтому и "сейчас"
// для вычисляемых полей (в том числе границ "сегодня") берётся в UTC.
func utcNow() time.Time {
	return time.Now().UTC()
}

// ListQuery - активные фильтры листинга. Значения возвращаются обратно
// в шаблон, чтобы форма сохраняла выбор пользователя.
type ListQuery struct {
	Search string // подстрока в title, без учёта регистра
	Status string // all | completed | pending | overdue | today
	Sort   string // created_desc (по умолчанию) | created_asc
}

func (q ListQuery) normalized() ListQuery {
	if q.Status == "" {
		q.Status = "all"
	}
	if q.Sort == "" {
		q.Sort = "created_desc"
	}
	return q
}

// List возвращает отфильтрованный и отсортированный список задач
// с заполненными вычисляемыми полями.
func (s *TaskService) List(ctx context.Context, q ListQuery) ([]models.Task, ListQuery, error) {
	q = q.normalized()

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, q, err
	}

	now := s.now()
	for i := range tasks {
		tasks[i].Annotate(now)
	}

	tasks = filterBySearch(tasks, q.Search)
	tasks = filterByStatus(tasks, q.Status)
	sortTasks(tasks, q.Sort)

	return tasks, q, nil
}

func filterBySearch(tasks []models.Task, search string) []models.Task {
	search = strings.TrimSpace(search)
	if search == "" {
		return tasks
	}
	needle := strings.ToLower(search)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t)
		}
	}
	return out
}

func filterByStatus(tasks []models.Task, status string) []models.Task {
	if status == "all" {
		return tasks
	}
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		switch status {
		case "completed":
			if t.Completed {
				out = append(out, t)
			}
		case "pending":
			if !t.Completed {
				out = append(out, t)
			}
		case "overdue":
			if t.IsOverdue {
				out = append(out, t)
			}
		case "today":
			if t.IsDueToday {
				out = append(out, t)
			}
		default:
			// неизвестный статус трактуем как all
			out = append(out, t)
		}
	}
	return out
}

func sortTasks(tasks []models.Task, order string) {
	desc := order == "created_desc"
	sort.SliceStable(tasks, func(i, j int) bool {
		ti := createdAtOrZero(tasks[i])
		tj := createdAtOrZero(tasks[j])
		if ti.Equal(tj) {
			// при равных метках времени решает порядок вставки
			if desc {
				return tasks[i].ID > tasks[j].ID
			}
			return tasks[i].ID < tasks[j].ID
		}
		if desc {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
}

// createdAtOrZero: задача без метки времени сортируется как самая ранняя
func createdAtOrZero(t models.Task) time.Time {
	if t.CreatedAt == nil {
		return time.Time{}
	}
	return *t.CreatedAt
}

// Create валидирует ввод и сохраняет новую задачу. Ошибки ввода
// возвращаются как *models.ValidationError, ничего не записывается.
func (s *TaskService) Create(ctx context.Context, title, description, dueDateRaw string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return models.NewValidationError("Task title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return models.NewValidationError("Task title too long (max 255 characters)")
	}

	var dueDate *time.Time
	if dueDateRaw != "" {
		parsed, err := time.Parse(DueDateInputFormat, dueDateRaw)
		if err != nil {
			return models.NewValidationError("Invalid due date format")
		}
		dueDate = &parsed
	}

	return s.repo.Insert(ctx, title, description, dueDate)
}

// Toggle переключает статус завершённости задачи.
func (s *TaskService) Toggle(ctx context.Context, id int64) error {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.SetCompleted(ctx, id, !task.Completed)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
