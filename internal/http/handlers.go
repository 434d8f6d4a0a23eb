package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Wilyam390/Task-manager/internal/config"
	"github.com/Wilyam390/Task-manager/internal/middleware"
	"github.com/Wilyam390/Task-manager/internal/models"
	"github.com/Wilyam390/Task-manager/internal/service"
	"github.com/Wilyam390/Task-manager/internal/telemetry"
)

type TaskHandler struct {
	taskService    *service.TaskService
	tracker        telemetry.Tracker
	log            *logrus.Logger
	secretKey      string
	environment    string
	database       string
	metricsEnabled bool
}

func NewTaskHandler(ts *service.TaskService, tracker telemetry.Tracker, log *logrus.Logger, cfg *config.Config, databaseName string) *TaskHandler {
	return &TaskHandler{
		taskService:    ts,
		tracker:        tracker,
		log:            log,
		secretKey:      cfg.SecretKey,
		environment:    cfg.Environment,
		database:       databaseName,
		metricsEnabled: cfg.MetricsEnabled,
	}
}

func (h *TaskHandler) logEntry(r *http.Request, handler string) *logrus.Entry {
	return h.log.WithFields(logrus.Fields{
		"component":  "http_handler",
		"handler":    handler,
		"request_id": middleware.GetRequestID(r.Context()),
	})
}

// Home обрабатывает GET / - список задач с фильтрами и сортировкой
func (h *TaskHandler) Home(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "Home")

	query := service.ListQuery{
		Search: r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
		Sort:   r.URL.Query().Get("sort"),
	}

	flash := PopFlash(w, r, h.secretKey)

	tasks, query, err := h.taskService.List(r.Context(), query)
	if err != nil {
		// Страница рендерится и при недоступной базе - с пустым
		// списком и сообщением об ошибке
		logEntry.WithError(err).Error("failed to list tasks")
		h.renderIndex(w, indexData{
			Query:       query,
			Flash:       &Flash{Kind: "error", Message: "Failed to load tasks"},
			Environment: h.environment,
		})
		return
	}

	logEntry.WithField("count", len(tasks)).Info("tasks listed")
	h.renderIndex(w, indexData{
		Tasks:       tasks,
		Query:       query,
		Flash:       flash,
		Environment: h.environment,
	})
}

// AddTask обрабатывает POST /task/add
func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "AddTask")

	if err := r.ParseForm(); err != nil {
		logEntry.WithError(err).Warn("invalid form data")
		h.redirectWithFlash(w, r, "error", "Invalid form data")
		return
	}

	title := r.PostFormValue("title")
	description := r.PostFormValue("description")
	dueDate := r.PostFormValue("due_date")

	err := h.taskService.Create(r.Context(), title, description, dueDate)

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		logEntry.WithField("reason", validationErr.Message).Warn("task validation failed")
		h.redirectWithFlash(w, r, "error", validationErr.Message)
		return
	}
	if err != nil {
		logEntry.WithError(err).Error("failed to create task")
		h.redirectWithFlash(w, r, "error", "Failed to create task")
		return
	}

	logEntry.Info("task created successfully")
	middleware.ObserveTaskOperation("create")
	h.tracker.TrackEvent("task_created", nil)
	h.redirectWithFlash(w, r, "success", "Task created successfully")
}

// ToggleTask обрабатывает POST /task/{id}/toggle
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "ToggleTask")

	id, ok := h.taskID(r)
	if !ok {
		logEntry.WithField("task_id", r.PathValue("id")).Warn("invalid task id")
		h.redirectWithFlash(w, r, "error", "Task not found")
		return
	}

	err := h.taskService.Toggle(r.Context(), id)
	if errors.Is(err, models.ErrTaskNotFound) {
		logEntry.WithField("task_id", id).Warn("task not found")
		h.redirectWithFlash(w, r, "error", "Task not found")
		return
	}
	if err != nil {
		logEntry.WithError(err).Error("failed to toggle task")
		h.redirectWithFlash(w, r, "error", "Failed to update task")
		return
	}

	logEntry.WithField("task_id", id).Info("task status updated")
	middleware.ObserveTaskOperation("toggle")
	h.tracker.TrackEvent("task_toggled", map[string]string{"task_id": strconv.FormatInt(id, 10)})
	h.redirectWithFlash(w, r, "success", "Task status updated")
}

// DeleteTask обрабатывает POST /task/{id}/delete
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "DeleteTask")

	id, ok := h.taskID(r)
	if !ok {
		logEntry.WithField("task_id", r.PathValue("id")).Warn("invalid task id")
		h.redirectWithFlash(w, r, "error", "Task not found")
		return
	}

	err := h.taskService.Delete(r.Context(), id)
	if errors.Is(err, models.ErrTaskNotFound) {
		logEntry.WithField("task_id", id).Warn("task not found for deletion")
		h.redirectWithFlash(w, r, "error", "Task not found")
		return
	}
	if err != nil {
		logEntry.WithError(err).Error("failed to delete task")
		h.redirectWithFlash(w, r, "error", "Failed to delete task")
		return
	}

	logEntry.WithField("task_id", id).Info("task deleted successfully")
	middleware.ObserveTaskOperation("delete")
	h.tracker.TrackEvent("task_deleted", map[string]string{"task_id": strconv.FormatInt(id, 10)})
	h.redirectWithFlash(w, r, "success", "Task deleted successfully")
}

// Health обрабатывает GET /health
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	logEntry := h.logEntry(r, "Health")

	count, err := h.taskService.Count(r.Context())
	if err != nil {
		logEntry.WithError(err).Error("health check failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"tasks_count": count,
		"environment": h.environment,
		"database":    h.database,
	})
}

// Metrics обрабатывает GET /metrics. При выключенных метриках отвечает 503,
// а не падает.
func (h *TaskHandler) Metrics(metricsHandler http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.metricsEnabled {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"error": "metrics collection is not enabled",
			})
			return
		}
		metricsHandler.ServeHTTP(w, r)
	}
}

func (h *TaskHandler) taskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) redirectWithFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	SetFlash(w, h.secretKey, kind, message)
	http.Redirect(w, r, "/", http.StatusFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
