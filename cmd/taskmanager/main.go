package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Wilyam390/Task-manager/internal/config"
	handlers "github.com/Wilyam390/Task-manager/internal/http"
	"github.com/Wilyam390/Task-manager/internal/logger"
	"github.com/Wilyam390/Task-manager/internal/middleware"
	"github.com/Wilyam390/Task-manager/internal/repository"
	"github.com/Wilyam390/Task-manager/internal/service"
	"github.com/Wilyam390/Task-manager/internal/storage"
	"github.com/Wilyam390/Task-manager/internal/telemetry"
)

func main() {
	log := logger.Init("taskmanager")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	// Инициализация хранилища и схемы
	adapter := storage.New(cfg.DB)
	if err := bootstrapSchema(adapter); err != nil {
		log.WithError(err).Fatal("failed to initialize database schema")
	}
	log.WithField("database", adapter.Name()).Info("database ready")

	// Репозиторий и сервис
	repo := repository.NewSQLTaskRepository(adapter, log)
	taskService := service.NewTaskService(repo)

	// Телеметрия: без ключа работает заглушка
	tracker := telemetry.New(cfg.TelemetryKey, log)

	// Инициализация хендлера
	taskHandler := handlers.NewTaskHandler(taskService, tracker, log, cfg, adapter.Name())

	// Настройка роутера
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", taskHandler.Home)
	mux.HandleFunc("POST /task/add", taskHandler.AddTask)
	mux.HandleFunc("POST /task/{id}/toggle", taskHandler.ToggleTask)
	mux.HandleFunc("POST /task/{id}/delete", taskHandler.DeleteTask)
	mux.HandleFunc("GET /health", taskHandler.Health)
	mux.HandleFunc("GET /metrics", taskHandler.Metrics(middleware.MetricsHandler()))

	// Цепочка middleware (порядок важен!)
	handler := middleware.RecoveryMiddleware(log)(mux)      // 1. перехват паник
	handler = middleware.SecurityHeadersMiddleware(handler) // 2. заголовки безопасности
	if cfg.MetricsEnabled {
		handler = middleware.MetricsMiddleware(handler) // 3. метрики
	}
	handler = middleware.LoggingMiddleware(log)(handler) // 4. логирование
	handler = middleware.RequestIDMiddleware(handler)    // 5. request-id (самый внешний)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.WithFields(logrus.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
	}).Info("task manager starting")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}

// bootstrapSchema создаёт таблицу и накатывает миграцию due_date. Ошибка
// здесь фатальна: без базы сервису нечего обслуживать.
func bootstrapSchema(adapter *storage.Adapter) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := adapter.Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := adapter.EnsureSchema(ctx, db); err != nil {
		return err
	}
	return adapter.EnsureDueDateColumn(ctx, db)
}
