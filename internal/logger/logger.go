package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Init инициализирует структурированный логгер
func Init(serviceName string) *logrus.Logger {
	log := logrus.New()

	log.SetOutput(os.Stdout)

	// Формат JSON для структурированного логирования
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	// Уровень логирования (можно через ENV)
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err == nil {
			log.SetLevel(lvl)
		}
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	log.AddHook(&serviceHook{service: serviceName})

	return log
}

// serviceHook добавляет поле service во все записи
type serviceHook struct {
	service string
}

func (h *serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceHook) Fire(entry *logrus.Entry) error {
	entry.Data["service"] = h.service
	return nil
}

// WithRequestID добавляет request-id в контекст логгера
func WithRequestID(log *logrus.Logger, requestID string) *logrus.Entry {
	if requestID == "" {
		return logrus.NewEntry(log)
	}
	return log.WithField("request_id", requestID)
}
