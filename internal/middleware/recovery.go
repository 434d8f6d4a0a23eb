package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Wilyam390/Task-manager/internal/logger"
)

// RecoveryMiddleware ловит паники обработчиков: логирует и отдаёт общий
// ответ 500 без деталей. Процесс продолжает жить.
func RecoveryMiddleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.WithRequestID(log, GetRequestID(r.Context())).
						WithField("panic", rec).
						Error("panic recovered in handler")
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
