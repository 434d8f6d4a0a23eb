package http

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/Wilyam390/Task-manager/internal/models"
	"github.com/Wilyam390/Task-manager/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"datetime": formatDateTime,
}).ParseFS(templateFS, "templates/*.html"))

func formatDateTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

type indexData struct {
	Tasks       []models.Task
	Query       service.ListQuery
	Flash       *Flash
	Environment string
}

func (h *TaskHandler) renderIndex(w http.ResponseWriter, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.log.WithError(err).Error("failed to render index template")
		h.renderError(w)
	}
}

// renderError отдаёт общую страницу ошибки без деталей и стектрейсов
func (h *TaskHandler) renderError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := templates.ExecuteTemplate(w, "error.html", nil); err != nil {
		h.log.WithError(err).Error("failed to render error template")
	}
}
