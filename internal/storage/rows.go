package storage

import (
	"database/sql"
	"time"

	"github.com/Wilyam390/Task-manager/internal/models"
)

// TimeFormat - канонический текстовый формат, в котором адаптер пишет
// метки времени в базу. Его понимают оба бэкенда.
const TimeFormat = "2006-01-02 15:04:05"

// Порядок важен: сначала форматы, которые реально пишут бэкенды,
// потом общие ISO-варианты.
var timeFormats = []string{
	TimeFormat,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatTime форматирует значение для записи в базу. Всегда в UTC:
// parseTime читает текст без зоны как UTC, и запись в локальной зоне
// сдвинула бы момент времени на величину смещения.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// ScanTasks превращает строки результата в []models.Task независимо от того,
// какой драйвер их вернул. Единственное место, где разбираются сырые
// представления колонок: sqlite отдаёт числа и текст, postgres - bool и
// time.Time.
func ScanTasks(rows *sql.Rows) ([]models.Task, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		tasks = append(tasks, taskFromRow(row))
	}
	return tasks, rows.Err()
}

func taskFromRow(row map[string]any) models.Task {
	return models.Task{
		ID:          toInt64(row["id"]),
		Title:       toString(row["title"]),
		Description: toString(row["description"]),
		Completed:   toBool(row["completed"]),
		CreatedAt:   ToTime(row["created_at"]),
		DueDate:     ToTime(row["due_date"]),
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	default:
		return 0
	}
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case []byte:
		return len(b) > 0 && (b[0] == '1' || b[0] == 't')
	case string:
		return b == "1" || b == "true" || b == "t"
	default:
		return false
	}
}

// ToTime разбирает значение метки времени из базы. Пробует известные
// текстовые форматы по порядку; нераспознанное значение считается
// отсутствующим, а не ошибкой - листинг не должен падать из-за одной
// кривой даты.
func ToTime(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case string:
		return parseTime(t)
	case []byte:
		return parseTime(string(t))
	default:
		return nil
	}
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
