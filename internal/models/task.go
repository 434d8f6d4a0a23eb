package models

import "time"

// Task - единственная сущность приложения. id выдаёт база при вставке.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`

	// Вычисляемые поля (не хранятся в базе, заполняются при чтении)
	IsOverdue  bool `json:"is_overdue"`
	IsDueToday bool `json:"is_due_today"`
}

// Annotate заполняет вычисляемые поля относительно момента now.
// Задача без due_date никогда не бывает просроченной или "на сегодня".
func (t *Task) Annotate(now time.Time) {
	t.IsOverdue = false
	t.IsDueToday = false
	if t.DueDate == nil {
		return
	}
	t.IsOverdue = !t.Completed && t.DueDate.Before(now)
	y1, m1, d1 := t.DueDate.Date()
	y2, m2, d2 := now.Date()
	t.IsDueToday = y1 == y2 && m1 == m2 && d1 == d2
}
