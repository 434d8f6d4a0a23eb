package models

import (
	"testing"
	"time"
)

func TestAnnotate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour * 36)
	laterToday := now.Add(time.Hour * 5)

	cases := []struct {
		name         string
		task         Task
		wantOverdue  bool
		wantDueToday bool
	}{
		{"no due date", Task{}, false, false},
		{"past due, pending", Task{DueDate: &past}, true, false},
		{"past due, completed", Task{DueDate: &past, Completed: true}, false, false},
		{"due later today", Task{DueDate: &laterToday}, false, true},
		{"due earlier today", Task{DueDate: ptr(now.Add(-time.Hour))}, true, true},
	}
	for _, tc := range cases {
		tc.task.Annotate(now)
		if tc.task.IsOverdue != tc.wantOverdue {
			t.Errorf("%s: IsOverdue = %v, want %v", tc.name, tc.task.IsOverdue, tc.wantOverdue)
		}
		if tc.task.IsDueToday != tc.wantDueToday {
			t.Errorf("%s: IsDueToday = %v, want %v", tc.name, tc.task.IsDueToday, tc.wantDueToday)
		}
	}
}

func ptr(t time.Time) *time.Time { return &t }
