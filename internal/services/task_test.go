package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/singhHariom1/Studysync-AI/internal/repos"
	"github.com/singhHariom1/Studysync-AI/internal/types"
)

func newTestTaskService(t *testing.T, db *gorm.DB, now time.Time) (*taskService, *time.Time) {
	t.Helper()
	log := newTestLogger(t)
	current := now
	ts := &taskService{
		db:   db,
		log:  log.With("service", "TaskService"),
		repo: repos.NewTaskRepo(db, log),
		loc:  istZone,
		now:  func() time.Time { return current },
	}
	return ts, &current
}

func validTaskInput(now time.Time) TaskCreateInput {
	return TaskCreateInput{
		Title:   "Finish OS assignment",
		Subject: "Operating Systems",
		DueDate: now.Add(48 * time.Hour),
	}
}

func TestTaskCreate_Validation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, istZone)
	ts, _ := newTestTaskService(t, newTestDB(t), now)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*TaskCreateInput)
		substr string
	}{
		{"missing title", func(in *TaskCreateInput) { in.Title = "  " }, "required"},
		{"missing subject", func(in *TaskCreateInput) { in.Subject = "" }, "required"},
		{"missing due date", func(in *TaskCreateInput) { in.DueDate = time.Time{} }, "required"},
		{"title too long", func(in *TaskCreateInput) { in.Title = strings.Repeat("x", types.TaskTitleMaxLen+1) }, "Title cannot exceed"},
		{"subject too long", func(in *TaskCreateInput) { in.Subject = strings.Repeat("x", types.TaskSubjectMaxLen+1) }, "Subject cannot exceed"},
		{"description too long", func(in *TaskCreateInput) { in.Description = strings.Repeat("x", types.TaskDescriptionMaxLen+1) }, "Description cannot exceed"},
		{"due date in the past", func(in *TaskCreateInput) { in.DueDate = now.Add(-48 * time.Hour) }, "past"},
		{"bad priority", func(in *TaskCreateInput) { in.Priority = "urgent" }, "Priority"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validTaskInput(now)
			tt.mutate(&input)
			_, err := ts.Create(ctx, input)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(vErr.Error(), tt.substr) {
				t.Fatalf("expected message containing %q, got %q", tt.substr, vErr.Error())
			}
		})
	}
}

func TestTaskCreate_DefaultsAndColors(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, istZone)
	ts, _ := newTestTaskService(t, newTestDB(t), now)

	view, err := ts.Create(context.Background(), validTaskInput(now))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Status != types.TaskStatusPending {
		t.Fatalf("expected pending status, got %q", view.Status)
	}
	if view.Priority != types.TaskPriorityMedium {
		t.Fatalf("expected medium priority default, got %q", view.Priority)
	}
	if view.SubjectColor == "" || view.PriorityColor == "" {
		t.Fatalf("expected badge colors, got %q / %q", view.SubjectColor, view.PriorityColor)
	}
	if view.IsOverdue {
		t.Fatalf("future-due pending task must not be overdue")
	}
	if view.CompletedAt != nil {
		t.Fatalf("new task must not carry a completion time")
	}
}

func TestTaskCreate_DueTodayAllowed(t *testing.T) {
	// A due date earlier today is valid; only dates before today's start
	// in the app timezone are rejected.
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, istZone)
	ts, _ := newTestTaskService(t, newTestDB(t), now)

	input := validTaskInput(now)
	input.DueDate = time.Date(2026, 3, 10, 9, 0, 0, 0, istZone)
	if _, err := ts.Create(context.Background(), input); err != nil {
		t.Fatalf("due-today task rejected: %v", err)
	}
}

func TestTaskToggle_FlipsStatusAndCompletedAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, istZone)
	ts, _ := newTestTaskService(t, newTestDB(t), now)
	ctx := context.Background()

	view, err := ts.Create(ctx, validTaskInput(now))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	toggled, err := ts.Toggle(ctx, view.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if toggled.Status != types.TaskStatusCompleted {
		t.Fatalf("expected completed, got %q", toggled.Status)
	}
	if toggled.CompletedAt == nil || !toggled.CompletedAt.Equal(now) {
		t.Fatalf("expected completedAt set to now, got %v", toggled.CompletedAt)
	}

	back, err := ts.Toggle(ctx, view.ID)
	if err != nil {
		t.Fatalf("Toggle back: %v", err)
	}
	if back.Status != types.TaskStatusPending || back.CompletedAt != nil {
		t.Fatalf("expected pending with cleared completedAt, got %q / %v", back.Status, back.CompletedAt)
	}
}

func TestTaskUpdate_StatusTransitionManagesCompletedAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, istZone)
	ts, _ := newTestTaskService(t, newTestDB(t), now)
	ctx := context.Background()

	view, err := ts.Create(ctx, validTaskInput(now))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	completed := types.TaskStatusCompleted
	updated, err := ts.Update(ctx, view.ID, TaskUpdateInput{Status: &completed})
	if err != nil {
		t.Fatalf("Update to completed: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatalf("expected completedAt on completion")
	}

	// Re-sending completed must not move the original completion time.
	again, err := ts.Update(ctx, view.ID, TaskUpdateInput{Status: &completed})
	if err != nil {
		t.Fatalf("Update completed again: %v", err)
	}
	if !again.CompletedAt.Equal(*updated.CompletedAt) {
		t.Fatalf("completedAt moved on a no-op status update")
	}

	pending := types.TaskStatusPending
	reverted, err := ts.Update(ctx, view.ID, TaskUpdateInput{Status: &pending})
	if err != nil {
		t.Fatalf("Update to pending: %v", err)
	}
	if reverted.CompletedAt != nil {
		t.Fatalf("expected completedAt cleared on revert, got %v", reverted.CompletedAt)
	}
}

func TestTaskUpdate_SparseFieldsLeaveOthersAlone(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, istZone)
	ts, _ := newTestTaskService(t, newTestDB(t), now)
	ctx := context.Background()

	view, err := ts.Create(ctx, validTaskInput(now))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "Renamed assignment"
	updated, err := ts.Update(ctx, view.ID, TaskUpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Renamed assignment" {
		t.Fatalf("expected renamed title, got %q", updated.Title)
	}
	if updated.Subject != view.Subject || updated.Priority != view.Priority {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestTaskGetUpdateDelete_NotFound(t *testing.T) {
	ts, _ := newTestTaskService(t, newTestDB(t), time.Now())
	ctx := context.Background()
	missing := uuid.New()

	if _, err := ts.GetByID(ctx, missing); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("GetByID: expected ErrTaskNotFound, got %v", err)
	}
	title := "x"
	if _, err := ts.Update(ctx, missing, TaskUpdateInput{Title: &title}); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Update: expected ErrTaskNotFound, got %v", err)
	}
	if _, err := ts.Toggle(ctx, missing); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Toggle: expected ErrTaskNotFound, got %v", err)
	}
	if err := ts.Delete(ctx, missing); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Delete: expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, istZone)
	ts, current := newTestTaskService(t, newTestDB(t), now)
	ctx := context.Background()

	input := validTaskInput(now)
	input.DueDate = now.Add(time.Hour)
	view, err := ts.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	*current = now.Add(2 * time.Hour)
	got, err := ts.GetByID(ctx, view.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsOverdue {
		t.Fatalf("pending task past its due date must be overdue")
	}

	if _, err := ts.Toggle(ctx, view.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	got, err = ts.GetByID(ctx, view.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.IsOverdue {
		t.Fatalf("completed task must never be overdue")
	}
}

func TestTaskProgress_PercentageRounding(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, istZone)
	ts, _ := newTestTaskService(t, newTestDB(t), now)
	ctx := context.Background()

	ids := make([]uuid.UUID, 0, 3)
	for i := 0; i < 3; i++ {
		view, err := ts.Create(ctx, validTaskInput(now))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, view.ID)
	}

	stats, err := ts.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if stats.TotalTasks != 3 || stats.TodayCompleted != 0 || stats.Percentage != 0 {
		t.Fatalf("unexpected fresh progress: %+v", stats)
	}

	if _, err := ts.Toggle(ctx, ids[0]); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	stats, err = ts.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	// 1 of 3 rounds to 33.
	if stats.TodayCompleted != 1 || stats.Percentage != 33 {
		t.Fatalf("unexpected progress after one completion: %+v", stats)
	}

	if _, err := ts.Toggle(ctx, ids[1]); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	stats, err = ts.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	// 2 of 3 rounds to 67.
	if stats.Percentage != 67 {
		t.Fatalf("expected 67 percent, got %+v", stats)
	}
}

func TestTaskProgress_OnlyCountsCompletionsFromToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, istZone)
	ts, current := newTestTaskService(t, newTestDB(t), now)
	ctx := context.Background()

	view, err := ts.Create(ctx, validTaskInput(now))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := ts.Toggle(ctx, view.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	// The next day the completion drops out of the daily count but the
	// task still counts toward the total.
	*current = now.Add(24 * time.Hour)
	stats, err := ts.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if stats.TotalTasks != 1 || stats.TodayCompleted != 0 || stats.Percentage != 0 {
		t.Fatalf("expected yesterday's completion excluded, got %+v", stats)
	}
}
