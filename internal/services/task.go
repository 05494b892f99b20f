package services

import (
  "context"
  "errors"
  "fmt"
  "math"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/normalization"
  "github.com/singhHariom1/Studysync-AI/internal/repos"
  "github.com/singhHariom1/Studysync-AI/internal/types"
  "github.com/singhHariom1/Studysync-AI/internal/utils"
)

var ErrTaskNotFound = errors.New("Task not found")

// ValidationError marks failures the handler layer reports as bad input
// rather than server faults.
type ValidationError struct {
  msg string
}

func (e *ValidationError) Error() string {
  return e.msg
}

func newValidationError(format string, args ...any) *ValidationError {
  return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// TaskView is a task plus the presentation fields the client renders
// (badge colors, overdue flag).
type TaskView struct {
  *types.Task
  SubjectColor  string  `json:"subjectColor"`
  PriorityColor string  `json:"priorityColor"`
  IsOverdue     bool    `json:"isOverdue"`
}

type TaskCreateInput struct {
  Title       string
  Subject     string
  DueDate     time.Time
  Priority    string
  Description string
}

type TaskUpdateInput struct {
  Title       *string
  Subject     *string
  DueDate     *time.Time
  Status      *string
  Priority    *string
  Description *string
}

type ProgressStats struct {
  TodayCompleted  int64   `json:"todayCompleted"`
  TotalTasks      int64   `json:"totalTasks"`
  Percentage      int     `json:"percentage"`
}

type TaskService interface {
  Create(ctx context.Context, input TaskCreateInput) (*TaskView, error)
  List(ctx context.Context, filter repos.TaskListFilter) ([]*TaskView, error)
  GetByID(ctx context.Context, taskID uuid.UUID) (*TaskView, error)
  Update(ctx context.Context, taskID uuid.UUID, input TaskUpdateInput) (*TaskView, error)
  Toggle(ctx context.Context, taskID uuid.UUID) (*TaskView, error)
  Delete(ctx context.Context, taskID uuid.UUID) error
  Progress(ctx context.Context) (*ProgressStats, error)
}

type taskService struct {
  db    *gorm.DB
  log   *logger.Logger
  repo  repos.TaskRepo
  loc   *time.Location
  now   func() time.Time
}

func NewTaskService(db *gorm.DB, log *logger.Logger, repo repos.TaskRepo, loc *time.Location) TaskService {
  serviceLog := log.With("service", "TaskService")
  return &taskService{
    db:   db,
    log:  serviceLog,
    repo: repo,
    loc:  loc,
    now:  time.Now,
  }
}

func (ts *taskService) view(task *types.Task) *TaskView {
  return &TaskView{
    Task:          task,
    SubjectColor:  utils.GetSubjectColor(task.Subject),
    PriorityColor: utils.GetPriorityColor(task.Priority),
    IsOverdue:     task.IsOverdue(ts.now()),
  }
}

func (ts *taskService) Create(ctx context.Context, input TaskCreateInput) (*TaskView, error) {
  title := normalization.ParseDisplayString(input.Title)
  subject := normalization.ParseDisplayString(input.Subject)
  if title == "" || subject == "" || input.DueDate.IsZero() {
    return nil, newValidationError("Title, subject, and due date are required")
  }
  if len(title) > types.TaskTitleMaxLen {
    return nil, newValidationError("Title cannot exceed %d characters", types.TaskTitleMaxLen)
  }
  if len(subject) > types.TaskSubjectMaxLen {
    return nil, newValidationError("Subject cannot exceed %d characters", types.TaskSubjectMaxLen)
  }
  if len(input.Description) > types.TaskDescriptionMaxLen {
    return nil, newValidationError("Description cannot exceed %d characters", types.TaskDescriptionMaxLen)
  }
  todayStart, _ := utils.DayBounds(ts.now(), ts.loc)
  if input.DueDate.Before(todayStart) {
    return nil, newValidationError("Due date cannot be in the past")
  }
  priority := input.Priority
  if priority == "" {
    priority = types.TaskPriorityMedium
  }
  if !types.ValidTaskPriority(priority) {
    return nil, newValidationError("Priority must be low, medium or high")
  }

  task := &types.Task{
    ID:          uuid.New(),
    Title:       title,
    Subject:     subject,
    DueDate:     input.DueDate,
    Status:      types.TaskStatusPending,
    Priority:    priority,
    Description: normalization.ParseDisplayString(input.Description),
  }
  if _, err := ts.repo.Create(ctx, nil, task); err != nil {
    return nil, fmt.Errorf("Failed to create task: %w", err)
  }
  ts.log.Info("Task created", "task_id", task.ID, "title", task.Title)
  return ts.view(task), nil
}

func (ts *taskService) List(ctx context.Context, filter repos.TaskListFilter) ([]*TaskView, error) {
  tasks, err := ts.repo.List(ctx, nil, filter)
  if err != nil {
    return nil, fmt.Errorf("Failed to retrieve tasks: %w", err)
  }
  views := make([]*TaskView, 0, len(tasks))
  for _, task := range tasks {
    views = append(views, ts.view(task))
  }
  return views, nil
}

func (ts *taskService) GetByID(ctx context.Context, taskID uuid.UUID) (*TaskView, error) {
  task, err := ts.repo.GetByID(ctx, nil, taskID)
  if err != nil {
    return nil, fmt.Errorf("Failed to retrieve task: %w", err)
  }
  if task == nil {
    return nil, ErrTaskNotFound
  }
  return ts.view(task), nil
}

func (ts *taskService) Update(ctx context.Context, taskID uuid.UUID, input TaskUpdateInput) (*TaskView, error) {
  task, err := ts.repo.GetByID(ctx, nil, taskID)
  if err != nil {
    return nil, fmt.Errorf("Failed to retrieve task: %w", err)
  }
  if task == nil {
    return nil, ErrTaskNotFound
  }

  if input.Title != nil {
    title := normalization.ParseDisplayString(*input.Title)
    if title == "" || len(title) > types.TaskTitleMaxLen {
      return nil, newValidationError("Title is required and cannot exceed %d characters", types.TaskTitleMaxLen)
    }
    task.Title = title
  }
  if input.Subject != nil {
    subject := normalization.ParseDisplayString(*input.Subject)
    if subject == "" || len(subject) > types.TaskSubjectMaxLen {
      return nil, newValidationError("Subject is required and cannot exceed %d characters", types.TaskSubjectMaxLen)
    }
    task.Subject = subject
  }
  if input.DueDate != nil {
    task.DueDate = *input.DueDate
  }
  if input.Priority != nil {
    if !types.ValidTaskPriority(*input.Priority) {
      return nil, newValidationError("Priority must be low, medium or high")
    }
    task.Priority = *input.Priority
  }
  if input.Description != nil {
    if len(*input.Description) > types.TaskDescriptionMaxLen {
      return nil, newValidationError("Description cannot exceed %d characters", types.TaskDescriptionMaxLen)
    }
    task.Description = normalization.ParseDisplayString(*input.Description)
  }
  if input.Status != nil {
    if !types.ValidTaskStatus(*input.Status) {
      return nil, newValidationError("Status must be pending or completed")
    }
    // completedAt transitions atomically with the status change
    if *input.Status == types.TaskStatusCompleted && task.Status == types.TaskStatusPending {
      now := ts.now()
      task.CompletedAt = &now
    } else if *input.Status == types.TaskStatusPending && task.Status == types.TaskStatusCompleted {
      task.CompletedAt = nil
    }
    task.Status = *input.Status
  }

  if _, err := ts.repo.Save(ctx, nil, task); err != nil {
    return nil, fmt.Errorf("Failed to update task: %w", err)
  }
  ts.log.Info("Task updated", "task_id", task.ID, "title", task.Title)
  return ts.view(task), nil
}

func (ts *taskService) Toggle(ctx context.Context, taskID uuid.UUID) (*TaskView, error) {
  task, err := ts.repo.GetByID(ctx, nil, taskID)
  if err != nil {
    return nil, fmt.Errorf("Failed to retrieve task: %w", err)
  }
  if task == nil {
    return nil, ErrTaskNotFound
  }

  if task.Status == types.TaskStatusCompleted {
    task.Status = types.TaskStatusPending
    task.CompletedAt = nil
  } else {
    now := ts.now()
    task.Status = types.TaskStatusCompleted
    task.CompletedAt = &now
  }

  if _, err := ts.repo.Save(ctx, nil, task); err != nil {
    return nil, fmt.Errorf("Failed to toggle task: %w", err)
  }
  ts.log.Info("Task toggled", "task_id", task.ID, "status", task.Status)
  return ts.view(task), nil
}

func (ts *taskService) Delete(ctx context.Context, taskID uuid.UUID) error {
  deleted, err := ts.repo.Delete(ctx, nil, taskID)
  if err != nil {
    return fmt.Errorf("Failed to delete task: %w", err)
  }
  if !deleted {
    return ErrTaskNotFound
  }
  ts.log.Info("Task deleted", "task_id", taskID)
  return nil
}

// Progress reports tasks completed today against the whole task list,
// using the same day-boundary convention as the pomodoro aggregator.
func (ts *taskService) Progress(ctx context.Context) (*ProgressStats, error) {
  todayStart, todayEnd := utils.DayBounds(ts.now(), ts.loc)

  totalTasks, err := ts.repo.CountAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to get progress stats: %w", err)
  }
  todayCompleted, err := ts.repo.CountCompletedBetween(ctx, nil, todayStart, todayEnd)
  if err != nil {
    return nil, fmt.Errorf("Failed to get progress stats: %w", err)
  }

  percentage := 0
  if totalTasks > 0 {
    percentage = int(math.Round(float64(todayCompleted) / float64(totalTasks) * 100))
  }
  return &ProgressStats{
    TodayCompleted: todayCompleted,
    TotalTasks:     totalTasks,
    Percentage:     percentage,
  }, nil
}
