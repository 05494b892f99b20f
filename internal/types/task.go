package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  TaskStatusPending   = "pending"
  TaskStatusCompleted = "completed"

  TaskPriorityLow    = "low"
  TaskPriorityMedium = "medium"
  TaskPriorityHigh   = "high"

  TaskTitleMaxLen       = 100
  TaskSubjectMaxLen     = 50
  TaskDescriptionMaxLen = 500
)

type Task struct {
  ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  Title         string        `gorm:"not null;column:title" json:"title"`
  Subject       string        `gorm:"not null;index;column:subject" json:"subject"`
  DueDate       time.Time     `gorm:"not null;index:idx_task_status_due,priority:2" json:"dueDate"`
  Status        string        `gorm:"not null;default:pending;index:idx_task_status_due,priority:1" json:"status"`
  Priority      string        `gorm:"not null;default:medium" json:"priority"`
  Description   string        `gorm:"column:description" json:"description,omitempty"`
  CompletedAt   *time.Time    `gorm:"column:completed_at" json:"completedAt"`
  CreatedAt     time.Time     `gorm:"not null" json:"createdAt"`
  UpdatedAt     time.Time     `gorm:"not null" json:"updatedAt"`
}

func (Task) TableName() string {
  return "task"
}

// IsOverdue reports whether a still-pending task's due date has passed.
func (t *Task) IsOverdue(now time.Time) bool {
  return t.Status == TaskStatusPending && t.DueDate.Before(now)
}

func ValidTaskStatus(s string) bool {
  return s == TaskStatusPending || s == TaskStatusCompleted
}

func ValidTaskPriority(p string) bool {
  return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh
}
