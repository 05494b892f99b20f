package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/types"
)

type TaskListFilter struct {
  Status      string
  Subject     string
  SortBy      string
  SortOrder   string
  Limit       int
}

type TaskRepo interface {
  Create(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error)
  List(ctx context.Context, tx *gorm.DB, filter TaskListFilter) ([]*types.Task, error)
  GetByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.Task, error)
  Save(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error)
  Delete(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (bool, error)
  CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
  CountCompletedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error)
}

type taskRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
  repoLog := baseLog.With("repo", "TaskRepo")
  return &taskRepo{db: db, log: repoLog}
}

var taskSortColumns = map[string]string{
  "dueDate":   "due_date",
  "createdAt": "created_at",
  "priority":  "priority",
  "title":     "title",
  "status":    "status",
}

func (tr *taskRepo) Create(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if err := transaction.WithContext(ctx).Create(task).Error; err != nil {
    return nil, err
  }
  return task, nil
}

func (tr *taskRepo) List(ctx context.Context, tx *gorm.DB, filter TaskListFilter) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  q := transaction.WithContext(ctx).Model(&types.Task{})
  if filter.Status != "" {
    q = q.Where("status = ?", filter.Status)
  }
  if filter.Subject != "" {
    q = q.Where("subject = ?", filter.Subject)
  }
  column, ok := taskSortColumns[filter.SortBy]
  if !ok {
    column = "due_date"
  }
  direction := "ASC"
  if filter.SortOrder == "desc" {
    direction = "DESC"
  }
  limit := filter.Limit
  if limit <= 0 {
    limit = 50
  }
  var results []*types.Task
  if err := q.Order(column + " " + direction).Limit(limit).Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tr *taskRepo) GetByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var task types.Task
  err := transaction.WithContext(ctx).Where("id = ?", taskID).First(&task).Error
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, nil
    }
    return nil, err
  }
  return &task, nil
}

func (tr *taskRepo) Save(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if err := transaction.WithContext(ctx).Save(task).Error; err != nil {
    return nil, err
  }
  return task, nil
}

func (tr *taskRepo) Delete(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  res := transaction.WithContext(ctx).Where("id = ?", taskID).Delete(&types.Task{})
  if res.Error != nil {
    return false, res.Error
  }
  return res.RowsAffected > 0, nil
}

func (tr *taskRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).Model(&types.Task{}).Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (tr *taskRepo) CountCompletedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Task{}).
    Where("status = ?", types.TaskStatusCompleted).
    Where("completed_at >= ? AND completed_at < ?", from, to).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
