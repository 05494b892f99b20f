package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/types"
)

type PomodoroSessionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, session *types.PomodoroSession) (*types.PomodoroSession, error)
  GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.PomodoroSession, error)
  Save(ctx context.Context, tx *gorm.DB, session *types.PomodoroSession) (*types.PomodoroSession, error)
  DeleteByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) error
}

type pomodoroSessionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPomodoroSessionRepo(db *gorm.DB, baseLog *logger.Logger) PomodoroSessionRepo {
  repoLog := baseLog.With("repo", "PomodoroSessionRepo")
  return &pomodoroSessionRepo{db: db, log: repoLog}
}

func (pr *pomodoroSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.PomodoroSession) (*types.PomodoroSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
    return nil, err
  }
  return session, nil
}

// GetByUserAndRange returns every daily record whose Date falls in
// [from, to), oldest first. More than one record for a single day means a
// duplicate-creation race happened; the service layer merges them.
func (pr *pomodoroSessionRepo) GetByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.PomodoroSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.PomodoroSession
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Where("date >= ? AND date < ?", from, to).
    Order("date ASC").
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *pomodoroSessionRepo) Save(ctx context.Context, tx *gorm.DB, session *types.PomodoroSession) (*types.PomodoroSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if err := transaction.WithContext(ctx).Save(session).Error; err != nil {
    return nil, err
  }
  return session, nil
}

func (pr *pomodoroSessionRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(sessionIDs) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Where("id IN ?", sessionIDs).
    Delete(&types.PomodoroSession{}).Error
}
