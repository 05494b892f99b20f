package services

import (
  "context"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/repos"
  "github.com/singhHariom1/Studysync-AI/internal/types"
)

var (
  ErrSessionFieldsRequired = errors.New("Type and duration are required")
  ErrInvalidSessionKind    = errors.New(`Type must be either "work" or "break"`)
)

type PomodoroCounters struct {
  CompletedCycles   int   `json:"completedCycles"`
  TotalWorkTime     int   `json:"totalWorkTime"`
  TotalBreakTime    int   `json:"totalBreakTime"`
}

type TodayStats struct {
  PomodoroCounters
  TotalSessions int `json:"totalSessions"`
}

type DailyStats struct {
  Date              string    `json:"date"`
  CompletedCycles   int       `json:"completedCycles"`
  TotalWorkTime     int       `json:"totalWorkTime"`
  TotalBreakTime    int       `json:"totalBreakTime"`
}

type PomodoroService interface {
  RecordSession(ctx context.Context, userID uuid.UUID, kind string, durationMinutes int) (*PomodoroCounters, error)
  GetTodayStats(ctx context.Context, userID uuid.UUID) (*TodayStats, error)
  GetWeeklyStats(ctx context.Context, userID uuid.UUID) ([]DailyStats, error)
}

type pomodoroService struct {
  db    *gorm.DB
  log   *logger.Logger
  repo  repos.PomodoroSessionRepo
  loc   *time.Location
  now   func() time.Time
}

func NewPomodoroService(db *gorm.DB, log *logger.Logger, repo repos.PomodoroSessionRepo, loc *time.Location) PomodoroService {
  serviceLog := log.With("service", "PomodoroService")
  return &pomodoroService{
    db:   db,
    log:  serviceLog,
    repo: repo,
    loc:  loc,
    now:  time.Now,
  }
}

// dayBounds computes the [start, end) instants of the calendar day that
// contains t in the service timezone. The day boundary is independent of
// server or client local time.
func (ps *pomodoroService) dayBounds(t time.Time) (time.Time, time.Time) {
  local := t.In(ps.loc)
  start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, ps.loc)
  return start, start.Add(24 * time.Hour)
}

func (ps *pomodoroService) RecordSession(ctx context.Context, userID uuid.UUID, kind string, durationMinutes int) (*PomodoroCounters, error) {
  if kind == "" || durationMinutes == 0 {
    return nil, ErrSessionFieldsRequired
  }
  if !types.ValidSessionKind(kind) {
    return nil, ErrInvalidSessionKind
  }
  if durationMinutes < 0 {
    return nil, ErrSessionFieldsRequired
  }

  now := ps.now()
  var counters PomodoroCounters
  err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    record, err := ps.getOrCreateToday(ctx, tx, userID, now)
    if err != nil {
      return err
    }

    record.Sessions = append(record.Sessions, types.PomodoroEntry{
      Kind:        kind,
      Duration:    durationMinutes,
      CompletedAt: now,
    })
    if kind == types.SessionKindWork {
      record.CompletedCycles++
      record.TotalWorkTime += durationMinutes
    } else {
      record.TotalBreakTime += durationMinutes
    }

    if _, err := ps.repo.Save(ctx, tx, record); err != nil {
      return fmt.Errorf("Failed to save session record: %w", err)
    }
    counters = PomodoroCounters{
      CompletedCycles: record.CompletedCycles,
      TotalWorkTime:   record.TotalWorkTime,
      TotalBreakTime:  record.TotalBreakTime,
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  return &counters, nil
}

func (ps *pomodoroService) GetTodayStats(ctx context.Context, userID uuid.UUID) (*TodayStats, error) {
  now := ps.now()
  var stats TodayStats
  err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    record, err := ps.getOrCreateToday(ctx, tx, userID, now)
    if err != nil {
      return err
    }
    stats = TodayStats{
      PomodoroCounters: PomodoroCounters{
        CompletedCycles: record.CompletedCycles,
        TotalWorkTime:   record.TotalWorkTime,
        TotalBreakTime:  record.TotalBreakTime,
      },
      TotalSessions: len(record.Sessions),
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  return &stats, nil
}

func (ps *pomodoroService) GetWeeklyStats(ctx context.Context, userID uuid.UUID) ([]DailyStats, error) {
  now := ps.now()
  todayStart, todayEnd := ps.dayBounds(now)
  from := todayStart.Add(-7 * 24 * time.Hour)

  records, err := ps.repo.GetByUserAndRange(ctx, nil, userID, from, todayEnd)
  if err != nil {
    return nil, fmt.Errorf("Failed to get weekly statistics: %w", err)
  }

  stats := make([]DailyStats, 0, len(records))
  for _, record := range records {
    stats = append(stats, DailyStats{
      Date:            record.Date.In(ps.loc).Format("2006-01-02"),
      CompletedCycles: record.CompletedCycles,
      TotalWorkTime:   record.TotalWorkTime,
      TotalBreakTime:  record.TotalBreakTime,
    })
  }
  return stats, nil
}

// getOrCreateToday resolves today's single daily record. Duplicate records
// for the same day (a duplicate-creation race between concurrent writers)
// are merged into the oldest one before anything else happens; both the
// read and write paths share this cleanup so the at-most-one invariant is
// restored on the next touch.
func (ps *pomodoroService) getOrCreateToday(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (*types.PomodoroSession, error) {
  start, end := ps.dayBounds(now)

  records, err := ps.repo.GetByUserAndRange(ctx, tx, userID, start, end)
  if err != nil {
    return nil, fmt.Errorf("Failed to look up today's record: %w", err)
  }

  if len(records) > 1 {
    merged, mErr := ps.mergeDuplicates(ctx, tx, records)
    if mErr != nil {
      return nil, mErr
    }
    return merged, nil
  }
  if len(records) == 1 {
    return records[0], nil
  }

  record := &types.PomodoroSession{
    ID:       uuid.New(),
    UserID:   userID,
    Date:     now,
    Sessions: []types.PomodoroEntry{},
  }
  if _, err := ps.repo.Create(ctx, tx, record); err != nil {
    return nil, fmt.Errorf("Failed to create today's record: %w", err)
  }
  return record, nil
}

func (ps *pomodoroService) mergeDuplicates(ctx context.Context, tx *gorm.DB, records []*types.PomodoroSession) (*types.PomodoroSession, error) {
  survivor := records[0]
  extraIDs := make([]uuid.UUID, 0, len(records)-1)
  for _, dup := range records[1:] {
    survivor.CompletedCycles += dup.CompletedCycles
    survivor.TotalWorkTime += dup.TotalWorkTime
    survivor.TotalBreakTime += dup.TotalBreakTime
    survivor.Sessions = append(survivor.Sessions, dup.Sessions...)
    extraIDs = append(extraIDs, dup.ID)
  }
  ps.log.Warn("Merged duplicate daily records", "user_id", survivor.UserID, "duplicates", len(extraIDs))

  if _, err := ps.repo.Save(ctx, tx, survivor); err != nil {
    return nil, fmt.Errorf("Failed to save merged record: %w", err)
  }
  if err := ps.repo.DeleteByIDs(ctx, tx, extraIDs); err != nil {
    return nil, fmt.Errorf("Failed to delete duplicate records: %w", err)
  }
  return survivor, nil
}
