package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  SessionKindWork  = "work"
  SessionKindBreak = "break"
)

type PomodoroEntry struct {
  Kind          string      `json:"type"`
  Duration      int         `json:"duration"`
  CompletedAt   time.Time   `json:"completedAt"`
}

// PomodoroSession is the single daily record per (user, calendar day).
// Date holds the instant the record was opened; the day it belongs to is
// derived from the app timezone, not from server local time.
type PomodoroSession struct {
  ID                uuid.UUID                               `gorm:"type:uuid;primaryKey" json:"id"`
  UserID            uuid.UUID                               `gorm:"not null;index:idx_pomodoro_user_date" json:"userId"`
  Date              time.Time                               `gorm:"not null;index:idx_pomodoro_user_date" json:"date"`
  CompletedCycles   int                                     `gorm:"not null;default:0" json:"completedCycles"`
  TotalWorkTime     int                                     `gorm:"not null;default:0" json:"totalWorkTime"`
  TotalBreakTime    int                                     `gorm:"not null;default:0" json:"totalBreakTime"`
  Sessions          datatypes.JSONSlice[PomodoroEntry]      `json:"sessions"`
  CreatedAt         time.Time                               `gorm:"not null" json:"createdAt"`
  UpdatedAt         time.Time                               `gorm:"not null" json:"updatedAt"`
}

func (PomodoroSession) TableName() string {
  return "pomodoro_session"
}

func ValidSessionKind(kind string) bool {
  return kind == SessionKindWork || kind == SessionKindBreak
}
