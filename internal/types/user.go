package types

import (
  "errors"
  "time"
  "github.com/google/uuid"
)

var (
  ErrEmailInUse         = errors.New("Email already in use")
  ErrInvalidCredentials = errors.New("Invalid credentials")
)

type User struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Name        string      `gorm:"column:name" json:"name"`
  Email       string      `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password    string      `gorm:"not null;column:password" json:"-"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
