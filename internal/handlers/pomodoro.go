package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/requestdata"
  "github.com/singhHariom1/Studysync-AI/internal/services"
)

type PomodoroHandler struct {
  log               *logger.Logger
  pomodoroService   services.PomodoroService
}

func NewPomodoroHandler(log *logger.Logger, pomodoroService services.PomodoroService) *PomodoroHandler {
  return &PomodoroHandler{log: log.With("handler", "PomodoroHandler"), pomodoroService: pomodoroService}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
    return uuid.Nil, false
  }
  return rd.UserID, true
}

func (ph *PomodoroHandler) GetTodayStats(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  stats, err := ph.pomodoroService.GetTodayStats(c.Request.Context(), userID)
  if err != nil {
    ph.log.Error("Error getting Pomodoro stats", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get Pomodoro statistics"})
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

func (ph *PomodoroHandler) AddSession(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    Type        string      `json:"type"`
    Duration    int         `json:"duration"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": services.ErrSessionFieldsRequired.Error()})
    return
  }
  counters, err := ph.pomodoroService.RecordSession(c.Request.Context(), userID, req.Type, req.Duration)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrSessionFieldsRequired), errors.Is(err, services.ErrInvalidSessionKind):
      c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
    default:
      ph.log.Error("Error adding Pomodoro session", "error", err)
      c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add session"})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "message": "Session added successfully", "data": counters})
}

func (ph *PomodoroHandler) GetWeeklyStats(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  stats, err := ph.pomodoroService.GetWeeklyStats(c.Request.Context(), userID)
  if err != nil {
    ph.log.Error("Error getting weekly stats", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get weekly statistics"})
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
