package handlers

import (
  "errors"
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/repos"
  "github.com/singhHariom1/Studysync-AI/internal/services"
  "github.com/singhHariom1/Studysync-AI/internal/utils"
)

type TasksHandler struct {
  log           *logger.Logger
  taskService   services.TaskService
}

func NewTasksHandler(log *logger.Logger, taskService services.TaskService) *TasksHandler {
  return &TasksHandler{log: log.With("handler", "TasksHandler"), taskService: taskService}
}

func respondTaskError(c *gin.Context, err error) {
  var vErr *services.ValidationError
  switch {
  case errors.Is(err, services.ErrTaskNotFound):
    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
  case errors.As(err, &vErr):
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
  default:
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
  }
}

func parseTaskID(c *gin.Context) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusNotFound, gin.H{"error": services.ErrTaskNotFound.Error()})
    return uuid.Nil, false
  }
  return id, true
}

func (th *TasksHandler) Create(c *gin.Context) {
  var req struct {
    Title         string      `json:"title"`
    Subject       string      `json:"subject"`
    DueDate       time.Time   `json:"dueDate"`
    Priority      string      `json:"priority"`
    Description   string      `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Title, subject, and due date are required"})
    return
  }
  task, err := th.taskService.Create(c.Request.Context(), services.TaskCreateInput{
    Title:       req.Title,
    Subject:     req.Subject,
    DueDate:     req.DueDate,
    Priority:    req.Priority,
    Description: req.Description,
  })
  if err != nil {
    respondTaskError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"success": true, "task": task})
}

func (th *TasksHandler) List(c *gin.Context) {
  filter := repos.TaskListFilter{
    Status:    c.Query("status"),
    Subject:   c.Query("subject"),
    SortBy:    c.DefaultQuery("sortBy", "dueDate"),
    SortOrder: c.DefaultQuery("sortOrder", "asc"),
    Limit:     utils.ParseIntOrDefault(c.DefaultQuery("limit", "50"), 50),
  }
  tasks, err := th.taskService.List(c.Request.Context(), filter)
  if err != nil {
    respondTaskError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks, "total": len(tasks)})
}

func (th *TasksHandler) GetByID(c *gin.Context) {
  taskID, ok := parseTaskID(c)
  if !ok {
    return
  }
  task, err := th.taskService.GetByID(c.Request.Context(), taskID)
  if err != nil {
    respondTaskError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

func (th *TasksHandler) Update(c *gin.Context) {
  taskID, ok := parseTaskID(c)
  if !ok {
    return
  }
  var req struct {
    Title         *string       `json:"title"`
    Subject       *string       `json:"subject"`
    DueDate       *time.Time    `json:"dueDate"`
    Status        *string       `json:"status"`
    Priority      *string       `json:"priority"`
    Description   *string       `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
    return
  }
  task, err := th.taskService.Update(c.Request.Context(), taskID, services.TaskUpdateInput{
    Title:       req.Title,
    Subject:     req.Subject,
    DueDate:     req.DueDate,
    Status:      req.Status,
    Priority:    req.Priority,
    Description: req.Description,
  })
  if err != nil {
    respondTaskError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

func (th *TasksHandler) Toggle(c *gin.Context) {
  taskID, ok := parseTaskID(c)
  if !ok {
    return
  }
  task, err := th.taskService.Toggle(c.Request.Context(), taskID)
  if err != nil {
    respondTaskError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

func (th *TasksHandler) Delete(c *gin.Context) {
  taskID, ok := parseTaskID(c)
  if !ok {
    return
  }
  if err := th.taskService.Delete(c.Request.Context(), taskID); err != nil {
    respondTaskError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted successfully"})
}

func (th *TasksHandler) Progress(c *gin.Context) {
  stats, err := th.taskService.Progress(c.Request.Context())
  if err != nil {
    respondTaskError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{
    "success":         true,
    "todayCompleted":  stats.TodayCompleted,
    "totalTasks":      stats.TotalTasks,
    "percentage":      stats.Percentage,
  })
}
