package handlers

import (
  "errors"
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/services"
)

type ResourcesHandler struct {
  log               *logger.Logger
  resourceService   services.ResourceService
}

func NewResourcesHandler(log *logger.Logger, resourceService services.ResourceService) *ResourcesHandler {
  return &ResourcesHandler{log: log.With("handler", "ResourcesHandler"), resourceService: resourceService}
}

func (rh *ResourcesHandler) Suggest(c *gin.Context) {
  var req struct {
    Topics      []string    `json:"topics"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Topics array is required"})
    return
  }

  resources, totalTopics, err := rh.resourceService.Suggest(c.Request.Context(), req.Topics)
  if err != nil {
    if errors.Is(err, services.ErrGeminiNotConfigured) {
      c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
      return
    }
    // everything else Suggest can return is a local validation failure
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }

  c.JSON(http.StatusOK, gin.H{
    "success":       true,
    "resources":     resources,
    "totalTopics":   totalTopics,
    "message":       fmt.Sprintf("Generated resources for %d topics", totalTopics),
  })
}

func (rh *ResourcesHandler) Health(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{
    "status":               "healthy",
    "geminiConfigured":     rh.resourceService.Configured(),
    "maxTopicsPerRequest":  services.MaxTopicsPerRequest,
    "timeoutPerTopic":      services.TimeoutPerTopic.Milliseconds(),
  })
}
