package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/services"
)

type GeminiHandler struct {
  log           *logger.Logger
  geminiClient  services.GeminiClient
}

func NewGeminiHandler(log *logger.Logger, geminiClient services.GeminiClient) *GeminiHandler {
  return &GeminiHandler{log: log.With("handler", "GeminiHandler"), geminiClient: geminiClient}
}

func (gh *GeminiHandler) Ask(c *gin.Context) {
  if gh.geminiClient == nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrGeminiNotConfigured.Error()})
    return
  }
  var req struct {
    Question    string      `json:"question"`
  }
  if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Question is required"})
    return
  }
  response, err := gh.geminiClient.GenerateContent(c.Request.Context(), req.Question)
  if err != nil {
    gh.log.Error("Gemini ask failed", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "Gemini API error: " + err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"response": response})
}

func (gh *GeminiHandler) ListModels(c *gin.Context) {
  if gh.geminiClient == nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrGeminiNotConfigured.Error()})
    return
  }
  models, err := gh.geminiClient.ListModels(c.Request.Context())
  if err != nil {
    gh.log.Error("Gemini model list failed", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch models: " + err.Error()})
    return
  }
  modelNames := make([]string, 0, len(models))
  textModels := make([]services.GeminiModel, 0, len(models))
  for _, m := range models {
    modelNames = append(modelNames, m.Name)
    for _, method := range m.SupportedMethods {
      if method == "generateContent" {
        textModels = append(textModels, m)
        break
      }
    }
  }
  c.JSON(http.StatusOK, gin.H{
    "models":      models,
    "modelNames":  modelNames,
    "textModels":  textModels,
  })
}
