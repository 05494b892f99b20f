package handlers

import (
  "errors"
  "io"
  "net/http"
  "path/filepath"
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/services"
)

const maxSyllabusSize = 10 << 20 // 10MB

type SyllabusHandler struct {
  log               *logger.Logger
  syllabusService   services.SyllabusService
}

func NewSyllabusHandler(log *logger.Logger, syllabusService services.SyllabusService) *SyllabusHandler {
  return &SyllabusHandler{log: log.With("handler", "SyllabusHandler"), syllabusService: syllabusService}
}

func (sh *SyllabusHandler) Upload(c *gin.Context) {
  fileHeader, err := c.FormFile("syllabus")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file uploaded"})
    return
  }
  if fileHeader.Size > maxSyllabusSize {
    c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 10MB"})
    return
  }
  if !isPDFUpload(fileHeader.Filename, fileHeader.Header.Get("Content-Type")) {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are allowed"})
    return
  }

  file, err := fileHeader.Open()
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
    return
  }
  defer file.Close()
  data, err := io.ReadAll(io.LimitReader(file, maxSyllabusSize+1))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
    return
  }

  sh.log.Info("Processing syllabus upload", "filename", fileHeader.Filename, "size", len(data))

  result, err := sh.syllabusService.ExtractTopics(c.Request.Context(), data, fileHeader.Filename)
  if err != nil {
    switch {
    case errors.Is(err, services.ErrGeminiNotConfigured):
      c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    case errors.Is(err, services.ErrEmptyDocument):
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    }
    return
  }

  c.JSON(http.StatusOK, gin.H{
    "success":               true,
    "fileName":              result.FileName,
    "topics":                result.Topics,
    "rawResponse":           result.RawResponse,
    "extractedTextLength":   result.ExtractedTextLength,
    "method":                result.Method,
  })
}

func isPDFUpload(filename, contentType string) bool {
  if strings.EqualFold(contentType, "application/pdf") {
    return true
  }
  return strings.EqualFold(filepath.Ext(filename), ".pdf")
}
