package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/singhHariom1/Studysync-AI/internal/handlers"
  "github.com/singhHariom1/Studysync-AI/internal/middleware"
)

type RouterConfig struct {
  AllowedOrigins    []string
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  GeminiHandler     *handlers.GeminiHandler
  SyllabusHandler   *handlers.SyllabusHandler
  ResourcesHandler  *handlers.ResourcesHandler
  TasksHandler      *handlers.TasksHandler
  PomodoroHandler   *handlers.PomodoroHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(cors.New(cors.Config{
    AllowOrigins:     cfg.AllowedOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")

  // Auth
  auth := api.Group("/auth")
  auth.POST("/signup", cfg.AuthHandler.Signup)
  auth.POST("/login", cfg.AuthHandler.Login)
  auth.POST("/logout", cfg.AuthHandler.Logout)
  auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.GetMe)

  // Gemini Q&A
  gemini := api.Group("/gemini")
  gemini.POST("/ask", cfg.GeminiHandler.Ask)
  gemini.GET("/models", cfg.GeminiHandler.ListModels)

  // Syllabus upload
  api.POST("/syllabus/upload", cfg.SyllabusHandler.Upload)

  // Resource suggestions
  resources := api.Group("/resources")
  resources.POST("/suggest", cfg.ResourcesHandler.Suggest)
  resources.GET("/health", cfg.ResourcesHandler.Health)

  // Tasks
  tasks := api.Group("/tasks")
  tasks.GET("", cfg.TasksHandler.List)
  tasks.POST("", cfg.TasksHandler.Create)
  tasks.GET("/progress", cfg.TasksHandler.Progress)
  tasks.GET("/:id", cfg.TasksHandler.GetByID)
  tasks.PATCH("/:id", cfg.TasksHandler.Update)
  tasks.PATCH("/:id/toggle", cfg.TasksHandler.Toggle)
  tasks.DELETE("/:id", cfg.TasksHandler.Delete)

  // Pomodoro (session required)
  pomodoro := api.Group("/pomodoro")
  pomodoro.Use(cfg.AuthMiddleware.RequireAuth())
  pomodoro.GET("/stats/today", cfg.PomodoroHandler.GetTodayStats)
  pomodoro.POST("/session", cfg.PomodoroHandler.AddSession)
  pomodoro.GET("/stats/weekly", cfg.PomodoroHandler.GetWeeklyStats)

  return router
}
