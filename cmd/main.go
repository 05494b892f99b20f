package main

import (
  "fmt"
  "os"
  "time"
  "github.com/joho/godotenv"
  "github.com/singhHariom1/Studysync-AI/internal/logger"
  "github.com/singhHariom1/Studysync-AI/internal/utils"
  "github.com/singhHariom1/Studysync-AI/internal/db"
  "github.com/singhHariom1/Studysync-AI/internal/repos"
  "github.com/singhHariom1/Studysync-AI/internal/services"
  "github.com/singhHariom1/Studysync-AI/internal/handlers"
  "github.com/singhHariom1/Studysync-AI/internal/middleware"
  "github.com/singhHariom1/Studysync-AI/internal/server"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  sessionTTL := utils.GetEnvAsInt("SESSION_TTL", 604800, log)
  port := utils.GetEnv("PORT", "8080", log)
  youtubeAPIKey := os.Getenv("YOUTUBE_API_KEY")
  allowedOrigins := utils.GetEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}, log)
  secureCookies := utils.GetEnv("COOKIE_SECURE", "false", log) == "true"

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Postgres init failed", "error", err)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Fatal("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Timezone
  loc := utils.AppLocation(log)

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  taskRepo := repos.NewTaskRepo(thePG, log)
  pomodoroRepo := repos.NewPomodoroSessionRepo(thePG, log)

  // Gemini runs degraded when no key is present: the AI endpoints
  // report the missing configuration instead of the process exiting.
  geminiClient, err := services.NewGeminiClient(log)
  if err != nil {
    log.Warn("Gemini client not configured, AI endpoints disabled", "error", err)
    geminiClient = nil
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(sessionTTL)*time.Second)
  syllabusService := services.NewSyllabusService(log, geminiClient)
  resourceService := services.NewResourceService(log, geminiClient, youtubeAPIKey)
  taskService := services.NewTaskService(thePG, log, taskRepo, loc)
  pomodoroService := services.NewPomodoroService(thePG, log, pomodoroRepo, loc)

  // Handlers
  log.Info("Setting up Handlers from main...")
  authHandler := handlers.NewAuthHandler(authService, secureCookies)
  geminiHandler := handlers.NewGeminiHandler(log, geminiClient)
  syllabusHandler := handlers.NewSyllabusHandler(log, syllabusService)
  resourcesHandler := handlers.NewResourcesHandler(log, resourceService)
  tasksHandler := handlers.NewTasksHandler(log, taskService)
  pomodoroHandler := handlers.NewPomodoroHandler(log, pomodoroService)
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  router := server.NewRouter(server.RouterConfig{
    AllowedOrigins:   allowedOrigins,
    AuthHandler:      authHandler,
    AuthMiddleware:   authMiddleware,
    GeminiHandler:    geminiHandler,
    SyllabusHandler:  syllabusHandler,
    ResourcesHandler: resourcesHandler,
    TasksHandler:     tasksHandler,
    PomodoroHandler:  pomodoroHandler,
  })

  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
