package utils

import (
  "os"
  "strconv"
  "strings"
  "github.com/singhHariom1/Studysync-AI/internal/logger"
)

func GetEnv(key, defaultVal string, log *logger.Logger) string {
  if log != nil {
    log = log.With("env_var", key)
  }
  val, ok := os.LookupEnv(key)
  if !ok {
    if log != nil {
      log.Debug("Environment variable not found, using default", "default", defaultVal)
    }
    return defaultVal
  }
  if log != nil {
    log.Debug("Environment variable found, using environment", "environment", val)
  }
  return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
  if log != nil {
    log = log.With("env_var", key)
  }
  valStr, ok := os.LookupEnv(key)
  if !ok {
    if log != nil {
      log.Debug("Environment variable not found, using default", "default", defaultVal)
    }
    return defaultVal
  }
  i, err := strconv.Atoi(valStr)
  if err != nil {
    if log != nil {
      log.Debug("Environment variable could not be parsed as int, using default", "providedVal", valStr, "defaultVal", defaultVal, "error", err)
    }
    return defaultVal
  }
  return i
}

// ParseIntOrDefault parses s as an int, returning def on failure.
func ParseIntOrDefault(s string, def int) int {
  i, err := strconv.Atoi(strings.TrimSpace(s))
  if err != nil {
    return def
  }
  return i
}

// GetEnvAsSlice splits a comma separated environment variable.
func GetEnvAsSlice(key string, defaultVal []string, log *logger.Logger) []string {
  raw := GetEnv(key, "", log)
  if raw == "" {
    return defaultVal
  }
  parts := strings.Split(raw, ",")
  out := make([]string, 0, len(parts))
  for _, p := range parts {
    if trimmed := strings.TrimSpace(p); trimmed != "" {
      out = append(out, trimmed)
    }
  }
  if len(out) == 0 {
    return defaultVal
  }
  return out
}
