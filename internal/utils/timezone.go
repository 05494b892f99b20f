package utils

import (
  "time"
  "github.com/singhHariom1/Studysync-AI/internal/logger"
)

// The app counts "a day" in one configurable timezone, applied to both
// pomodoro day boundaries and the task progress statistic. Defaults to
// Asia/Kolkata (UTC+5:30); a fixed offset stands in when tzdata is missing.
const defaultTimezone = "Asia/Kolkata"

func AppLocation(log *logger.Logger) *time.Location {
  name := GetEnv("APP_TIMEZONE", defaultTimezone, log)
  loc, err := time.LoadLocation(name)
  if err != nil {
    if log != nil {
      log.Warn("Could not load APP_TIMEZONE, falling back to fixed UTC+5:30", "timezone", name, "error", err)
    }
    return time.FixedZone("IST", 5*3600+30*60)
  }
  return loc
}

// DayBounds returns the [start, end) UTC instants of the calendar day that
// contains now, as observed in loc.
func DayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
  local := now.In(loc)
  start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
  return start, start.Add(24 * time.Hour)
}
