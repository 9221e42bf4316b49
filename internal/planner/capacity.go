package planner

import (
	"time"

	"github.com/mariakotova/atelier/internal/domain"
)

// DailyCapacityMinutes converts a user's planner configuration into the
// per-day minute budget.
func DailyCapacityMinutes(cfg *domain.PlannerConfig) int {
	return cfg.HoursPerDay * 60
}

// IsWorkDay reports whether the date falls on one of the configured work
// days. Scheduling on non-work days is not blocked, only flagged.
func IsWorkDay(cfg *domain.PlannerConfig, date time.Time) bool {
	return cfg.WorkDays.Contains(date)
}
