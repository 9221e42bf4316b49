package planner

import (
	"testing"
	"time"

	"github.com/mariakotova/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDailyCapacityMinutes(t *testing.T) {
	cfg := &domain.PlannerConfig{HoursPerDay: 8}
	assert.Equal(t, 480, DailyCapacityMinutes(cfg))

	cfg.HoursPerDay = 1
	assert.Equal(t, 60, DailyCapacityMinutes(cfg))

	cfg.HoursPerDay = 24
	assert.Equal(t, 1440, DailyCapacityMinutes(cfg))
}

func TestIsWorkDay(t *testing.T) {
	cfg := &domain.PlannerConfig{
		HoursPerDay: 8,
		WorkDays:    domain.ParseWorkDays("1,2,3,4,5"),
	}
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsWorkDay(cfg, monday))
	assert.False(t, IsWorkDay(cfg, saturday))
}

func TestIsWorkDay_EmptySetFlagsEveryDay(t *testing.T) {
	cfg := &domain.PlannerConfig{HoursPerDay: 8, WorkDays: domain.WorkDaySet{}}
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsWorkDay(cfg, monday))
	// Capacity is still computed regardless.
	assert.Equal(t, 480, DailyCapacityMinutes(cfg))
}
