package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PlannerConfig holds one user's planner capacity settings. A row is created
// lazily on first access; it is never shared between users.
type PlannerConfig struct {
	UserID      string
	HoursPerDay int
	WorkDays    WorkDaySet
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate rejects out-of-range settings at write time. An empty work-day
// set is allowed: capacity is still computed for every date, non-work days
// are only flagged.
func (c *PlannerConfig) Validate() error {
	if c.HoursPerDay < 1 || c.HoursPerDay > 24 {
		return fmt.Errorf("hours per day must be between 1 and 24, got %d", c.HoursPerDay)
	}
	for d := range c.WorkDays {
		if d < 1 || d > 7 {
			return fmt.Errorf("work day must be an ISO weekday 1-7, got %d", d)
		}
	}
	return nil
}

// WorkDaySet is a set of ISO weekdays (Monday=1 .. Sunday=7).
type WorkDaySet map[int]bool

// ParseWorkDays parses a comma-separated weekday list ("1,2,3,4,5").
// Parsing is lenient: blank and malformed tokens are skipped, out-of-range
// values are dropped. The raw string never travels past this boundary.
func ParseWorkDays(s string) WorkDaySet {
	set := make(WorkDaySet)
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		d, err := strconv.Atoi(tok)
		if err != nil || d < 1 || d > 7 {
			continue
		}
		set[d] = true
	}
	return set
}

// String renders the set back to canonical ascending comma form.
func (s WorkDaySet) String() string {
	days := make([]int, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Ints(days)
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// Contains reports whether the given date's weekday is in the set.
func (s WorkDaySet) Contains(date time.Time) bool {
	return s[ISOWeekday(date)]
}

// ISOWeekday returns the ISO 8601 weekday number for a date (Monday=1).
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
