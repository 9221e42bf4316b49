package planner

import (
	"sort"
	"time"

	"github.com/mariakotova/atelier/internal/domain"
)

// DayView is the derived per-date aggregate shown on the planner. It is
// never persisted; it is rebuilt from the rows planned on the date.
type DayView struct {
	Date            time.Time
	Orders          []*domain.Order
	TotalMinutes    int
	CapacityMinutes int
	OccupancyPct    int
	IsOverLimit     bool
	OverMinutes     int
	IsWorkDay       bool
}

// BuildDayView aggregates all rows planned on a date. Every row (main and
// secondary parts alike) counts toward TotalMinutes; only rows passing
// SurfacedInDay appear in Orders, ordered by intra-day rank.
func BuildDayView(date time.Time, rows []*domain.Order, capacityMin int, workDay bool) DayView {
	v := DayView{
		Date:            date,
		CapacityMinutes: capacityMin,
		IsWorkDay:       workDay,
	}

	for _, row := range rows {
		v.TotalMinutes += row.PlannedMinutes
		if row.SurfacedInDay() {
			v.Orders = append(v.Orders, row)
		}
	}
	SortRows(v.Orders)

	if capacityMin > 0 {
		v.OccupancyPct = v.TotalMinutes * 100 / capacityMin
		if v.OccupancyPct > 100 {
			v.OccupancyPct = 100
		}
	}
	if v.TotalMinutes > capacityMin {
		v.IsOverLimit = true
		v.OverMinutes = v.TotalMinutes - capacityMin
	}
	return v
}

// SortRows orders rows by intra-day rank: OrderInDay ascending with unset
// ranks last, created time as the stable tie-break.
func SortRows(rows []*domain.Order) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if (a.OrderInDay == nil) != (b.OrderInDay == nil) {
			return a.OrderInDay != nil
		}
		if a.OrderInDay != nil && b.OrderInDay != nil && *a.OrderInDay != *b.OrderInDay {
			return *a.OrderInDay < *b.OrderInDay
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
