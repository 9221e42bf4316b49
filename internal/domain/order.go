package domain

import (
	"strconv"
	"time"
)

// Order is one row of the planner calendar. A user-created order starts as a
// single main part carrying the full requested duration (TotalMinutes). When
// the duration does not fit the remaining capacity of its planned day, the
// splitter spreads it over consecutive days: the main part keeps the first
// day's share and one secondary part is created per additional day.
type Order struct {
	ID         string
	UserID     string
	Title      string
	CustomerID *string
	Category   string
	Status     OrderStatus
	PriceCents int64
	Comment    string
	Color      string

	// Duration and placement
	TotalMinutes   int
	PlannedDate    *time.Time
	OrderInDay     *int
	PlannedMinutes int

	// Split bookkeeping
	IsMainPart    bool
	PartNumber    int
	ParentOrderID *string
	TotalParts    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSecondaryPart reports whether the row is a splitter-created slice of
// another order.
func (o *Order) IsSecondaryPart() bool {
	return !o.IsMainPart && o.ParentOrderID != nil
}

// IsScheduled reports whether the row is placed on a calendar day.
func (o *Order) IsScheduled() bool {
	return o.PlannedDate != nil
}

// Unschedule removes the row from the calendar.
func (o *Order) Unschedule(now time.Time) {
	o.PlannedDate = nil
	o.OrderInDay = nil
	o.PlannedMinutes = 0
	o.UpdatedAt = now
}

// SurfacedInDay reports whether the row appears in the user-visible order
// list of its day. Secondary parts still count toward day capacity but are
// folded into their parent in the list.
func (o *Order) SurfacedInDay() bool {
	return o.IsMainPart || o.ParentOrderID == nil
}

// PartLabel returns a "2/3" style label for split orders, empty otherwise.
func (o *Order) PartLabel() string {
	if o.IsSecondaryPart() && o.TotalParts <= 1 {
		return strconv.Itoa(o.PartNumber)
	}
	if o.TotalParts <= 1 {
		return ""
	}
	return strconv.Itoa(o.PartNumber) + "/" + strconv.Itoa(o.TotalParts)
}
