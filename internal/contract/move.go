package contract

import (
	"time"

	"github.com/mariakotova/atelier/internal/domain"
)

type MoveOrderRequest struct {
	UserID   string
	OrderID  string
	Date     *time.Time // nil unschedules the order
	Rank     *int       // nil appends to the end of the day
	DryRun   bool
	Now      *time.Time
}

func NewMoveOrderRequest(userID, orderID string) MoveOrderRequest {
	return MoveOrderRequest{
		UserID:  userID,
		OrderID: orderID,
	}
}

type MoveOrderResponse struct {
	Order         *domain.Order
	Parts         []*domain.Order
	AffectedDates []time.Time
	Warnings      []string
}

type DayLimitRequest struct {
	UserID  string
	OrderID string
	Date    time.Time
}

// DayLimitCheck reports whether placing the order on the date would
// push committed minutes past daily capacity.
type DayLimitCheck struct {
	Date             time.Time
	CapacityMinutes  int
	CommittedMinutes int
	OrderMinutes     int
	ProjectedMinutes int
	Exceeds          bool
	OverMinutes      int
}
