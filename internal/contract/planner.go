package contract

import (
	"time"

	"github.com/mariakotova/atelier/internal/planner"
)

type PlannerViewRequest struct {
	UserID    string
	StartDate *time.Time // nil means the Monday of the current week
	Weeks     int
}

func NewPlannerViewRequest(userID string) PlannerViewRequest {
	return PlannerViewRequest{
		UserID: userID,
		Weeks:  2,
	}
}

type PlannerViewResponse struct {
	GeneratedAt     time.Time
	StartDate       time.Time
	Weeks           int
	CapacityMinutes int
	Days            []planner.DayView
	Unscheduled     []OrderCard
}

// OrderCard is the surfaced shape of an order row in planner output.
type OrderCard struct {
	ID             string
	Title          string
	Color          string
	Status         string
	TotalMinutes   int
	PlannedMinutes int
	PartLabel      string
	CustomerName   string
}
