package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mariakotova/atelier/internal/domain"
)

// TestUser is the user id fixtures default to.
const TestUser = "user-1"

// Order options
type OrderOption func(*domain.Order)

func WithTotalMinutes(m int) OrderOption {
	return func(o *domain.Order) {
		o.TotalMinutes = m
	}
}

// WithPlacement plans the order on a date with a per-day allocation and rank.
func WithPlacement(date time.Time, minutes int, rank int) OrderOption {
	return func(o *domain.Order) {
		d := date
		r := rank
		o.PlannedDate = &d
		o.PlannedMinutes = minutes
		o.OrderInDay = &r
	}
}

func WithOrderStatus(s domain.OrderStatus) OrderOption {
	return func(o *domain.Order) {
		o.Status = s
	}
}

func WithCustomer(customerID string) OrderOption {
	return func(o *domain.Order) {
		o.CustomerID = &customerID
	}
}

func WithOrderUser(userID string) OrderOption {
	return func(o *domain.Order) {
		o.UserID = userID
	}
}

func WithCreatedAt(t time.Time) OrderOption {
	return func(o *domain.Order) {
		o.CreatedAt = t
		o.UpdatedAt = t
	}
}

// AsSecondaryPart turns the fixture into a splitter-created slice of parent.
func AsSecondaryPart(parentID string, partNumber int) OrderOption {
	return func(o *domain.Order) {
		p := parentID
		o.IsMainPart = false
		o.ParentOrderID = &p
		o.PartNumber = partNumber
		o.TotalMinutes = 0
	}
}

// NewTestOrder builds a schedulable main-part order with sane defaults.
func NewTestOrder(title string, opts ...OrderOption) *domain.Order {
	now := time.Now().UTC()
	o := &domain.Order{
		ID:           uuid.New().String(),
		UserID:       TestUser,
		Title:        title,
		Status:       domain.OrderNew,
		Color:        "#8ec07c",
		TotalMinutes: 60,
		IsMainPart:   true,
		PartNumber:   1,
		TotalParts:   1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewTestCustomer builds a customer owned by TestUser.
func NewTestCustomer(firstName, lastName string) *domain.Customer {
	return &domain.Customer{
		ID:        uuid.New().String(),
		UserID:    TestUser,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     "+79990001122",
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestConfig builds planner settings for the given user: 8 hours per
// day, Monday through Friday.
func NewTestConfig(userID string) *domain.PlannerConfig {
	now := time.Now().UTC()
	return &domain.PlannerConfig{
		UserID:      userID,
		HoursPerDay: 8,
		WorkDays:    domain.ParseWorkDays("1,2,3,4,5"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
