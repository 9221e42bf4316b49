package service

import (
	"context"
	"time"

	"github.com/mariakotova/atelier/internal/contract"
	"github.com/mariakotova/atelier/internal/domain"
)

type SettingsService interface {
	// Get returns the user's planner settings, creating the default
	// row on first access.
	Get(ctx context.Context, userID string) (*domain.PlannerConfig, error)
	Update(ctx context.Context, cfg *domain.PlannerConfig) error
}

type OrderService interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	ListUnscheduled(ctx context.Context, userID string) ([]*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) error
	Delete(ctx context.Context, id string) error
}

type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
}

type PlannerService interface {
	View(ctx context.Context, req contract.PlannerViewRequest) (*contract.PlannerViewResponse, error)
	MoveOrder(ctx context.Context, req contract.MoveOrderRequest) (*contract.MoveOrderResponse, error)
	CheckDayLimit(ctx context.Context, req contract.DayLimitRequest) (*contract.DayLimitCheck, error)
	DayOn(ctx context.Context, userID string, date time.Time) (*contract.PlannerViewResponse, error)
}
