package repository

import (
	"context"
	"time"

	"github.com/mariakotova/atelier/internal/domain"
)

type OrderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	// ListOnDate returns every row planned on the date (main and secondary
	// parts), ordered by intra-day rank with unset ranks last.
	ListOnDate(ctx context.Context, userID string, date time.Time) ([]*domain.Order, error)
	// ListUnscheduled returns surfaced rows without a planned date.
	ListUnscheduled(ctx context.Context, userID string) ([]*domain.Order, error)
	ListSecondaryParts(ctx context.Context, parentID string) ([]*domain.Order, error)
	DeleteSecondaryParts(ctx context.Context, parentID string) error
	// SumPlannedMinutesOnDate totals per-day allocations on a date,
	// excluding the given logical order (its main row and all its parts).
	SumPlannedMinutesOnDate(ctx context.Context, userID string, date time.Time, excludeOrderID string) (int, error)
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id string) error
}

type CustomerRepo interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
}

type PlannerConfigRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.PlannerConfig, error)
	Upsert(ctx context.Context, cfg *domain.PlannerConfig) error
}
