package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mariakotova/atelier/internal/domain"
	"github.com/mariakotova/atelier/internal/planner"
	"github.com/mariakotova/atelier/internal/repository"
)

type orderService struct {
	orders repository.OrderRepo
}

func NewOrderService(orders repository.OrderRepo) OrderService {
	return &orderService{orders: orders}
}

func (s *orderService) Create(ctx context.Context, o *domain.Order) error {
	if o.TotalMinutes <= 0 {
		return fmt.Errorf("total minutes must be positive, got %d", o.TotalMinutes)
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	// Second precision so timestamps round-trip through the stored RFC3339 text.
	now := time.Now().UTC().Truncate(time.Second)
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Status == "" {
		o.Status = domain.OrderNew
	}
	if !domain.ValidOrderStatuses[o.Status] {
		return fmt.Errorf("invalid order status: %s", o.Status)
	}
	if o.Color == "" {
		o.Color = planner.ColorFor(o.ID)
	}
	o.IsMainPart = true
	o.PartNumber = 1
	if o.TotalParts == 0 {
		o.TotalParts = 1
	}
	return s.orders.Create(ctx, o)
}

func (s *orderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *orderService) ListUnscheduled(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListUnscheduled(ctx, userID)
}

func (s *orderService) Update(ctx context.Context, o *domain.Order) error {
	if o.TotalMinutes <= 0 {
		return fmt.Errorf("total minutes must be positive, got %d", o.TotalMinutes)
	}
	o.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	return s.orders.Update(ctx, o)
}

func (s *orderService) SetStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !domain.ValidOrderStatuses[status] {
		return fmt.Errorf("invalid order status: %s", status)
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	return s.orders.Update(ctx, o)
}

func (s *orderService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}
