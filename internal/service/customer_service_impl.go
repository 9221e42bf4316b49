package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mariakotova/atelier/internal/domain"
	"github.com/mariakotova/atelier/internal/repository"
)

type customerService struct {
	customers repository.CustomerRepo
}

func NewCustomerService(customers repository.CustomerRepo) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) error {
	if err := c.ValidatePhone(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC().Truncate(time.Second)
	return s.customers.Create(ctx, c)
}

func (s *customerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *customerService) ListByUser(ctx context.Context, userID string) ([]*domain.Customer, error) {
	return s.customers.ListByUser(ctx, userID)
}

func (s *customerService) Update(ctx context.Context, c *domain.Customer) error {
	if err := c.ValidatePhone(); err != nil {
		return err
	}
	return s.customers.Update(ctx, c)
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}
