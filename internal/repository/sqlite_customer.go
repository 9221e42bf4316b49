package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mariakotova/atelier/internal/db"
	"github.com/mariakotova/atelier/internal/domain"
)

const customerColumns = `id, user_id, first_name, last_name, phone, comment, created_at`

// SQLiteCustomerRepo implements CustomerRepo over a db.DBTX.
type SQLiteCustomerRepo struct {
	db db.DBTX
}

// NewSQLiteCustomerRepo creates a new SQLiteCustomerRepo.
func NewSQLiteCustomerRepo(conn db.DBTX) *SQLiteCustomerRepo {
	return &SQLiteCustomerRepo{db: conn}
}

func (r *SQLiteCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		c.FirstName,
		c.LastName,
		c.Phone,
		c.Comment,
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}
	return nil
}

func (r *SQLiteCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	c, err := scanCustomer(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("customer: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning customer: %w", err)
	}
	return c, nil
}

func (r *SQLiteCustomerRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}
	return customers, nil
}

func (r *SQLiteCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET first_name = ?, last_name = ?, phone = ?, comment = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, c.FirstName, c.LastName, c.Phone, c.Comment, c.ID)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}
	return nil
}

func (r *SQLiteCustomerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}
	return nil
}

func scanCustomer(scan func(...any) error) (*domain.Customer, error) {
	var c domain.Customer
	var createdAtStr string
	if err := scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Phone, &c.Comment, &createdAtStr); err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	c.CreatedAt = createdAt
	return &c, nil
}
