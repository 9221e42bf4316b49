package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mariakotova/atelier/internal/db"
	"github.com/mariakotova/atelier/internal/domain"
)

// orderColumns is the canonical SELECT column list for orders.
const orderColumns = `id, user_id, title, customer_id, category, status, price_cents, comment, color,
		total_minutes, planned_date, order_in_day, planned_minutes,
		is_main_part, part_number, parent_order_id, total_parts, created_at, updated_at`

// SQLiteOrderRepo implements OrderRepo over a db.DBTX, so the same type
// serves both plain and transaction-scoped access.
type SQLiteOrderRepo struct {
	db db.DBTX
}

// NewSQLiteOrderRepo creates a new SQLiteOrderRepo.
func NewSQLiteOrderRepo(conn db.DBTX) *SQLiteOrderRepo {
	return &SQLiteOrderRepo{db: conn}
}

func (r *SQLiteOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.UserID,
		o.Title,
		nullableStrToValue(o.CustomerID),
		o.Category,
		string(o.Status),
		o.PriceCents,
		o.Comment,
		o.Color,
		o.TotalMinutes,
		nullableTimeToString(o.PlannedDate, dateLayout),
		nullableIntToValue(o.OrderInDay),
		o.PlannedMinutes,
		boolToInt(o.IsMainPart),
		o.PartNumber,
		nullableStrToValue(o.ParentOrderID),
		o.TotalParts,
		o.CreatedAt.Format(time.RFC3339),
		o.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

func (r *SQLiteOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanOrder(row)
}

func (r *SQLiteOrderRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()
	return r.scanOrders(rows)
}

func (r *SQLiteOrderRepo) ListOnDate(ctx context.Context, userID string, date time.Time) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE user_id = ? AND planned_date = ?
		ORDER BY order_in_day IS NULL, order_in_day, created_at`
	rows, err := r.db.QueryContext(ctx, query, userID, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing orders on date: %w", err)
	}
	defer rows.Close()
	return r.scanOrders(rows)
}

func (r *SQLiteOrderRepo) ListUnscheduled(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE user_id = ? AND planned_date IS NULL
		  AND (is_main_part = 1 OR parent_order_id IS NULL)
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing unscheduled orders: %w", err)
	}
	defer rows.Close()
	return r.scanOrders(rows)
}

func (r *SQLiteOrderRepo) ListSecondaryParts(ctx context.Context, parentID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE parent_order_id = ? AND is_main_part = 0
		ORDER BY part_number`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing secondary parts: %w", err)
	}
	defer rows.Close()
	return r.scanOrders(rows)
}

func (r *SQLiteOrderRepo) DeleteSecondaryParts(ctx context.Context, parentID string) error {
	query := `DELETE FROM orders WHERE parent_order_id = ? AND is_main_part = 0`
	if _, err := r.db.ExecContext(ctx, query, parentID); err != nil {
		return fmt.Errorf("deleting secondary parts: %w", err)
	}
	return nil
}

func (r *SQLiteOrderRepo) SumPlannedMinutesOnDate(ctx context.Context, userID string, date time.Time, excludeOrderID string) (int, error) {
	query := `SELECT COALESCE(SUM(planned_minutes), 0) FROM orders
		WHERE user_id = ? AND planned_date = ?
		  AND id != ?
		  AND (parent_order_id IS NULL OR parent_order_id != ?)`
	var total int
	err := r.db.QueryRowContext(ctx, query, userID, date.Format(dateLayout), excludeOrderID, excludeOrderID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing planned minutes: %w", err)
	}
	return total, nil
}

func (r *SQLiteOrderRepo) Update(ctx context.Context, o *domain.Order) error {
	query := `UPDATE orders SET title = ?, customer_id = ?, category = ?, status = ?, price_cents = ?,
		comment = ?, color = ?, total_minutes = ?, planned_date = ?, order_in_day = ?, planned_minutes = ?,
		is_main_part = ?, part_number = ?, parent_order_id = ?, total_parts = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		o.Title,
		nullableStrToValue(o.CustomerID),
		o.Category,
		string(o.Status),
		o.PriceCents,
		o.Comment,
		o.Color,
		o.TotalMinutes,
		nullableTimeToString(o.PlannedDate, dateLayout),
		nullableIntToValue(o.OrderInDay),
		o.PlannedMinutes,
		boolToInt(o.IsMainPart),
		o.PartNumber,
		nullableStrToValue(o.ParentOrderID),
		o.TotalParts,
		o.UpdatedAt.Format(time.RFC3339),
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}
	return nil
}

func (r *SQLiteOrderRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM orders WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}
	return nil
}

// scanOrder scans a single order from a *sql.Row.
func (r *SQLiteOrderRepo) scanOrder(row *sql.Row) (*domain.Order, error) {
	var o domain.Order
	var statusStr string
	var customerID, plannedDateStr, parentID sql.NullString
	var orderInDay sql.NullInt64
	var isMainPartInt int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&o.ID, &o.UserID, &o.Title, &customerID, &o.Category, &statusStr, &o.PriceCents, &o.Comment, &o.Color,
		&o.TotalMinutes, &plannedDateStr, &orderInDay, &o.PlannedMinutes,
		&isMainPartInt, &o.PartNumber, &parentID, &o.TotalParts, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning order: %w", err)
	}

	return r.populateOrder(&o, statusStr, customerID, plannedDateStr, parentID, orderInDay, isMainPartInt, createdAtStr, updatedAtStr)
}

// scanOrders scans multiple orders from *sql.Rows.
func (r *SQLiteOrderRepo) scanOrders(rows *sql.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		var o domain.Order
		var statusStr string
		var customerID, plannedDateStr, parentID sql.NullString
		var orderInDay sql.NullInt64
		var isMainPartInt int
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&o.ID, &o.UserID, &o.Title, &customerID, &o.Category, &statusStr, &o.PriceCents, &o.Comment, &o.Color,
			&o.TotalMinutes, &plannedDateStr, &orderInDay, &o.PlannedMinutes,
			&isMainPartInt, &o.PartNumber, &parentID, &o.TotalParts, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}

		order, err := r.populateOrder(&o, statusStr, customerID, plannedDateStr, parentID, orderInDay, isMainPartInt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}
	return orders, nil
}

// populateOrder fills in parsed fields on an Order after scanning raw values.
func (r *SQLiteOrderRepo) populateOrder(
	o *domain.Order,
	statusStr string,
	customerID, plannedDateStr, parentID sql.NullString,
	orderInDay sql.NullInt64,
	isMainPartInt int,
	createdAtStr, updatedAtStr string,
) (*domain.Order, error) {
	o.Status = domain.OrderStatus(statusStr)
	o.IsMainPart = intToBool(isMainPartInt)
	o.PlannedDate = parseNullableTime(plannedDateStr, dateLayout)

	if customerID.Valid {
		v := customerID.String
		o.CustomerID = &v
	}
	if parentID.Valid {
		v := parentID.String
		o.ParentOrderID = &v
	}
	if orderInDay.Valid {
		v := int(orderInDay.Int64)
		o.OrderInDay = &v
	}

	var parseErr error
	o.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	o.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return o, nil
}
