package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mariakotova/atelier/internal/db"
	"github.com/mariakotova/atelier/internal/domain"
)

// SQLitePlannerConfigRepo implements PlannerConfigRepo over a db.DBTX.
// The stored comma-separated work-day list is parsed into a WorkDaySet
// here; the raw string never leaves the repository.
type SQLitePlannerConfigRepo struct {
	db db.DBTX
}

// NewSQLitePlannerConfigRepo creates a new SQLitePlannerConfigRepo.
func NewSQLitePlannerConfigRepo(conn db.DBTX) *SQLitePlannerConfigRepo {
	return &SQLitePlannerConfigRepo{db: conn}
}

func (r *SQLitePlannerConfigRepo) GetByUser(ctx context.Context, userID string) (*domain.PlannerConfig, error) {
	query := `SELECT user_id, hours_per_day, work_days, created_at, updated_at
		FROM planner_settings WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var cfg domain.PlannerConfig
	var workDaysStr, createdAtStr, updatedAtStr string
	err := row.Scan(&cfg.UserID, &cfg.HoursPerDay, &workDaysStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("planner settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning planner settings: %w", err)
	}

	cfg.WorkDays = domain.ParseWorkDays(workDaysStr)
	if cfg.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if cfg.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &cfg, nil
}

func (r *SQLitePlannerConfigRepo) Upsert(ctx context.Context, cfg *domain.PlannerConfig) error {
	query := `INSERT INTO planner_settings (user_id, hours_per_day, work_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE
		SET hours_per_day = excluded.hours_per_day,
		    work_days = excluded.work_days,
		    updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		cfg.UserID,
		cfg.HoursPerDay,
		cfg.WorkDays.String(),
		cfg.CreatedAt.Format(time.RFC3339),
		cfg.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting planner settings: %w", err)
	}
	return nil
}
