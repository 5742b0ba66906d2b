package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lectio/timetable/internal/model"
	"github.com/lectio/timetable/internal/repository/base"
)

type PeriodRepository struct {
	*base.Repository
}

func NewPeriodRepository(pool *pgxpool.Pool) *PeriodRepository {
	return &PeriodRepository{Repository: base.NewRepository(pool)}
}

// Enabled returns all enabled periods in start-time order.
func (r *PeriodRepository) Enabled(ctx context.Context) ([]model.Period, error) {
	query := `
		SELECT id, name, start_minute, end_minute, disable
		FROM periods
		WHERE disable = false
		ORDER BY start_minute
	`
	return r.list(ctx, query)
}

// ForSemester returns the periods configured for a semester, start-time order.
func (r *PeriodRepository) ForSemester(ctx context.Context, semesterID int64) ([]model.Period, error) {
	query := `
		SELECT p.id, p.name, p.start_minute, p.end_minute, p.disable
		FROM periods p
		JOIN semester_periods sp ON sp.period_id = p.id
		WHERE sp.semester_id = $1
		ORDER BY p.start_minute
	`
	return r.list(ctx, query, semesterID)
}

func (r *PeriodRepository) list(ctx context.Context, query string, args ...any) ([]model.Period, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query periods: %w", err)
	}
	defer rows.Close()

	var periods []model.Period
	for rows.Next() {
		var p model.Period
		if err := rows.Scan(&p.ID, &p.Name, &p.StartMinute, &p.EndMinute, &p.Disabled); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// GetByID returns one period, or (nil, nil) when it does not exist.
func (r *PeriodRepository) GetByID(ctx context.Context, id int64) (*model.Period, error) {
	var p model.Period
	err := r.QueryRow(ctx, `SELECT id, name, start_minute, end_minute, disable FROM periods WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.StartMinute, &p.EndMinute, &p.Disabled)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get period by id: %w", err)
	}
	return &p, nil
}
