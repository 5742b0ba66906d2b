package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lectio/timetable/internal/model"
)

type SemesterRepository struct {
	pool *pgxpool.Pool
}

func NewSemesterRepository(pool *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{pool: pool}
}

const semesterColumns = `id, year, description, start_day, end_day, current_semester, disable`

// GetByID returns one semester with its configured days and periods, or
// (nil, nil) when it does not exist.
func (r *SemesterRepository) GetByID(ctx context.Context, id int64) (*model.Semester, error) {
	semester, err := scanSemester(r.pool.QueryRow(ctx, `SELECT `+semesterColumns+` FROM semesters WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get semester by id: %w", err)
	}

	if err := r.loadConfiguration(ctx, semester); err != nil {
		return nil, err
	}
	return semester, nil
}

// Exists reports whether a semester row exists.
func (r *SemesterRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM semesters WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check semester exists: %w", err)
	}
	return exists, nil
}

// Enabled returns all enabled semesters, newest year first.
func (r *SemesterRepository) Enabled(ctx context.Context) ([]model.Semester, error) {
	return r.list(ctx, `SELECT `+semesterColumns+` FROM semesters WHERE disable = false ORDER BY year DESC, description`)
}

// Disabled returns soft-deleted semesters.
func (r *SemesterRepository) Disabled(ctx context.Context) ([]model.Semester, error) {
	return r.list(ctx, `SELECT `+semesterColumns+` FROM semesters WHERE disable = true ORDER BY year DESC, description`)
}

func (r *SemesterRepository) list(ctx context.Context, query string) ([]model.Semester, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query semesters: %w", err)
	}
	defer rows.Close()

	var semesters []model.Semester
	for rows.Next() {
		semester, err := scanSemester(rows)
		if err != nil {
			return nil, fmt.Errorf("scan semester: %w", err)
		}
		semesters = append(semesters, *semester)
	}
	return semesters, rows.Err()
}

// Current returns the semester flagged current, or (nil, nil) when none is.
func (r *SemesterRepository) Current(ctx context.Context) (*model.Semester, error) {
	semester, err := scanSemester(r.pool.QueryRow(ctx,
		`SELECT `+semesterColumns+` FROM semesters WHERE current_semester = true LIMIT 1`))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get current semester: %w", err)
	}

	if err := r.loadConfiguration(ctx, semester); err != nil {
		return nil, err
	}
	return semester, nil
}

// SetCurrent flags one semester as current. Clearing the old flag and setting
// the new one happen in a single transaction so no moment exposes two current
// semesters.
func (r *SemesterRepository) SetCurrent(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE semesters SET current_semester = false WHERE current_semester = true`); err != nil {
		return fmt.Errorf("clear current semester: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE semesters SET current_semester = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set current semester: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("semester %d not found", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Create inserts a semester with its configured days and period links in one
// transaction. The new row is never flagged current.
func (r *SemesterRepository) Create(ctx context.Context, semester *model.Semester, periodIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO semesters (year, description, start_day, end_day, current_semester, disable)
		 VALUES ($1, $2, $3, $4, false, false)
		 RETURNING id`,
		semester.Year, semester.Description, semester.StartDay, semester.EndDay,
	).Scan(&semester.ID)
	if err != nil {
		return fmt.Errorf("insert semester: %w", err)
	}

	for _, day := range semester.DaysOfWeek {
		if _, err := tx.Exec(ctx,
			`INSERT INTO semester_days (semester_id, day_of_week) VALUES ($1, $2)`,
			semester.ID, int16(day)); err != nil {
			return fmt.Errorf("insert semester day: %w", err)
		}
	}
	for _, periodID := range periodIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO semester_periods (semester_id, period_id) VALUES ($1, $2)`,
			semester.ID, periodID); err != nil {
			return fmt.Errorf("insert semester period: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// CountDuplicates counts semesters sharing description and year.
func (r *SemesterRepository) CountDuplicates(ctx context.Context, description string, year int) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM semesters WHERE description = $1 AND year = $2`,
		description, year,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count semester duplicates: %w", err)
	}
	return count, nil
}

// loadConfiguration fills the semester's teaching days and period links.
func (r *SemesterRepository) loadConfiguration(ctx context.Context, semester *model.Semester) error {
	rows, err := r.pool.Query(ctx,
		`SELECT day_of_week FROM semester_days WHERE semester_id = $1 ORDER BY day_of_week`, semester.ID)
	if err != nil {
		return fmt.Errorf("query semester days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day int16
		if err := rows.Scan(&day); err != nil {
			return fmt.Errorf("scan semester day: %w", err)
		}
		semester.DaysOfWeek = append(semester.DaysOfWeek, time.Weekday(day))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	periodRows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.start_minute, p.end_minute, p.disable
		FROM periods p
		JOIN semester_periods sp ON sp.period_id = p.id
		WHERE sp.semester_id = $1
		ORDER BY p.start_minute
	`, semester.ID)
	if err != nil {
		return fmt.Errorf("query semester periods: %w", err)
	}
	defer periodRows.Close()

	for periodRows.Next() {
		var p model.Period
		if err := periodRows.Scan(&p.ID, &p.Name, &p.StartMinute, &p.EndMinute, &p.Disabled); err != nil {
			return fmt.Errorf("scan semester period: %w", err)
		}
		semester.Periods = append(semester.Periods, p)
	}
	return periodRows.Err()
}

func scanSemester(row pgx.Row) (*model.Semester, error) {
	var s model.Semester
	err := row.Scan(&s.ID, &s.Year, &s.Description, &s.StartDay, &s.EndDay, &s.Current, &s.Disabled)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
