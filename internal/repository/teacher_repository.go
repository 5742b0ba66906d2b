package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lectio/timetable/internal/model"
	"github.com/lectio/timetable/internal/repository/base"
)

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{Repository: base.NewRepository(pool)}
}

const teacherColumns = `id, name, surname, patronymic, position, disable`

// Enabled returns all enabled teachers ordered by surname then name.
func (r *TeacherRepository) Enabled(ctx context.Context) ([]model.Teacher, error) {
	return r.list(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE disable = false ORDER BY surname, name`)
}

// Disabled returns soft-deleted teachers.
func (r *TeacherRepository) Disabled(ctx context.Context) ([]model.Teacher, error) {
	return r.list(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE disable = true ORDER BY surname, name`)
}

func (r *TeacherRepository) list(ctx context.Context, query string) ([]model.Teacher, error) {
	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query teachers: %w", err)
	}
	defer rows.Close()

	var teachers []model.Teacher
	for rows.Next() {
		var t model.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Surname, &t.Patronymic, &t.Position, &t.Disabled); err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

// GetByID returns one teacher, or (nil, nil) when it does not exist.
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	var t model.Teacher
	err := r.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Surname, &t.Patronymic, &t.Position, &t.Disabled)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}
	return &t, nil
}
