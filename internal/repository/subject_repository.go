package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lectio/timetable/internal/model"
	"github.com/lectio/timetable/internal/repository/base"
)

type SubjectRepository struct {
	*base.Repository
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{Repository: base.NewRepository(pool)}
}

// Enabled returns all enabled subjects ordered by name.
func (r *SubjectRepository) Enabled(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.Query(ctx, `SELECT id, name, disable FROM subjects WHERE disable = false ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Disabled); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// GetByID returns one subject, or (nil, nil) when it does not exist.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*model.Subject, error) {
	var s model.Subject
	err := r.QueryRow(ctx, `SELECT id, name, disable FROM subjects WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Disabled)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject by id: %w", err)
	}
	return &s, nil
}
