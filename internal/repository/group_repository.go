package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lectio/timetable/internal/model"
	"github.com/lectio/timetable/internal/repository/base"
)

type GroupRepository struct {
	*base.Repository
}

func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{Repository: base.NewRepository(pool)}
}

// Enabled returns all enabled groups ordered by title.
func (r *GroupRepository) Enabled(ctx context.Context) ([]model.Group, error) {
	return r.list(ctx, `SELECT id, title, disable FROM groups WHERE disable = false ORDER BY title`)
}

// Disabled returns soft-deleted groups.
func (r *GroupRepository) Disabled(ctx context.Context) ([]model.Group, error) {
	return r.list(ctx, `SELECT id, title, disable FROM groups WHERE disable = true ORDER BY title`)
}

func (r *GroupRepository) list(ctx context.Context, query string) ([]model.Group, error) {
	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var groups []model.Group
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Disabled); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// GetByID returns one group, or (nil, nil) when it does not exist.
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	var g model.Group
	err := r.QueryRow(ctx, `SELECT id, title, disable FROM groups WHERE id = $1`, id).
		Scan(&g.ID, &g.Title, &g.Disabled)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group by id: %w", err)
	}
	return &g, nil
}
