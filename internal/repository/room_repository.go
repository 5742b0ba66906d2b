package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lectio/timetable/internal/model"
	"github.com/lectio/timetable/internal/repository/base"
)

type RoomRepository struct {
	*base.Repository
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{Repository: base.NewRepository(pool)}
}

const roomColumns = `id, name, type, capacity, disable`

// Enabled returns all enabled rooms ordered by name.
func (r *RoomRepository) Enabled(ctx context.Context) ([]model.Room, error) {
	return r.list(ctx, `SELECT `+roomColumns+` FROM rooms WHERE disable = false ORDER BY name`)
}

// Disabled returns soft-deleted rooms, kept out of every default listing.
func (r *RoomRepository) Disabled(ctx context.Context) ([]model.Room, error) {
	return r.list(ctx, `SELECT `+roomColumns+` FROM rooms WHERE disable = true ORDER BY name`)
}

func (r *RoomRepository) list(ctx context.Context, query string) ([]model.Room, error) {
	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Type, &room.Capacity, &room.Disabled); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// GetByID returns one room, or (nil, nil) when it does not exist.
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	var room model.Room
	err := r.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id).
		Scan(&room.ID, &room.Name, &room.Type, &room.Capacity, &room.Disabled)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room by id: %w", err)
	}
	return &room, nil
}
