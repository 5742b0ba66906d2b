package repository

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/lectio/timetable/internal/model"
)

// ResourceDirectory adapts the per-entity repositories to the engine's
// uniform ResourceReader port: one enabled universe per resource kind,
// ordered by display name, plus anchor lookups.
type ResourceDirectory struct {
	rooms     *RoomRepository
	teachers  *TeacherRepository
	groups    *GroupRepository
	semesters *SemesterRepository
}

func NewResourceDirectory(
	rooms *RoomRepository,
	teachers *TeacherRepository,
	groups *GroupRepository,
	semesters *SemesterRepository,
) *ResourceDirectory {
	return &ResourceDirectory{
		rooms:     rooms,
		teachers:  teachers,
		groups:    groups,
		semesters: semesters,
	}
}

// Enabled returns the enabled universe of the kind as generic resources.
func (d *ResourceDirectory) Enabled(ctx context.Context, kind model.ResourceKind) ([]model.Resource, error) {
	switch kind {
	case model.ResourceRoom:
		rooms, err := d.rooms.Enabled(ctx)
		if err != nil {
			return nil, err
		}
		return lo.Map(rooms, func(r model.Room, _ int) model.Resource {
			return model.Resource{ID: r.ID, Name: r.Name}
		}), nil

	case model.ResourceTeacher:
		teachers, err := d.teachers.Enabled(ctx)
		if err != nil {
			return nil, err
		}
		return lo.Map(teachers, func(t model.Teacher, _ int) model.Resource {
			return model.Resource{ID: t.ID, Name: t.DisplayName()}
		}), nil

	case model.ResourceGroup:
		groups, err := d.groups.Enabled(ctx)
		if err != nil {
			return nil, err
		}
		return lo.Map(groups, func(g model.Group, _ int) model.Resource {
			return model.Resource{ID: g.ID, Name: g.Title}
		}), nil
	}
	return nil, fmt.Errorf("unknown resource kind %q", kind)
}

func (d *ResourceDirectory) SemesterExists(ctx context.Context, semesterID int64) (bool, error) {
	return d.semesters.Exists(ctx, semesterID)
}

func (d *ResourceDirectory) GroupByID(ctx context.Context, id int64) (*model.Group, error) {
	return d.groups.GetByID(ctx, id)
}

func (d *ResourceDirectory) TeacherByID(ctx context.Context, id int64) (*model.Teacher, error) {
	return d.teachers.GetByID(ctx, id)
}
