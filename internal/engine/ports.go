package engine

import (
	"context"
	"time"

	"github.com/lectio/timetable/internal/model"
)

// Anchor selects the resource a timetable is assembled around.
type Anchor struct {
	Kind model.ResourceKind
	ID   int64
}

// ScheduleReader is the read side the engine consumes. Implementations must
// hand back a consistent snapshot of the booking set; the engine itself never
// mutates anything and holds no state between calls.
type ScheduleReader interface {
	// FactsFor returns every booking at (semester, day, period) regardless
	// of parity or resource. This is the coarse filter conflict checks and
	// availability partitions start from.
	FactsFor(ctx context.Context, semesterID int64, day time.Weekday, periodID int64) ([]model.ScheduleFact, error)

	// DaysFor returns the distinct days the anchor has any booking on.
	DaysFor(ctx context.Context, semesterID int64, anchor Anchor) ([]time.Weekday, error)

	// PeriodsFor returns the distinct periods the anchor occupies on the
	// given day, ordered by period start time.
	PeriodsFor(ctx context.Context, semesterID int64, anchor Anchor, day time.Weekday) ([]model.Period, error)

	// CellBookings returns every booking of the anchor at (day, period),
	// all parities, with lesson and room display data joined in.
	CellBookings(ctx context.Context, semesterID int64, anchor Anchor, day time.Weekday, periodID int64) ([]model.CellBooking, error)

	// GroupsWithBookings returns the distinct groups booked in the semester.
	GroupsWithBookings(ctx context.Context, semesterID int64) ([]model.Group, error)

	// RoomsWithBookings returns the distinct rooms booked in the semester.
	RoomsWithBookings(ctx context.Context, semesterID int64) ([]model.Room, error)
}

// ResourceReader supplies enabled-resource universes and anchor lookups.
// Universe listings are pre-filtered to enabled entities and ordered by the
// resource's display name.
type ResourceReader interface {
	Enabled(ctx context.Context, kind model.ResourceKind) ([]model.Resource, error)

	SemesterExists(ctx context.Context, semesterID int64) (bool, error)

	// GroupByID and TeacherByID return (nil, nil) when no such entity
	// exists; absence is not an error at this layer.
	GroupByID(ctx context.Context, id int64) (*model.Group, error)
	TeacherByID(ctx context.Context, id int64) (*model.Teacher, error)
}
