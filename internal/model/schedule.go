package model

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is one persisted booking: this room is occupied by this lesson on
// this day/period/parity within this semester. Uniqueness per resource and
// slot is a business rule enforced by the conflict checker before insert,
// not by the row itself.
type Schedule struct {
	ID         int64        `json:"id"`
	PublicID   uuid.UUID    `json:"public_id"`
	SemesterID int64        `json:"semester_id"`
	Day        time.Weekday `json:"day_of_week"`
	Parity     EvenOdd      `json:"even_odd"`
	RoomID     int64        `json:"room_id"`
	PeriodID   int64        `json:"period_id"`
	LessonID   int64        `json:"lesson_id"`
	CreatedAt  time.Time    `json:"created_at"`
}

// ScheduleFact is the flattened view of one existing booking at a
// (semester, day, period) coordinate, with the group and teacher resolved
// through the lesson. It is all the conflict checker needs.
type ScheduleFact struct {
	Parity    EvenOdd
	GroupID   int64
	TeacherID int64
	RoomID    int64
	LessonID  int64
}

// ResourceID returns the fact's id along the given resource dimension.
func (f ScheduleFact) ResourceID(kind ResourceKind) int64 {
	switch kind {
	case ResourceGroup:
		return f.GroupID
	case ResourceTeacher:
		return f.TeacherID
	case ResourceRoom:
		return f.RoomID
	}
	return 0
}

// CellBooking is one booking resolved for a timetable cell: the stored
// parity plus the occupying lesson and room with display data joined in.
type CellBooking struct {
	Parity EvenOdd
	Lesson Lesson
	Room   Room
}
