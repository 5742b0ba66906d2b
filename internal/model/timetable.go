package model

import "time"

// LessonCell is what occupies one parity band of a day/period cell. Room is
// the room the lesson takes place in; for room-anchored grids the room is the
// anchor itself and the field repeats it.
type LessonCell struct {
	Lesson Lesson `json:"lesson"`
	Room   Room   `json:"room"`
}

// PeriodRow is one period of a day with its even- and odd-week bands resolved
// independently. A WEEKLY booking fills both bands; either band may be empty.
type PeriodRow struct {
	Period Period      `json:"period"`
	Even   *LessonCell `json:"even,omitempty"`
	Odd    *LessonCell `json:"odd,omitempty"`
}

// Weekly reports whether the row is occupied by the same lesson on both
// bands, i.e. effectively a weekly booking.
func (r PeriodRow) Weekly() bool {
	return r.Even != nil && r.Odd != nil && r.Even.Lesson.ID == r.Odd.Lesson.ID
}

// DaySchedule is the ordered list of occupied periods on one day.
type DaySchedule struct {
	Day     time.Weekday `json:"day"`
	Periods []PeriodRow  `json:"periods"`
}

// GroupTimetable is the full grid for one group in a semester. Days holds
// only days the group actually has bookings on; an empty slice is a valid
// timetable for a group with no lessons yet.
type GroupTimetable struct {
	SemesterID int64         `json:"semester_id"`
	Group      Group         `json:"group"`
	Days       []DaySchedule `json:"days"`
}

// TeacherTimetable is the full grid for one teacher in a semester.
type TeacherTimetable struct {
	SemesterID int64         `json:"semester_id"`
	Teacher    Teacher       `json:"teacher"`
	Days       []DaySchedule `json:"days"`
}

// RoomTimetable is the full grid for one room in a semester.
type RoomTimetable struct {
	SemesterID int64         `json:"semester_id"`
	Room       Room          `json:"room"`
	Days       []DaySchedule `json:"days"`
}

// SemesterTimetable is the per-group view of everything booked in a semester.
type SemesterTimetable struct {
	SemesterID int64            `json:"semester_id"`
	Groups     []GroupTimetable `json:"groups"`
}
