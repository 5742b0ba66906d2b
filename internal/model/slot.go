package model

import "time"

// Slot identifies one recurring timetable cell within a semester: a
// day-of-week, a period and a week parity. It is the coordinate every
// conflict and availability query is asked about.
type Slot struct {
	SemesterID int64
	Day        time.Weekday
	PeriodID   int64
	Parity     EvenOdd
}
