package model

import "time"

// Semester is the academic term schedules are scoped to. StartDay never
// exceeds EndDay; at most one semester carries the Current flag, owned and
// switched by the semester service, never read by the engine.
type Semester struct {
	ID          int64     `json:"id"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	StartDay    time.Time `json:"start_day"`
	EndDay      time.Time `json:"end_day"`
	Current     bool      `json:"current"`
	Disabled    bool      `json:"disabled"`

	// Configured teaching days and periods, loaded on demand.
	DaysOfWeek []time.Weekday `json:"days_of_week,omitempty"`
	Periods    []Period       `json:"periods,omitempty"`
}
