package model

import "fmt"

// Period is one teaching slot within a day ("class" in university parlance).
// Start and end are minutes since midnight, start strictly before end.
// Timetables are always ordered by StartMinute ascending.
type Period struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
	Disabled    bool   `json:"disabled"`
}

// StartClock formats the start as HH:MM.
func (p Period) StartClock() string {
	return clock(p.StartMinute)
}

// EndClock formats the end as HH:MM.
func (p Period) EndClock() string {
	return clock(p.EndMinute)
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
