package engine

import (
	"context"
	"time"

	"github.com/lectio/timetable/internal/model"
)

// In-memory implementations of the engine ports. The store returns days and
// periods in insertion order so tests prove the assembler owns the ordering
// invariants itself.

type storedBooking struct {
	semesterID int64
	day        time.Weekday
	periodID   int64
	parity     model.EvenOdd
	room       model.Room
	lesson     model.Lesson
}

type fakeStore struct {
	bookings []storedBooking
	periods  map[int64]model.Period
	groups   map[int64]model.Group
}

func (s *fakeStore) book(semesterID int64, day time.Weekday, periodID int64, parity model.EvenOdd, room model.Room, lesson model.Lesson) {
	s.bookings = append(s.bookings, storedBooking{
		semesterID: semesterID,
		day:        day,
		periodID:   periodID,
		parity:     parity,
		room:       room,
		lesson:     lesson,
	})
}

func (s *fakeStore) FactsFor(_ context.Context, semesterID int64, day time.Weekday, periodID int64) ([]model.ScheduleFact, error) {
	var facts []model.ScheduleFact
	for _, b := range s.bookings {
		if b.semesterID == semesterID && b.day == day && b.periodID == periodID {
			facts = append(facts, model.ScheduleFact{
				Parity:    b.parity,
				GroupID:   b.lesson.GroupID,
				TeacherID: b.lesson.TeacherID,
				RoomID:    b.room.ID,
				LessonID:  b.lesson.ID,
			})
		}
	}
	return facts, nil
}

func anchorMatches(b storedBooking, anchor Anchor) bool {
	switch anchor.Kind {
	case model.ResourceGroup:
		return b.lesson.GroupID == anchor.ID
	case model.ResourceTeacher:
		return b.lesson.TeacherID == anchor.ID
	case model.ResourceRoom:
		return b.room.ID == anchor.ID
	}
	return false
}

func (s *fakeStore) DaysFor(_ context.Context, semesterID int64, anchor Anchor) ([]time.Weekday, error) {
	seen := map[time.Weekday]bool{}
	var days []time.Weekday
	for _, b := range s.bookings {
		if b.semesterID == semesterID && anchorMatches(b, anchor) && !seen[b.day] {
			seen[b.day] = true
			days = append(days, b.day)
		}
	}
	return days, nil
}

func (s *fakeStore) PeriodsFor(_ context.Context, semesterID int64, anchor Anchor, day time.Weekday) ([]model.Period, error) {
	seen := map[int64]bool{}
	var periods []model.Period
	for _, b := range s.bookings {
		if b.semesterID == semesterID && b.day == day && anchorMatches(b, anchor) && !seen[b.periodID] {
			seen[b.periodID] = true
			periods = append(periods, s.periods[b.periodID])
		}
	}
	return periods, nil
}

func (s *fakeStore) CellBookings(_ context.Context, semesterID int64, anchor Anchor, day time.Weekday, periodID int64) ([]model.CellBooking, error) {
	var cells []model.CellBooking
	for _, b := range s.bookings {
		if b.semesterID == semesterID && b.day == day && b.periodID == periodID && anchorMatches(b, anchor) {
			cells = append(cells, model.CellBooking{Parity: b.parity, Lesson: b.lesson, Room: b.room})
		}
	}
	return cells, nil
}

func (s *fakeStore) GroupsWithBookings(_ context.Context, semesterID int64) ([]model.Group, error) {
	seen := map[int64]bool{}
	var groups []model.Group
	for _, b := range s.bookings {
		if b.semesterID == semesterID && !seen[b.lesson.GroupID] {
			seen[b.lesson.GroupID] = true
			groups = append(groups, s.groups[b.lesson.GroupID])
		}
	}
	return groups, nil
}

func (s *fakeStore) RoomsWithBookings(_ context.Context, semesterID int64) ([]model.Room, error) {
	seen := map[int64]bool{}
	var rooms []model.Room
	for _, b := range s.bookings {
		if b.semesterID == semesterID && !seen[b.room.ID] {
			seen[b.room.ID] = true
			rooms = append(rooms, b.room)
		}
	}
	return rooms, nil
}

type fakeDirectory struct {
	enabled   map[model.ResourceKind][]model.Resource
	semesters map[int64]bool
	groups    map[int64]model.Group
	teachers  map[int64]model.Teacher
}

func (d *fakeDirectory) Enabled(_ context.Context, kind model.ResourceKind) ([]model.Resource, error) {
	return d.enabled[kind], nil
}

func (d *fakeDirectory) SemesterExists(_ context.Context, semesterID int64) (bool, error) {
	return d.semesters[semesterID], nil
}

func (d *fakeDirectory) GroupByID(_ context.Context, id int64) (*model.Group, error) {
	if g, ok := d.groups[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (d *fakeDirectory) TeacherByID(_ context.Context, id int64) (*model.Teacher, error) {
	if t, ok := d.teachers[id]; ok {
		return &t, nil
	}
	return nil, nil
}

// fixture is a small semester: two periods on the clock, three rooms, two
// teachers and two groups.
type fixture struct {
	store *fakeStore
	dir   *fakeDirectory

	p1, p2           model.Period
	r1, r2, r3       model.Room
	g1, g2           model.Group
	t1, t2           model.Teacher
	lesson1, lesson2 model.Lesson
}

const semesterID = int64(1)

func newFixture() *fixture {
	f := &fixture{
		p1: model.Period{ID: 1, Name: "1st", StartMinute: 8 * 60, EndMinute: 9*60 + 30},
		p2: model.Period{ID: 2, Name: "2nd", StartMinute: 9*60 + 40, EndMinute: 11*60 + 10},
		r1: model.Room{ID: 1, Name: "1 Gym"},
		r2: model.Room{ID: 2, Name: "204"},
		r3: model.Room{ID: 3, Name: "305 Lab"},
		g1: model.Group{ID: 1, Title: "CS-101"},
		g2: model.Group{ID: 2, Title: "CS-102"},
		t1: model.Teacher{ID: 1, Name: "Ivan", Surname: "Petrenko"},
		t2: model.Teacher{ID: 2, Name: "Olena", Surname: "Kovalenko"},
	}
	f.lesson1 = model.Lesson{ID: 1, Hours: 2, Type: model.LessonLecture, TeacherID: f.t1.ID, SubjectID: 1, GroupID: f.g1.ID}
	f.lesson2 = model.Lesson{ID: 2, Hours: 1, Type: model.LessonPractical, TeacherID: f.t2.ID, SubjectID: 2, GroupID: f.g1.ID}

	f.store = &fakeStore{
		periods: map[int64]model.Period{f.p1.ID: f.p1, f.p2.ID: f.p2},
		groups:  map[int64]model.Group{f.g1.ID: f.g1, f.g2.ID: f.g2},
	}
	f.dir = &fakeDirectory{
		enabled: map[model.ResourceKind][]model.Resource{
			model.ResourceRoom: {
				{ID: f.r1.ID, Name: f.r1.Name},
				{ID: f.r2.ID, Name: f.r2.Name},
				{ID: f.r3.ID, Name: f.r3.Name},
			},
			model.ResourceTeacher: {
				{ID: f.t2.ID, Name: f.t2.DisplayName()},
				{ID: f.t1.ID, Name: f.t1.DisplayName()},
			},
			model.ResourceGroup: {
				{ID: f.g1.ID, Name: f.g1.Title},
				{ID: f.g2.ID, Name: f.g2.Title},
			},
		},
		semesters: map[int64]bool{semesterID: true},
		groups:    map[int64]model.Group{f.g1.ID: f.g1, f.g2.ID: f.g2},
		teachers:  map[int64]model.Teacher{f.t1.ID: f.t1, f.t2.ID: f.t2},
	}
	return f
}

func (f *fixture) slot(day time.Weekday, periodID int64, parity model.EvenOdd) model.Slot {
	return model.Slot{SemesterID: semesterID, Day: day, PeriodID: periodID, Parity: parity}
}
