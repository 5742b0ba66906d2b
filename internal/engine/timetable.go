package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/lectio/timetable/internal/model"
)

// Assembler reconstructs full timetable grids for an anchor within a
// semester: the distinct occupied days, the start-time-ordered periods per
// day, and the lesson occupying each parity band of every cell.
type Assembler struct {
	schedules ScheduleReader
	resources ResourceReader
	logger    *zap.Logger
}

func NewAssembler(schedules ScheduleReader, resources ResourceReader, logger *zap.Logger) *Assembler {
	return &Assembler{schedules: schedules, resources: resources, logger: logger}
}

// AssembleForGroup builds the grid for one group. Unknown semester or group
// ids yield ErrNotFound; a known group with no bookings yields an empty grid.
func (a *Assembler) AssembleForGroup(ctx context.Context, semesterID, groupID int64) (*model.GroupTimetable, error) {
	if err := a.requireSemester(ctx, semesterID); err != nil {
		return nil, err
	}

	group, err := a.resources.GroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("fetch group %d: %w", groupID, err)
	}
	if group == nil {
		return nil, fmt.Errorf("group %d: %w", groupID, ErrNotFound)
	}

	days, err := a.assembleDays(ctx, semesterID, Anchor{Kind: model.ResourceGroup, ID: groupID})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("assembled group timetable",
		zap.Int64("semester_id", semesterID),
		zap.Int64("group_id", groupID),
		zap.Int("days", len(days)),
	)

	return &model.GroupTimetable{SemesterID: semesterID, Group: *group, Days: days}, nil
}

// AssembleForTeacher builds the grid for one teacher; cells carry the room
// and, through the lesson, the group being taught.
func (a *Assembler) AssembleForTeacher(ctx context.Context, semesterID, teacherID int64) (*model.TeacherTimetable, error) {
	if err := a.requireSemester(ctx, semesterID); err != nil {
		return nil, err
	}

	teacher, err := a.resources.TeacherByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("fetch teacher %d: %w", teacherID, err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("teacher %d: %w", teacherID, ErrNotFound)
	}

	days, err := a.assembleDays(ctx, semesterID, Anchor{Kind: model.ResourceTeacher, ID: teacherID})
	if err != nil {
		return nil, err
	}

	return &model.TeacherTimetable{SemesterID: semesterID, Teacher: *teacher, Days: days}, nil
}

// AssembleForRooms builds one grid per room booked in the semester.
func (a *Assembler) AssembleForRooms(ctx context.Context, semesterID int64) ([]model.RoomTimetable, error) {
	if err := a.requireSemester(ctx, semesterID); err != nil {
		return nil, err
	}

	rooms, err := a.schedules.RoomsWithBookings(ctx, semesterID)
	if err != nil {
		return nil, fmt.Errorf("fetch rooms with bookings: %w", err)
	}

	timetables := make([]model.RoomTimetable, 0, len(rooms))
	for _, room := range rooms {
		days, err := a.assembleDays(ctx, semesterID, Anchor{Kind: model.ResourceRoom, ID: room.ID})
		if err != nil {
			return nil, err
		}
		timetables = append(timetables, model.RoomTimetable{SemesterID: semesterID, Room: room, Days: days})
	}
	return timetables, nil
}

// AssembleForSemester builds one grid per group booked in the semester.
func (a *Assembler) AssembleForSemester(ctx context.Context, semesterID int64) (*model.SemesterTimetable, error) {
	if err := a.requireSemester(ctx, semesterID); err != nil {
		return nil, err
	}

	groups, err := a.schedules.GroupsWithBookings(ctx, semesterID)
	if err != nil {
		return nil, fmt.Errorf("fetch groups with bookings: %w", err)
	}

	timetable := &model.SemesterTimetable{SemesterID: semesterID, Groups: make([]model.GroupTimetable, 0, len(groups))}
	for _, group := range groups {
		days, err := a.assembleDays(ctx, semesterID, Anchor{Kind: model.ResourceGroup, ID: group.ID})
		if err != nil {
			return nil, err
		}
		timetable.Groups = append(timetable.Groups, model.GroupTimetable{SemesterID: semesterID, Group: group, Days: days})
	}
	return timetable, nil
}

func (a *Assembler) requireSemester(ctx context.Context, semesterID int64) error {
	exists, err := a.resources.SemesterExists(ctx, semesterID)
	if err != nil {
		return fmt.Errorf("check semester %d: %w", semesterID, err)
	}
	if !exists {
		return fmt.Errorf("semester %d: %w", semesterID, ErrNotFound)
	}
	return nil
}

// assembleDays walks the anchor's occupied days and periods and resolves the
// even and odd band of every cell.
func (a *Assembler) assembleDays(ctx context.Context, semesterID int64, anchor Anchor) ([]model.DaySchedule, error) {
	days, err := a.schedules.DaysFor(ctx, semesterID, anchor)
	if err != nil {
		return nil, fmt.Errorf("fetch days for %s %d: %w", anchor.Kind, anchor.ID, err)
	}
	sortDays(days)

	schedule := make([]model.DaySchedule, 0, len(days))
	for _, day := range days {
		periods, err := a.schedules.PeriodsFor(ctx, semesterID, anchor, day)
		if err != nil {
			return nil, fmt.Errorf("fetch periods for %s %d on %s: %w", anchor.Kind, anchor.ID, day, err)
		}
		// The repository already orders by start time; sort again so the
		// invariant does not depend on the store.
		sort.Slice(periods, func(i, j int) bool {
			return periods[i].StartMinute < periods[j].StartMinute
		})

		rows := make([]model.PeriodRow, 0, len(periods))
		for _, period := range periods {
			row, err := a.resolveCell(ctx, semesterID, anchor, day, period)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		schedule = append(schedule, model.DaySchedule{Day: day, Periods: rows})
	}
	return schedule, nil
}

// resolveCell fetches every booking of the anchor at (day, period) and
// resolves the even and odd bands independently. A WEEKLY booking overlaps
// both bands and therefore fills both.
func (a *Assembler) resolveCell(ctx context.Context, semesterID int64, anchor Anchor, day time.Weekday, period model.Period) (model.PeriodRow, error) {
	bookings, err := a.schedules.CellBookings(ctx, semesterID, anchor, day, period.ID)
	if err != nil {
		return model.PeriodRow{}, fmt.Errorf("fetch cell bookings for %s %d at %s period %d: %w",
			anchor.Kind, anchor.ID, day, period.ID, err)
	}

	row := model.PeriodRow{Period: period}
	for _, band := range []model.EvenOdd{model.EvenOddEven, model.EvenOddOdd} {
		cell, err := bandCell(bookings, band, anchor, day, period)
		if err != nil {
			return model.PeriodRow{}, err
		}
		if band == model.EvenOddEven {
			row.Even = cell
		} else {
			row.Odd = cell
		}
	}
	return row, nil
}

func bandCell(bookings []model.CellBooking, band model.EvenOdd, anchor Anchor, day time.Weekday, period model.Period) (*model.LessonCell, error) {
	matching := lo.Filter(bookings, func(b model.CellBooking, _ int) bool {
		return b.Parity.Overlaps(band)
	})
	switch len(matching) {
	case 0:
		return nil, nil
	case 1:
		return &model.LessonCell{Lesson: matching[0].Lesson, Room: matching[0].Room}, nil
	default:
		// The conflict checker guarantees at most one lesson per band at
		// write time; more than one means it was bypassed.
		return nil, fmt.Errorf("%d lessons occupy %s band of %s %d at %s period %d: %w",
			len(matching), band, anchor.Kind, anchor.ID, day, period.ID, ErrDataIntegrity)
	}
}

// sortDays orders weekdays the way a timetable reads, Monday first.
func sortDays(days []time.Weekday) {
	sort.Slice(days, func(i, j int) bool {
		return mondayFirst(days[i]) < mondayFirst(days[j])
	})
}

func mondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}
