package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lectio/timetable/internal/engine"
	"github.com/lectio/timetable/internal/model"
	"github.com/lectio/timetable/internal/repository"
)

// ErrScheduleConflict means at least one of the three resource dimensions
// (group, teacher, room) already has a colliding booking at the slot.
var ErrScheduleConflict = errors.New("schedule conflict")

// CreateSchedule is the input for booking a lesson into a slot.
type CreateSchedule struct {
	SemesterID int64
	Day        time.Weekday
	Parity     model.EvenOdd
	PeriodID   int64
	RoomID     int64
	LessonID   int64
}

// CreationInfo reports, for a proposed slot and lesson, whether the lesson's
// teacher and group are free plus the annotated room universe, so a caller
// can finish building the booking.
type CreationInfo struct {
	TeacherAvailable bool
	GroupAvailable   bool
	Rooms            []engine.AnnotatedResource
}

// ScheduleService owns the write side of the timetable: every booking passes
// the group, teacher and room conflict checks before it is persisted.
//
// The check-then-create sequence assumes concurrent writers are serialized
// per (semester, day, period) bucket by the deployment. The room dimension
// additionally has an exclusion constraint in the database, so a race there
// fails the insert instead of double-booking.
type ScheduleService struct {
	schedules *repository.ScheduleRepository
	lessons   *repository.LessonRepository
	semesters *repository.SemesterRepository
	periods   *repository.PeriodRepository
	checker   *engine.Checker
	calc      *engine.Calculator
	logger    *zap.Logger
}

func NewScheduleService(
	schedules *repository.ScheduleRepository,
	lessons *repository.LessonRepository,
	semesters *repository.SemesterRepository,
	periods *repository.PeriodRepository,
	checker *engine.Checker,
	calc *engine.Calculator,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		lessons:   lessons,
		semesters: semesters,
		periods:   periods,
		checker:   checker,
		calc:      calc,
		logger:    logger,
	}
}

// Create books a lesson into a slot after verifying all three dimensions are
// free. The three checks are independent necessary conditions; the returned
// error names every dimension that failed.
func (s *ScheduleService) Create(ctx context.Context, input CreateSchedule) (*model.Schedule, error) {
	if !input.Parity.Valid() {
		return nil, fmt.Errorf("parity %q: %w", input.Parity, engine.ErrInvalidRecurrence)
	}

	exists, err := s.semesters.Exists(ctx, input.SemesterID)
	if err != nil {
		return nil, fmt.Errorf("check semester: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("semester %d: %w", input.SemesterID, engine.ErrNotFound)
	}

	period, err := s.periods.GetByID(ctx, input.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("get period: %w", err)
	}
	if period == nil {
		return nil, fmt.Errorf("period %d: %w", input.PeriodID, engine.ErrNotFound)
	}

	lesson, err := s.lessons.GetByID(ctx, input.LessonID)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson %d: %w", input.LessonID, engine.ErrNotFound)
	}

	slot := model.Slot{
		SemesterID: input.SemesterID,
		Day:        input.Day,
		PeriodID:   input.PeriodID,
		Parity:     input.Parity,
	}

	var taken []string
	for _, check := range []struct {
		kind model.ResourceKind
		id   int64
	}{
		{model.ResourceGroup, lesson.GroupID},
		{model.ResourceTeacher, lesson.TeacherID},
		{model.ResourceRoom, input.RoomID},
	} {
		conflict, err := s.checker.HasConflict(ctx, slot, check.kind, check.id)
		if err != nil {
			return nil, fmt.Errorf("check %s conflict: %w", check.kind, err)
		}
		if conflict {
			taken = append(taken, string(check.kind))
		}
	}
	if len(taken) > 0 {
		return nil, fmt.Errorf("%s already booked at %s period %d (%s): %w",
			strings.Join(taken, ", "), input.Day, input.PeriodID, input.Parity, ErrScheduleConflict)
	}

	schedule := &model.Schedule{
		PublicID:   uuid.New(),
		SemesterID: input.SemesterID,
		Day:        input.Day,
		Parity:     input.Parity,
		RoomID:     input.RoomID,
		PeriodID:   input.PeriodID,
		LessonID:   input.LessonID,
	}

	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.logger.Info("Schedule created",
		zap.Int64("schedule_id", schedule.ID),
		zap.Int64("semester_id", input.SemesterID),
		zap.String("day", input.Day.String()),
		zap.Int64("period_id", input.PeriodID),
		zap.String("parity", string(input.Parity)),
		zap.Int64("room_id", input.RoomID),
		zap.Int64("lesson_id", input.LessonID),
	)

	return schedule, nil
}

// CreationInfo checks teacher and group availability for the lesson at the
// slot and annotates the full room universe.
func (s *ScheduleService) CreationInfo(ctx context.Context, semesterID int64, day time.Weekday, parity model.EvenOdd, periodID, lessonID int64) (*CreationInfo, error) {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson %d: %w", lessonID, engine.ErrNotFound)
	}

	slot := model.Slot{SemesterID: semesterID, Day: day, PeriodID: periodID, Parity: parity}

	teacherBusy, err := s.checker.HasConflict(ctx, slot, model.ResourceTeacher, lesson.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("check teacher conflict: %w", err)
	}
	groupBusy, err := s.checker.HasConflict(ctx, slot, model.ResourceGroup, lesson.GroupID)
	if err != nil {
		return nil, fmt.Errorf("check group conflict: %w", err)
	}
	rooms, err := s.calc.AnnotatedAvailability(ctx, slot, model.ResourceRoom)
	if err != nil {
		return nil, fmt.Errorf("annotate rooms: %w", err)
	}

	return &CreationInfo{
		TeacherAvailable: !teacherBusy,
		GroupAvailable:   !groupBusy,
		Rooms:            rooms,
	}, nil
}

// GetByID returns a booking or ErrNotFound.
func (s *ScheduleService) GetByID(ctx context.Context, id int64) (*model.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule %d: %w", id, engine.ErrNotFound)
	}
	return schedule, nil
}

// Delete removes a booking.
func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Schedule deleted", zap.Int64("schedule_id", id))
	return nil
}

// ListBySemester returns every booking row in the semester.
func (s *ScheduleService) ListBySemester(ctx context.Context, semesterID int64) ([]model.Schedule, error) {
	return s.schedules.ListBySemester(ctx, semesterID)
}
