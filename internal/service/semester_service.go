package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lectio/timetable/internal/engine"
	"github.com/lectio/timetable/internal/model"
	"github.com/lectio/timetable/internal/repository"
)

// ErrSemesterExists means a semester with the same description and year is
// already present.
var ErrSemesterExists = errors.New("semester already exists")

// SemesterService owns semester state, including the single current-semester
// reference. The engine never reads that reference; it always receives an
// explicit semester id.
type SemesterService struct {
	semesters *repository.SemesterRepository
	logger    *zap.Logger
}

func NewSemesterService(semesters *repository.SemesterRepository, logger *zap.Logger) *SemesterService {
	return &SemesterService{semesters: semesters, logger: logger}
}

// CreateSemester is the input for registering a new term.
type CreateSemester struct {
	Description string
	Year        int
	StartDay    time.Time
	EndDay      time.Time
	Days        []time.Weekday
	PeriodIDs   []int64
}

// Create registers a semester after the duplicate check. The new semester is
// never current; switching the flag is a separate explicit step.
func (s *SemesterService) Create(ctx context.Context, input CreateSemester) (*model.Semester, error) {
	if input.EndDay.Before(input.StartDay) {
		return nil, fmt.Errorf("semester end day %s precedes start day %s",
			input.EndDay.Format("2006-01-02"), input.StartDay.Format("2006-01-02"))
	}
	if err := s.EnsureUnique(ctx, input.Description, input.Year); err != nil {
		return nil, err
	}

	semester := &model.Semester{
		Year:        input.Year,
		Description: input.Description,
		StartDay:    input.StartDay,
		EndDay:      input.EndDay,
		DaysOfWeek:  input.Days,
	}
	if err := s.semesters.Create(ctx, semester, input.PeriodIDs); err != nil {
		return nil, err
	}

	s.logger.Info("Semester created",
		zap.Int64("semester_id", semester.ID),
		zap.String("description", semester.Description),
		zap.Int("year", semester.Year),
	)
	return semester, nil
}

// GetByID returns a semester or ErrNotFound.
func (s *SemesterService) GetByID(ctx context.Context, id int64) (*model.Semester, error) {
	semester, err := s.semesters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if semester == nil {
		return nil, fmt.Errorf("semester %d: %w", id, engine.ErrNotFound)
	}
	return semester, nil
}

// GetCurrent returns the semester flagged current. No flagged semester is an
// ErrNotFound, not an empty value.
func (s *SemesterService) GetCurrent(ctx context.Context) (*model.Semester, error) {
	semester, err := s.semesters.Current(ctx)
	if err != nil {
		return nil, err
	}
	if semester == nil {
		return nil, fmt.Errorf("current semester: %w", engine.ErrNotFound)
	}
	return semester, nil
}

// SetCurrent moves the current-semester flag to the given semester in one
// atomic switch.
func (s *SemesterService) SetCurrent(ctx context.Context, id int64) error {
	exists, err := s.semesters.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check semester: %w", err)
	}
	if !exists {
		return fmt.Errorf("semester %d: %w", id, engine.ErrNotFound)
	}

	if err := s.semesters.SetCurrent(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Current semester switched", zap.Int64("semester_id", id))
	return nil
}

// EnsureUnique rejects a (description, year) pair already in use.
func (s *SemesterService) EnsureUnique(ctx context.Context, description string, year int) error {
	count, err := s.semesters.CountDuplicates(ctx, description, year)
	if err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("%q %d: %w", description, year, ErrSemesterExists)
	}
	return nil
}

// Disabled lists soft-deleted semesters.
func (s *SemesterService) Disabled(ctx context.Context) ([]model.Semester, error) {
	return s.semesters.Disabled(ctx)
}
