package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lectio/timetable/internal/engine"
	"github.com/lectio/timetable/internal/model"
	"github.com/lectio/timetable/internal/repository"
)

// LessonService saves lessons, filling the denormalized display strings from
// the linked teacher and subject when the caller leaves them blank.
type LessonService struct {
	lessons  *repository.LessonRepository
	teachers *repository.TeacherRepository
	subjects *repository.SubjectRepository
	logger   *zap.Logger
}

func NewLessonService(
	lessons *repository.LessonRepository,
	teachers *repository.TeacherRepository,
	subjects *repository.SubjectRepository,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{lessons: lessons, teachers: teachers, subjects: subjects, logger: logger}
}

// Save stores a lesson. Blank TeacherForSite/SubjectForSite are autofilled.
func (s *LessonService) Save(ctx context.Context, lesson *model.Lesson) error {
	if lesson.Hours < 1 {
		return fmt.Errorf("lesson hours must be at least 1, got %d", lesson.Hours)
	}

	if lesson.TeacherForSite == "" {
		teacher, err := s.teachers.GetByID(ctx, lesson.TeacherID)
		if err != nil {
			return fmt.Errorf("get teacher: %w", err)
		}
		if teacher == nil {
			return fmt.Errorf("teacher %d: %w", lesson.TeacherID, engine.ErrNotFound)
		}
		lesson.TeacherForSite = teacher.DisplayName()
	}

	if lesson.SubjectForSite == "" {
		subject, err := s.subjects.GetByID(ctx, lesson.SubjectID)
		if err != nil {
			return fmt.Errorf("get subject: %w", err)
		}
		if subject == nil {
			return fmt.Errorf("subject %d: %w", lesson.SubjectID, engine.ErrNotFound)
		}
		lesson.SubjectForSite = subject.Name
	}

	if err := s.lessons.Create(ctx, lesson); err != nil {
		return err
	}

	s.logger.Info("Lesson saved",
		zap.Int64("lesson_id", lesson.ID),
		zap.Int64("teacher_id", lesson.TeacherID),
		zap.Int64("subject_id", lesson.SubjectID),
		zap.Int64("group_id", lesson.GroupID),
	)
	return nil
}

// GetByID returns a lesson or ErrNotFound.
func (s *LessonService) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson %d: %w", id, engine.ErrNotFound)
	}
	return lesson, nil
}

// ListByGroup returns all lessons assigned to a group.
func (s *LessonService) ListByGroup(ctx context.Context, groupID int64) ([]model.Lesson, error) {
	return s.lessons.ListByGroup(ctx, groupID)
}
