package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lectio/timetable/internal/model"
)

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

// GetByID returns one lesson with teacher, subject and group joined in, or
// (nil, nil) when it does not exist.
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `
		SELECT l.id, l.hours, l.teacher_for_site, l.subject_for_site, l.lesson_type,
		       l.teacher_id, l.subject_id, l.group_id,
		       t.name, t.surname, t.patronymic, t.position, t.disable,
		       sub.name, sub.disable,
		       g.title, g.disable
		FROM lessons l
		JOIN teachers t ON t.id = l.teacher_id
		JOIN subjects sub ON sub.id = l.subject_id
		JOIN groups g ON g.id = l.group_id
		WHERE l.id = $1
	`

	var (
		lesson  model.Lesson
		teacher model.Teacher
		subject model.Subject
		group   model.Group
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&lesson.ID, &lesson.Hours, &lesson.TeacherForSite, &lesson.SubjectForSite, &lesson.Type,
		&lesson.TeacherID, &lesson.SubjectID, &lesson.GroupID,
		&teacher.Name, &teacher.Surname, &teacher.Patronymic, &teacher.Position, &teacher.Disabled,
		&subject.Name, &subject.Disabled,
		&group.Title, &group.Disabled,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	teacher.ID = lesson.TeacherID
	subject.ID = lesson.SubjectID
	group.ID = lesson.GroupID
	lesson.Teacher = &teacher
	lesson.Subject = &subject
	lesson.Group = &group
	return &lesson, nil
}

// ListByGroup returns all lessons of a group.
func (r *LessonRepository) ListByGroup(ctx context.Context, groupID int64) ([]model.Lesson, error) {
	query := `
		SELECT id, hours, teacher_for_site, subject_for_site, lesson_type, teacher_id, subject_id, group_id
		FROM lessons
		WHERE group_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list lessons by group: %w", err)
	}
	defer rows.Close()

	var lessons []model.Lesson
	for rows.Next() {
		var l model.Lesson
		err := rows.Scan(&l.ID, &l.Hours, &l.TeacherForSite, &l.SubjectForSite, &l.Type,
			&l.TeacherID, &l.SubjectID, &l.GroupID)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// Create inserts a lesson row.
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (hours, teacher_for_site, subject_for_site, lesson_type, teacher_id, subject_id, group_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.pool.QueryRow(
		ctx, query,
		lesson.Hours,
		lesson.TeacherForSite,
		lesson.SubjectForSite,
		lesson.Type,
		lesson.TeacherID,
		lesson.SubjectID,
		lesson.GroupID,
	).Scan(&lesson.ID)

	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	return nil
}
