package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lectio/timetable/internal/engine"
	"github.com/lectio/timetable/internal/model"
)

// ScheduleRepository persists bookings and implements the engine's
// ScheduleReader port with raw SQL over the pool.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// anchorColumn maps a resource kind to the column carrying its id in the
// schedules/lessons join. Group and teacher ride through the lesson.
func anchorColumn(kind model.ResourceKind) (string, error) {
	switch kind {
	case model.ResourceGroup:
		return "l.group_id", nil
	case model.ResourceTeacher:
		return "l.teacher_id", nil
	case model.ResourceRoom:
		return "s.room_id", nil
	}
	return "", fmt.Errorf("unknown resource kind %q", kind)
}

// FactsFor returns every booking at (semester, day, period), all parities and
// resources, with group and teacher resolved through the lesson.
func (r *ScheduleRepository) FactsFor(ctx context.Context, semesterID int64, day time.Weekday, periodID int64) ([]model.ScheduleFact, error) {
	query := `
		SELECT s.even_odd, l.group_id, l.teacher_id, s.room_id, s.lesson_id
		FROM schedules s
		JOIN lessons l ON l.id = s.lesson_id
		WHERE s.semester_id = $1 AND s.day_of_week = $2 AND s.period_id = $3
	`

	rows, err := r.pool.Query(ctx, query, semesterID, int16(day), periodID)
	if err != nil {
		return nil, fmt.Errorf("query schedule facts: %w", err)
	}
	defer rows.Close()

	var facts []model.ScheduleFact
	for rows.Next() {
		var f model.ScheduleFact
		if err := rows.Scan(&f.Parity, &f.GroupID, &f.TeacherID, &f.RoomID, &f.LessonID); err != nil {
			return nil, fmt.Errorf("scan schedule fact: %w", err)
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

// DaysFor returns the distinct days the anchor has bookings on.
func (r *ScheduleRepository) DaysFor(ctx context.Context, semesterID int64, anchor engine.Anchor) ([]time.Weekday, error) {
	column, err := anchorColumn(anchor.Kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT s.day_of_week
		FROM schedules s
		JOIN lessons l ON l.id = s.lesson_id
		WHERE s.semester_id = $1 AND %s = $2
	`, column)

	rows, err := r.pool.Query(ctx, query, semesterID, anchor.ID)
	if err != nil {
		return nil, fmt.Errorf("query days for %s: %w", anchor.Kind, err)
	}
	defer rows.Close()

	var days []time.Weekday
	for rows.Next() {
		var day int16
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, time.Weekday(day))
	}
	return days, rows.Err()
}

// PeriodsFor returns the distinct periods the anchor occupies on the day,
// ordered by start time.
func (r *ScheduleRepository) PeriodsFor(ctx context.Context, semesterID int64, anchor engine.Anchor, day time.Weekday) ([]model.Period, error) {
	column, err := anchorColumn(anchor.Kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.start_minute, p.end_minute
		FROM periods p
		WHERE p.id IN (
			SELECT s.period_id
			FROM schedules s
			JOIN lessons l ON l.id = s.lesson_id
			WHERE s.semester_id = $1 AND s.day_of_week = $2 AND %s = $3
		)
		ORDER BY p.start_minute
	`, column)

	rows, err := r.pool.Query(ctx, query, semesterID, int16(day), anchor.ID)
	if err != nil {
		return nil, fmt.Errorf("query periods for %s: %w", anchor.Kind, err)
	}
	defer rows.Close()

	var periods []model.Period
	for rows.Next() {
		var p model.Period
		if err := rows.Scan(&p.ID, &p.Name, &p.StartMinute, &p.EndMinute); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// CellBookings returns every booking of the anchor at (day, period) with the
// lesson, its display joins and the room. Band filtering is the engine's job.
func (r *ScheduleRepository) CellBookings(ctx context.Context, semesterID int64, anchor engine.Anchor, day time.Weekday, periodID int64) ([]model.CellBooking, error) {
	column, err := anchorColumn(anchor.Kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT s.even_odd,
		       l.id, l.hours, l.teacher_for_site, l.subject_for_site, l.lesson_type,
		       l.teacher_id, l.subject_id, l.group_id,
		       t.name, t.surname, t.patronymic, t.position,
		       sub.name, g.title,
		       rm.id, rm.name, rm.type, rm.capacity
		FROM schedules s
		JOIN lessons l ON l.id = s.lesson_id
		JOIN teachers t ON t.id = l.teacher_id
		JOIN subjects sub ON sub.id = l.subject_id
		JOIN groups g ON g.id = l.group_id
		JOIN rooms rm ON rm.id = s.room_id
		WHERE s.semester_id = $1 AND s.day_of_week = $2 AND s.period_id = $3 AND %s = $4
	`, column)

	rows, err := r.pool.Query(ctx, query, semesterID, int16(day), periodID, anchor.ID)
	if err != nil {
		return nil, fmt.Errorf("query cell bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.CellBooking
	for rows.Next() {
		var (
			b       model.CellBooking
			teacher model.Teacher
			subject model.Subject
			group   model.Group
		)
		err := rows.Scan(
			&b.Parity,
			&b.Lesson.ID, &b.Lesson.Hours, &b.Lesson.TeacherForSite, &b.Lesson.SubjectForSite, &b.Lesson.Type,
			&b.Lesson.TeacherID, &b.Lesson.SubjectID, &b.Lesson.GroupID,
			&teacher.Name, &teacher.Surname, &teacher.Patronymic, &teacher.Position,
			&subject.Name, &group.Title,
			&b.Room.ID, &b.Room.Name, &b.Room.Type, &b.Room.Capacity,
		)
		if err != nil {
			return nil, fmt.Errorf("scan cell booking: %w", err)
		}
		teacher.ID = b.Lesson.TeacherID
		subject.ID = b.Lesson.SubjectID
		group.ID = b.Lesson.GroupID
		b.Lesson.Teacher = &teacher
		b.Lesson.Subject = &subject
		b.Lesson.Group = &group
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// GroupsWithBookings returns the distinct groups booked in the semester,
// ordered by title.
func (r *ScheduleRepository) GroupsWithBookings(ctx context.Context, semesterID int64) ([]model.Group, error) {
	query := `
		SELECT g.id, g.title, g.disable
		FROM groups g
		WHERE g.id IN (
			SELECT l.group_id
			FROM schedules s
			JOIN lessons l ON l.id = s.lesson_id
			WHERE s.semester_id = $1
		)
		ORDER BY g.title
	`

	rows, err := r.pool.Query(ctx, query, semesterID)
	if err != nil {
		return nil, fmt.Errorf("query groups with bookings: %w", err)
	}
	defer rows.Close()

	var groups []model.Group
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Disabled); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// RoomsWithBookings returns the distinct rooms booked in the semester,
// ordered by name.
func (r *ScheduleRepository) RoomsWithBookings(ctx context.Context, semesterID int64) ([]model.Room, error) {
	query := `
		SELECT r.id, r.name, r.type, r.capacity, r.disable
		FROM rooms r
		WHERE r.id IN (SELECT s.room_id FROM schedules s WHERE s.semester_id = $1)
		ORDER BY r.name
	`

	rows, err := r.pool.Query(ctx, query, semesterID)
	if err != nil {
		return nil, fmt.Errorf("query rooms with bookings: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Type, &rm.Capacity, &rm.Disabled); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// Create inserts a booking row. Conflict checks happen in the service before
// this is reached.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	query := `
		INSERT INTO schedules (public_id, semester_id, day_of_week, even_odd, room_id, period_id, lesson_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		schedule.PublicID,
		schedule.SemesterID,
		int16(schedule.Day),
		schedule.Parity,
		schedule.RoomID,
		schedule.PeriodID,
		schedule.LessonID,
	).Scan(&schedule.ID, &schedule.CreatedAt)

	if err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// GetByID returns one booking, or (nil, nil) when it does not exist.
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*model.Schedule, error) {
	query := `
		SELECT id, public_id, semester_id, day_of_week, even_odd, room_id, period_id, lesson_id, created_at
		FROM schedules
		WHERE id = $1
	`

	schedule, err := scanSchedule(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule by id: %w", err)
	}
	return schedule, nil
}

// ListBySemester returns every booking in the semester.
func (r *ScheduleRepository) ListBySemester(ctx context.Context, semesterID int64) ([]model.Schedule, error) {
	query := `
		SELECT id, public_id, semester_id, day_of_week, even_odd, room_id, period_id, lesson_id, created_at
		FROM schedules
		WHERE semester_id = $1
		ORDER BY day_of_week, period_id
	`

	rows, err := r.pool.Query(ctx, query, semesterID)
	if err != nil {
		return nil, fmt.Errorf("list schedules by semester: %w", err)
	}
	defer rows.Close()

	var schedules []model.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, *schedule)
	}
	return schedules, rows.Err()
}

// Delete removes a booking row.
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule %d not found", id)
	}
	return nil
}

func scanSchedule(row pgx.Row) (*model.Schedule, error) {
	var (
		s   model.Schedule
		day int16
	)
	err := row.Scan(&s.ID, &s.PublicID, &s.SemesterID, &day, &s.Parity, &s.RoomID, &s.PeriodID, &s.LessonID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Day = time.Weekday(day)
	return &s, nil
}
