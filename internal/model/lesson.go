package model

// LessonType distinguishes how a lesson is delivered.
type LessonType string

const (
	LessonLecture    LessonType = "LECTURE"
	LessonLaboratory LessonType = "LABORATORY"
	LessonPractical  LessonType = "PRACTICAL"
)

// Lesson binds a teacher, a subject and a group. TeacherForSite and
// SubjectForSite are denormalized display strings; the lesson service fills
// them from the linked entities when they are left blank at save time.
type Lesson struct {
	ID             int64      `json:"id"`
	Hours          int        `json:"hours"`
	TeacherForSite string     `json:"teacher_for_site"`
	SubjectForSite string     `json:"subject_for_site"`
	Type           LessonType `json:"lesson_type"`
	TeacherID      int64      `json:"teacher_id"`
	SubjectID      int64      `json:"subject_id"`
	GroupID        int64      `json:"group_id"`

	// Joined display data, filled by repository lookups when requested.
	Teacher *Teacher `json:"teacher,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
	Group   *Group   `json:"group,omitempty"`
}
