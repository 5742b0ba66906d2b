package model

// ResourceKind discriminates the three bookable dimensions of a slot. A save
// is only allowed when the group, the teacher and the room are all free.
type ResourceKind string

const (
	ResourceGroup   ResourceKind = "group"
	ResourceTeacher ResourceKind = "teacher"
	ResourceRoom    ResourceKind = "room"
)

// Valid reports whether the kind is one of group, teacher, room.
func (k ResourceKind) Valid() bool {
	switch k {
	case ResourceGroup, ResourceTeacher, ResourceRoom:
		return true
	}
	return false
}

// Resource is the engine's uniform view of a bookable entity: identity plus
// the display key availability listings are ordered by.
type Resource struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Room is a teaching room. Capacity and type are opaque to the engine.
type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Disabled bool   `json:"disabled"`
}

// Teacher is a member of the teaching staff.
type Teacher struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Patronymic string `json:"patronymic"`
	Position   string `json:"position"`
	Disabled   bool   `json:"disabled"`
}

// DisplayName is the surname-first form used in listings and on lessons.
func (t Teacher) DisplayName() string {
	if t.Name == "" {
		return t.Surname
	}
	return t.Surname + " " + t.Name
}

// Group is a student group.
type Group struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Disabled bool   `json:"disabled"`
}

// Subject is a taught discipline, referenced by lessons.
type Subject struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Disabled bool   `json:"disabled"`
}
