package models

// Subject kinds accepted by the API.
const (
	KindClass   = "class"
	KindExam    = "exam"
	KindTask    = "task"
	KindProject = "project"
	KindOther   = "other"
)

// DefaultWeeklyLoadHours is applied when a create request omits the field.
const DefaultWeeklyLoadHours = 4

// Subject represents an academic subject as stored remotely. ObjectID and
// the timestamps (epoch millis) are assigned by the remote store and are
// read-only to clients.
type Subject struct {
	ObjectID        string `json:"objectId"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	Kind            string `json:"kind"`
	WeeklyLoadHours int    `json:"weeklyLoadHours"`
	Created         int64  `json:"created,omitempty"`
	Updated         int64  `json:"updated,omitempty"`
}

// SubjectCreate captures fields for creating a subject. Kind and
// WeeklyLoadHours are optional; defaults are applied by the service.
type SubjectCreate struct {
	Name            string `json:"name" validate:"required"`
	Code            string `json:"code" validate:"required"`
	Kind            string `json:"kind" validate:"omitempty,oneof=class exam task project other"`
	WeeklyLoadHours *int   `json:"weeklyLoadHours" validate:"omitempty,gte=0"`
}

// SubjectUpdate is a partial patch: only non-nil fields are forwarded.
type SubjectUpdate struct {
	Name            *string `json:"name" validate:"omitempty,min=1"`
	Code            *string `json:"code" validate:"omitempty,min=1"`
	Kind            *string `json:"kind" validate:"omitempty,oneof=class exam task project other"`
	WeeklyLoadHours *int    `json:"weeklyLoadHours" validate:"omitempty,gte=0"`
}
