package models

import "time"

// DeadlineType is the kind of coursework a deadline tracks
type DeadlineType string

const (
	TypeAssignment DeadlineType = "assignment"
	TypeQuiz       DeadlineType = "quiz"
	TypeExam       DeadlineType = "exam"
	TypeProject    DeadlineType = "project"
)

// DeadlineTypes lists every type in form order
var DeadlineTypes = []DeadlineType{TypeAssignment, TypeQuiz, TypeExam, TypeProject}

// Priority of a deadline
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Status of a deadline
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOverdue   Status = "overdue"
	StatusCompleted Status = "completed"
)

// Statuses lists every status
var Statuses = []Status{StatusUpcoming, StatusOverdue, StatusCompleted}

// Course represents a tracked university course
type Course struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Instructor string `json:"instructor" yaml:"instructor"`
	Semester   string `json:"semester" yaml:"semester"`
	Color      string `json:"color" yaml:"color"` // #RRGGBB
}

// Deadline represents a single piece of coursework with a due date.
// CourseID may point at a course that no longer exists.
type Deadline struct {
	ID          string       `json:"id"`
	TaskName    string       `json:"taskName"`
	CourseID    string       `json:"courseId"`
	Type        DeadlineType `json:"type"`
	DueDate     time.Time    `json:"dueDate"`
	Priority    Priority     `json:"priority"`
	Description string       `json:"description"`
	Status      Status       `json:"status"`
}

// PresetColors are the colors offered when creating a course
var PresetColors = []string{
	"#3B82F6", // blue
	"#10B981", // green
	"#F59E0B", // amber
	"#8B5CF6", // purple
	"#EF4444", // red
	"#EC4899", // pink
	"#14B8A6", // teal
	"#F97316", // orange
}
