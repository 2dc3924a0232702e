package model

import "time"

// Repair actions
const (
	RepairActionRollbackCreate = "rollback_create"
	RepairActionRelinkCategory = "relink_category"
)

// CourseRepairJob describes back-reference bookkeeping that could not be completed
// on the request path. The repair orchestrator replays it until it succeeds or the
// retry budget is exhausted. PreviousCategoryID is only set for relink jobs.
type CourseRepairJob struct {
	Action             string    `json:"action"`
	CourseID           string    `json:"course_id"`
	InstructorID       string    `json:"instructor_id"`
	CategoryID         string    `json:"category_id"`
	PreviousCategoryID string    `json:"previous_category_id,omitempty"`
	Reason             string    `json:"reason"`
	CreatedAt          time.Time `json:"created_at"`
}

// CourseEvent is published on every course lifecycle change.
type CourseEvent struct {
	Type         string    `json:"type"`
	CourseID     string    `json:"course_id"`
	InstructorID string    `json:"instructor_id"`
	CategoryID   string    `json:"category_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Course event types
const (
	CourseEventCreated = "course.created"
	CourseEventUpdated = "course.updated"
	CourseEventDeleted = "course.deleted"
)
