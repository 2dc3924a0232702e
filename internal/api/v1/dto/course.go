package dto

import "learnhub/internal/model"

// Multipart form field names shared by the create and edit endpoints
const (
	FieldCourseID          = "courseId"
	FieldCourseName        = "courseName"
	FieldCourseDescription = "courseDescription"
	FieldWhatYouWillLearn  = "whatYouWillLearn"
	FieldPrice             = "price"
	FieldTag               = "tag"
	FieldInstructions      = "instructions"
	FieldCategory          = "category"
	FieldStatus            = "status"
	FieldThumbnail         = "thumbnailImage"
)

// CoursePriceDTO checks the textual price of a multipart form.
type CoursePriceDTO struct {
	Price string `validate:"omitempty,numeric"`
}

// DeleteCourseDTO is the body of a course delete request
type DeleteCourseDTO struct {
	CourseID string `json:"courseId"`
}

// CourseEnvelope documents a single course response.
type CourseEnvelope struct {
	Success bool         `json:"success"`
	Data    model.Course `json:"data"`
	Message string       `json:"message"`
}

// CourseDetailsEnvelope documents a populated course response.
type CourseDetailsEnvelope struct {
	Success bool                `json:"success"`
	Data    model.CourseDetails `json:"data"`
	Message string              `json:"message"`
}

// CourseListEnvelope documents a course list response.
type CourseListEnvelope struct {
	Success bool                  `json:"success"`
	Data    []model.CourseSummary `json:"data"`
	Message string                `json:"message"`
}
