package model

import "time"

// Course status values
const (
	CourseStatusDraft     = "Draft"
	CourseStatusPublished = "Published"
)

// Course is the root of the course aggregate. Sections and their sub-sections are
// owned exclusively by the course; StudentsEnrolled and RatingAndReviews are references.
type Course struct {
	ID                string    `db:"id" json:"_id"`
	CourseName        string    `db:"course_name" json:"courseName"`
	CourseDescription string    `db:"course_description" json:"courseDescription"`
	WhatYouWillLearn  string    `db:"what_you_will_learn" json:"whatYouWillLearn"`
	Price             float64   `db:"price" json:"price"`
	Status            string    `db:"status" json:"status"`
	Tag               []string  `db:"tag" json:"tag"`
	Instructions      []string  `db:"instructions" json:"instructions"`
	Thumbnail         string    `db:"thumbnail" json:"thumbnail"`
	InstructorID      string    `db:"instructor_id" json:"instructor"`
	CategoryID        string    `db:"category_id" json:"category"`
	CourseContent     []string  `json:"courseContent"`
	StudentsEnrolled  []string  `json:"studentsEnrolled"`
	RatingAndReviews  []string  `json:"ratingAndReviews"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

// CourseSummary is a course with its instructor and category populated.
type CourseSummary struct {
	Course
	Instructor *User     `json:"instructor,omitempty"`
	Category   *Category `json:"category,omitempty"`
}

// CourseDetails is a course with every reference populated, including the
// section tree and, for full views, ratings.
type CourseDetails struct {
	Course
	Instructor       *User             `json:"instructor,omitempty"`
	Category         *Category         `json:"category,omitempty"`
	CourseContent    []SectionDetails  `json:"courseContent"`
	RatingAndReviews []RatingAndReview `json:"ratingAndReviews,omitempty"`
}

// CoursePatch carries the fields of a partial course update. Nil fields are left
// untouched.
type CoursePatch struct {
	CourseName        *string
	CourseDescription *string
	WhatYouWillLearn  *string
	Price             *float64
	Status            *string
	CategoryID        *string
	Tag               *[]string
	Instructions      *[]string
}

// Apply overwrites the course fields present in the patch.
func (p CoursePatch) Apply(c *Course) {
	if p.CourseName != nil {
		c.CourseName = *p.CourseName
	}
	if p.CourseDescription != nil {
		c.CourseDescription = *p.CourseDescription
	}
	if p.WhatYouWillLearn != nil {
		c.WhatYouWillLearn = *p.WhatYouWillLearn
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.CategoryID != nil {
		c.CategoryID = *p.CategoryID
	}
	if p.Tag != nil {
		c.Tag = *p.Tag
	}
	if p.Instructions != nil {
		c.Instructions = *p.Instructions
	}
}
