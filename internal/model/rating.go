package model

type RatingAndReview struct {
	ID       string  `db:"id" json:"_id"`
	UserID   string  `db:"user_id" json:"user"`
	CourseID string  `db:"course_id" json:"course"`
	Rating   float64 `db:"rating" json:"rating"`
	Review   string  `db:"review" json:"review"`
}
