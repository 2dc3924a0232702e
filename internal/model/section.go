package model

// Section groups sub-sections inside a course. SubSection keeps the owned
// sub-section IDs in display order.
type Section struct {
	ID          string   `db:"id" json:"_id"`
	CourseID    string   `db:"course_id" json:"-"`
	SectionName string   `db:"section_name" json:"sectionName"`
	SubSection  []string `json:"subSection"`
}

type SubSection struct {
	ID           string `db:"id" json:"_id"`
	SectionID    string `db:"section_id" json:"-"`
	Title        string `db:"title" json:"title"`
	TimeDuration string `db:"time_duration" json:"timeDuration"`
	Description  string `db:"description" json:"description"`
	VideoURL     string `db:"video_url" json:"videoUrl"`
}

// SectionDetails is a section with its sub-sections populated.
type SectionDetails struct {
	ID          string       `json:"_id"`
	SectionName string       `json:"sectionName"`
	SubSection  []SubSection `json:"subSection"`
}
