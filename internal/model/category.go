package model

// Category classifies courses. Courses is a back-reference list kept in sync by
// the course service.
type Category struct {
	ID          string   `db:"id" json:"_id"`
	Name        string   `db:"name" json:"name"`
	Description string   `db:"description" json:"description"`
	Courses     []string `json:"courses"`
}

// CategoryWithCourses is a category with its courses populated.
type CategoryWithCourses struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Courses     []CourseSummary `json:"courses"`
}

// CatalogPageData is the category page view: the selected category, a suggestion
// from another category and the best selling courses overall.
type CatalogPageData struct {
	SelectedCategory   CategoryWithCourses  `json:"selectedCategory"`
	DifferentCategory  *CategoryWithCourses `json:"differentCategory"`
	MostSellingCourses []CourseSummary      `json:"mostSellingCourses"`
}
